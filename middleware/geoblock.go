package middleware

import (
	"context"
	"net/http"

	"github.com/umardraz9/mlmpk-sub007/config"
	"github.com/umardraz9/mlmpk-sub007/utils"
)

// GeoBlock rejects requests whose resolved country of origin is on the
// configured deny-list, before any task logic runs. When no country signal
// can be obtained the request is allowed (fail open, see
// utils.FailOpenOnLookupTimeout).
func GeoBlock(cfg *config.Config, client *http.Client) func(http.Handler) http.Handler {
	if client == nil {
		client = &http.Client{Timeout: cfg.GeoLookupTimeout}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), cfg.GeoLookupTimeout)
			country := utils.ResolveCountry(ctx, r, client)
			cancel()

			if cfg.IsBlockedCountry(country.Code) {
				utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
					Success: false,
					Message: "This service is not available in your region",
					Data: map[string]interface{}{
						"code":        "REGION_BLOCKED",
						"country":     country.Code,
						"countryName": country.Name,
					},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
