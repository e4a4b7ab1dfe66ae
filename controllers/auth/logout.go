package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/umardraz9/mlmpk-sub007/database"
	"github.com/umardraz9/mlmpk-sub007/models"
	"github.com/umardraz9/mlmpk-sub007/utils"
)

// POST /v3/logout — revokes the presented access token and all of the user's
// refresh tokens.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	// Blacklist the access token's jti for the remainder of its lifetime.
	authz := r.Header.Get("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	if claims, err := utils.ValidateAccessToken(tokenStr); err == nil {
		if jti, ok := claims["jti"].(string); ok && jti != "" {
			ttl := time.Hour
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				if remaining := time.Until(exp.Time); remaining > 0 {
					ttl = remaining
				}
			}
			_ = utils.RevokeJTI(jti, ttl)
		}
	}

	if err := database.DB.Model(&models.RefreshToken{}).Where("user_id = ?", uid).Update("revoked", true).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
