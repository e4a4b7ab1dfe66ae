package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// FailOpenOnLookupTimeout is the gate's policy when no country signal can be
// obtained (missing headers, private IP, provider timeout or failure): allow
// the request and treat the country as unknown.
const FailOpenOnLookupTimeout = true

const geoCacheTTL = 24 * time.Hour

// Provider endpoints, variables so tests can point them at stub servers.
var (
	ipAPIBaseURL   = "http://ip-api.com/json"
	ipWhoisBaseURL = "https://ipwho.is"
)

// Country is a resolved request origin. Code is empty when unknown.
type Country struct {
	Code string
	Name string
}

// ipHeaders lists forwarding headers in priority order for client IP
// extraction.
var ipHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// ClientIP extracts the originating public IP of a request. Private and
// loopback addresses in forwarding headers are skipped.
func ClientIP(r *http.Request) string {
	for _, h := range ipHeaders {
		v := strings.TrimSpace(r.Header.Get(h))
		if v == "" {
			continue
		}
		for _, part := range strings.Split(v, ",") {
			ip := net.ParseIP(strings.TrimSpace(part))
			if ip != nil && isPublicIP(ip) {
				return ip.String()
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := net.ParseIP(host); ip != nil && isPublicIP(ip) {
		return ip.String()
	}
	return ""
}

func isPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified())
}

// ResolveCountry determines the country of origin for a request. Resolution
// order, first match wins: the CF-IPCountry edge header, the Vercel edge
// header, then a reverse-IP lookup against the client IP with provider
// failover. An empty Country means no signal was obtainable and the caller
// should fail open.
func ResolveCountry(ctx context.Context, r *http.Request, client *http.Client) Country {
	if code := strings.ToUpper(strings.TrimSpace(r.Header.Get("CF-IPCountry"))); code != "" && code != "XX" {
		return Country{Code: code, Name: CountryName(code)}
	}
	if code := strings.ToUpper(strings.TrimSpace(r.Header.Get("X-Vercel-IP-Country"))); code != "" && code != "XX" {
		return Country{Code: code, Name: CountryName(code)}
	}

	ip := ClientIP(r)
	if ip == "" {
		return Country{}
	}

	if c, ok := cachedCountry(ctx, ip); ok {
		return c
	}

	c, err := lookupIPAPI(ctx, client, ip)
	if err != nil {
		log.Printf("[geo] primary lookup failed for %s: %v", ip, err)
		c, err = lookupIPWhois(ctx, client, ip)
	}
	if err != nil {
		log.Printf("[geo] secondary lookup failed for %s: %v", ip, err)
		return Country{}
	}

	cacheCountry(ctx, ip, c)
	return c
}

func cachedCountry(ctx context.Context, ip string) (Country, bool) {
	if RedisClient == nil {
		return Country{}, false
	}
	raw, err := RedisClient.Get(ctx, "geo:ip:"+ip).Result()
	if err != nil {
		return Country{}, false
	}
	parts := strings.SplitN(raw, "|", 2)
	c := Country{Code: parts[0]}
	if len(parts) == 2 {
		c.Name = parts[1]
	}
	return c, c.Code != ""
}

func cacheCountry(ctx context.Context, ip string, c Country) {
	if RedisClient == nil || c.Code == "" {
		return
	}
	_ = RedisClient.Set(ctx, "geo:ip:"+ip, c.Code+"|"+c.Name, geoCacheTTL).Err()
}

func lookupIPAPI(ctx context.Context, client *http.Client, ip string) (Country, error) {
	url := fmt.Sprintf("%s/%s?fields=status,country,countryCode", ipAPIBaseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Country{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Country{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Country{}, fmt.Errorf("ip-api status %d", resp.StatusCode)
	}
	var body struct {
		Status      string `json:"status"`
		Country     string `json:"country"`
		CountryCode string `json:"countryCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Country{}, err
	}
	if body.Status != "success" || body.CountryCode == "" {
		return Country{}, fmt.Errorf("ip-api lookup unsuccessful for %s", ip)
	}
	return Country{Code: strings.ToUpper(body.CountryCode), Name: body.Country}, nil
}

func lookupIPWhois(ctx context.Context, client *http.Client, ip string) (Country, error) {
	url := fmt.Sprintf("%s/%s", ipWhoisBaseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Country{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Country{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Country{}, fmt.Errorf("ipwho.is status %d", resp.StatusCode)
	}
	var body struct {
		Success     bool   `json:"success"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Country{}, err
	}
	if !body.Success || body.CountryCode == "" {
		return Country{}, fmt.Errorf("ipwho.is lookup unsuccessful for %s", ip)
	}
	return Country{Code: strings.ToUpper(body.CountryCode), Name: body.Country}, nil
}

var countryNames = map[string]string{
	"US": "United States",
	"GB": "United Kingdom",
	"IN": "India",
	"PK": "Pakistan",
	"CA": "Canada",
	"AU": "Australia",
	"AE": "United Arab Emirates",
	"SA": "Saudi Arabia",
	"BD": "Bangladesh",
	"ID": "Indonesia",
}

// CountryName returns a display name for a code, falling back to the code
// itself for countries outside the short table.
func CountryName(code string) string {
	if name, ok := countryNames[strings.ToUpper(code)]; ok {
		return name
	}
	return strings.ToUpper(code)
}
