package credentials

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Parse extracts a Snapshot from a semicolon-delimited `key=value` attribute
// string. Keys are matched case-insensitively against the allow-list;
// unknown keys and malformed entries are discarded without error, so a
// partially valid string still yields whatever fields it carries.
func Parse(raw string) Snapshot {
	snapshot := Snapshot{Raw: raw}
	for _, entry := range strings.Split(raw, ";") {
		key, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case AttrOAuthToken:
			snapshot.OAuthToken = value
		case AttrScopes:
			snapshot.Scopes = value
		case AttrExpiry:
			snapshot.Expiry = parseExpiry(value)
		case AttrRefreshToken:
			snapshot.RefreshToken = value
		}
	}

	// The login flow sets expiry alongside the token, but if it is absent or
	// unreadable the token's own exp claim is the next best source.
	if !snapshot.HasExpiry() && snapshot.HasToken() {
		snapshot.Expiry = jwtExpiry(snapshot.OAuthToken)
	}

	return snapshot
}

// parseExpiry accepts RFC3339 with or without fractional seconds, which
// covers the `2006-01-02T15:04:05.000Z` format the login flow writes.
func parseExpiry(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// jwtExpiry recovers the exp claim from an access token that happens to be a
// JWT. The signature is deliberately not verified: the claim only feeds the
// countdown, never an authorization decision.
func jwtExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}
	}
	return expiry.Time
}
