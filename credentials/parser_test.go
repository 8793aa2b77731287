package credentials_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/zendworks/go-session-keeper/credentials"
)

const (
	testToken        = "abc123"
	testRefreshToken = "refresh-456"
	testScopes       = "read:me offline_access"
	testExpiry       = "2099-01-01T00:00:00Z"
)

func TestParseRetainsAllowListedAttributes(t *testing.T) {
	raw := "oauth_token=" + testToken + "; scopes=" + testScopes +
		"; expiry=" + testExpiry + "; refresh_token=" + testRefreshToken

	snapshot := credentials.Parse(raw)

	require.Equal(t, testToken, snapshot.OAuthToken)
	require.Equal(t, testScopes, snapshot.Scopes)
	require.Equal(t, testRefreshToken, snapshot.RefreshToken)
	require.Equal(t, time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC), snapshot.Expiry.UTC())
	require.Equal(t, raw, snapshot.Raw)
	require.True(t, snapshot.HasToken())
	require.True(t, snapshot.HasExpiry())
}

func TestParseNormalisesKeysCaseInsensitively(t *testing.T) {
	snapshot := credentials.Parse("  OAuth_Token = " + testToken + " ;REFRESH_TOKEN=" + testRefreshToken)

	require.Equal(t, testToken, snapshot.OAuthToken)
	require.Equal(t, testRefreshToken, snapshot.RefreshToken)
}

func TestParseDiscardsUnknownKeys(t *testing.T) {
	snapshot := credentials.Parse("oauth_token=" + testToken + "; theme=dark; _ga=tracking")

	require.Equal(t, testToken, snapshot.OAuthToken)
	require.Empty(t, snapshot.Scopes)
	require.Empty(t, snapshot.RefreshToken)
}

func TestParseToleratesMalformedEntries(t *testing.T) {
	for _, raw := range []string{"", ";;;", "oauth_token", "=", "no-delimiter-here", "; =x; y"} {
		snapshot := credentials.Parse(raw)
		require.False(t, snapshot.HasToken(), "raw %q should stay anonymous", raw)
	}
}

func TestParseExpiryWithMilliseconds(t *testing.T) {
	snapshot := credentials.Parse("expiry=2099-06-15T10:30:00.000Z")

	require.True(t, snapshot.HasExpiry())
	require.Equal(t, time.Date(2099, 6, 15, 10, 30, 0, 0, time.UTC), snapshot.Expiry.UTC())
}

func TestParseUnreadableExpiryFallsBackToTokenClaim(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	claims := jwt.MapClaims{"sub": "user-1", "exp": expiry.Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)

	snapshot := credentials.Parse("oauth_token=" + signed + "; expiry=not-a-timestamp")

	require.True(t, snapshot.HasExpiry())
	require.Equal(t, expiry.Unix(), snapshot.Expiry.Unix())
}

func TestParseOpaqueTokenWithoutExpiryStaysUnexpiring(t *testing.T) {
	snapshot := credentials.Parse("oauth_token=" + testToken)

	require.True(t, snapshot.HasToken())
	require.False(t, snapshot.HasExpiry())
}

func TestSnapshotTokenBridge(t *testing.T) {
	snapshot := credentials.Parse("oauth_token=" + testToken + "; expiry=" + testExpiry + "; refresh_token=" + testRefreshToken)

	token := snapshot.Token()
	require.Equal(t, testToken, token.AccessToken)
	require.Equal(t, testRefreshToken, token.RefreshToken)
	require.Equal(t, "Bearer", token.TokenType)
	require.Equal(t, snapshot.Expiry, token.Expiry)
	require.True(t, token.Valid())
}
