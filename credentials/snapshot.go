package credentials

import (
	"time"

	"golang.org/x/oauth2"
)

// Session attribute names recognised by the parser. Anything else in the
// attribute string is discarded.
const (
	AttrOAuthToken   = "oauth_token"
	AttrScopes       = "scopes"
	AttrExpiry       = "expiry"
	AttrRefreshToken = "refresh_token"
)

// AllowedAttributes lists every attribute this client owns, in the order the
// login flow sets them. Logout expires each of these.
var AllowedAttributes = []string{AttrOAuthToken, AttrScopes, AttrExpiry, AttrRefreshToken}

// Snapshot is a typed, read-only view over the client attribute store at a
// single point in time. It is never cached across time: the store can change
// out-of-band (a server response setting new attributes), so callers re-read
// whenever they need current state.
type Snapshot struct {
	OAuthToken   string    // access token, empty when anonymous
	Scopes       string    // space-separated granted scopes
	Expiry       time.Time // access token expiry, zero when unrecoverable
	RefreshToken string    // refresh token, empty when not granted
	Raw          string    // the attribute string the snapshot was parsed from
}

// HasToken reports whether the snapshot carries an access token, i.e. whether
// the client is past the anonymous state.
func (s Snapshot) HasToken() bool {
	return s.OAuthToken != ""
}

// HasExpiry reports whether an expiry could be recovered, either from the
// expiry attribute or from the access token's exp claim.
func (s Snapshot) HasExpiry() bool {
	return !s.Expiry.IsZero()
}

// Token bridges the snapshot to the standard OAuth2 token type, which is what
// collaborators performing authenticated requests consume.
func (s Snapshot) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.OAuthToken,
		TokenType:    "Bearer",
		RefreshToken: s.RefreshToken,
		Expiry:       s.Expiry,
	}
}
