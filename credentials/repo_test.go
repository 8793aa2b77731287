package credentials_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zendworks/go-session-keeper/credentials"
	fakeattributestore "github.com/zendworks/go-session-keeper/credentials/repofake"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o600)
}

func TestReaderRequiresStore(t *testing.T) {
	_, err := credentials.NewReader(nil)
	require.Error(t, err)
}

func TestReaderReadsFreshOnEveryCall(t *testing.T) {
	store := fakeattributestore.New("oauth_token=first")
	reader, err := credentials.NewReader(store)
	require.NoError(t, err)

	require.Equal(t, "first", reader.Read().OAuthToken)

	// Out-of-band rewrite, e.g. a server response setting new attributes.
	store.SetRaw("oauth_token=second")
	require.Equal(t, "second", reader.Read().OAuthToken)
}

func TestFakeStoreExpireRemovesSingleAttribute(t *testing.T) {
	store := fakeattributestore.New("oauth_token=abc; refresh_token=r1; scopes=read")

	require.NoError(t, store.Expire("OAUTH_TOKEN"))

	raw, err := store.Read()
	require.NoError(t, err)
	snapshot := credentials.Parse(raw)
	require.False(t, snapshot.HasToken())
	require.Equal(t, "r1", snapshot.RefreshToken)
	require.Equal(t, "read", snapshot.Scopes)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/session.attributes"
	store, err := credentials.NewFileStore(path)
	require.NoError(t, err)

	// Missing file is the anonymous state.
	raw, err := store.Read()
	require.NoError(t, err)
	require.Empty(t, raw)

	require.NoError(t, writeFile(path, "oauth_token=abc; refresh_token=r1"))
	require.NoError(t, store.Expire("oauth_token"))

	raw, err = store.Read()
	require.NoError(t, err)
	snapshot := credentials.Parse(raw)
	require.False(t, snapshot.HasToken())
	require.Equal(t, "r1", snapshot.RefreshToken)
}
