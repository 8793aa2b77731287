package identity_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zendworks/go-session-keeper/identity"
	fakekeyvalue "github.com/zendworks/go-session-keeper/storage/repofake"
)

func TestStoreSaveOverwritesWholesale(t *testing.T) {
	kv := fakekeyvalue.New()
	store, err := identity.NewStore(kv)
	require.NoError(t, err)

	require.NoError(t, store.Save(identity.Identity{Name: "Ada", Email: "ada@x.com", PictureURL: "p.png"}))
	require.NoError(t, store.Save(identity.Identity{Name: "Bob"}))

	cached, ok := store.Load()
	require.True(t, ok)
	require.Equal(t, identity.Identity{Name: "Bob"}, cached, "no partial updates - the whole value is replaced")
}

func TestStoreLoadWhenAbsent(t *testing.T) {
	store, err := identity.NewStore(fakekeyvalue.New())
	require.NoError(t, err)

	cached, ok := store.Load()
	require.False(t, ok)
	require.True(t, cached.Empty())
}

func TestStoreLoadMalformedBehavesAsAbsent(t *testing.T) {
	kv := fakekeyvalue.New()
	require.NoError(t, kv.Set(identity.UserKey, "{corrupt"))

	store, err := identity.NewStore(kv)
	require.NoError(t, err)

	_, ok := store.Load()
	require.False(t, ok)
}

func TestStoreClear(t *testing.T) {
	kv := fakekeyvalue.New()
	store, err := identity.NewStore(kv)
	require.NoError(t, err)

	require.NoError(t, store.Save(identity.Identity{Name: "Ada"}))
	require.NoError(t, store.Clear())

	_, ok := store.Load()
	require.False(t, ok)

	require.NoError(t, store.Clear(), "clearing an empty store is not an error")
}
