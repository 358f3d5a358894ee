package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tanimarket/internal/models"
	"tanimarket/internal/store"
)

type memStorage struct {
	values map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{values: make(map[string]string)}
}

func (m *memStorage) GetValue(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStorage) PutValue(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStorage) DeleteValue(key string) error {
	delete(m.values, key)
	return nil
}

func TestManager_LoginLogout(t *testing.T) {
	storage := newMemStorage()
	m, err := NewManager(storage)
	require.NoError(t, err)

	assert.False(t, m.IsLoggedIn())
	assert.Empty(t, m.Token())

	user := &models.User{ID: "u1", Nama: "Budi", Role: models.RolePembeli}
	require.NoError(t, m.Login("token-1", user))

	assert.True(t, m.IsLoggedIn())
	assert.Equal(t, "token-1", m.Token())
	assert.Equal(t, "u1", m.Current().ID)

	// Identity is durable: a fresh manager over the same storage sees it.
	m2, err := NewManager(storage)
	require.NoError(t, err)
	assert.Equal(t, "token-1", m2.Token())
	require.NotNil(t, m2.Current())
	assert.Equal(t, models.RolePembeli, m2.Current().Role)

	require.NoError(t, m.Logout())
	assert.False(t, m.IsLoggedIn())
	_, found, _ := storage.GetValue(store.KeyToken)
	assert.False(t, found)
}

func TestManager_SubscribersNotified(t *testing.T) {
	m, err := NewManager(newMemStorage())
	require.NoError(t, err)

	var events []*models.User
	unsubscribe := m.Subscribe(func(u *models.User) { events = append(events, u) })

	user := &models.User{ID: "u1"}
	require.NoError(t, m.Login("t", user))
	require.NoError(t, m.Logout())

	require.Len(t, events, 2)
	assert.Equal(t, "u1", events[0].ID)
	assert.Nil(t, events[1])

	unsubscribe()
	require.NoError(t, m.Login("t", user))
	assert.Len(t, events, 2)
}

func TestManager_ExpireClearsEverything(t *testing.T) {
	storage := newMemStorage()
	m, err := NewManager(storage)
	require.NoError(t, err)

	require.NoError(t, m.Login("t", &models.User{ID: "u1"}))
	require.NoError(t, m.SetChatPeer(&models.User{ID: "u2"}))

	notified := false
	m.Subscribe(func(u *models.User) { notified = u == nil })

	m.Expire()

	assert.False(t, m.IsLoggedIn())
	assert.True(t, notified)
	for _, key := range []string{store.KeyToken, store.KeyUser, store.KeySelectedChatUser} {
		_, found, _ := storage.GetValue(key)
		assert.False(t, found, "key %s should be cleared", key)
	}
}

func TestManager_ChatPeerRoundTrip(t *testing.T) {
	m, err := NewManager(newMemStorage())
	require.NoError(t, err)

	peer, err := m.ChatPeer()
	require.NoError(t, err)
	assert.Nil(t, peer)

	require.NoError(t, m.SetChatPeer(&models.User{ID: "u2", Nama: "Siti"}))

	peer, err = m.ChatPeer()
	require.NoError(t, err)
	require.NotNil(t, peer)
	assert.Equal(t, "Siti", peer.Nama)

	require.NoError(t, m.SetChatPeer(nil))

	peer, err = m.ChatPeer()
	require.NoError(t, err)
	assert.Nil(t, peer)
}

func TestAuthorize(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	petani := &models.User{Role: models.RolePetani}
	pembeli := &models.User{Role: models.RolePembeli}

	tests := []struct {
		name     string
		user     *models.User
		required []models.Role
		allowed  bool
		redirect string
	}{
		{name: "anonymous goes to login", user: nil, required: []models.Role{models.RolePembeli}, redirect: RouteLogin},
		{name: "matching role allowed", user: pembeli, required: []models.Role{models.RolePembeli}, allowed: true},
		{name: "one of several roles", user: petani, required: []models.Role{models.RoleAdmin, models.RolePetani}, allowed: true},
		{name: "wrong role sent home", user: petani, required: []models.Role{models.RoleAdmin}, redirect: RoutePetaniHome},
		{name: "admin sent to admin home", user: admin, required: []models.Role{models.RolePembeli}, redirect: RouteAdminHome},
		{name: "pembeli sent to root", user: pembeli, required: []models.Role{models.RoleAdmin}, redirect: RoutePembeliHome},
		{name: "no required roles just needs login", user: pembeli, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.user, tt.required...)
			assert.Equal(t, tt.allowed, got.Allowed)
			assert.Equal(t, tt.redirect, got.Redirect)
		})
	}
}
