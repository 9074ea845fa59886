package messenger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPresenceFixture() (*fakeStore, *Registry, *recordingEmitter, *Presence) {
	store := newFakeStore()
	registry := NewRegistry()
	emitter := &recordingEmitter{}
	presence := NewPresence(store, registry, emitter, nil, zap.NewNop())
	return store, registry, emitter, presence
}

func TestPresence_HandleConnect(t *testing.T) {
	req := require.New(t)
	store, registry, emitter, presence := newPresenceFixture()

	store.addUser(1, "alice")
	store.addUser(2, "bob")
	store.addUser(3, "carol")
	store.addFollow(2, 1) // bob follows alice
	store.addFollow(3, 1) // carol follows alice

	// only bob is present
	registry.Register(2, "bob-conn")

	presence.HandleConnect(1)

	req.True(store.online[1])

	online := emitter.forUser(2, EventUserStatus)
	req.Len(online, 1)
	req.Equal(UserStatusPayload{UserId: 1, Status: StatusOnline}, online[0].Payload)

	// carol has no session, nothing is queued for her
	req.Empty(emitter.forUser(3, EventUserStatus))
}

func TestPresence_HandleConnect_Idempotent(t *testing.T) {
	req := require.New(t)
	store, _, _, presence := newPresenceFixture()
	store.addUser(1, "alice")

	presence.HandleConnect(1)
	presence.HandleConnect(1)

	req.True(store.online[1])
}

func TestPresence_HandleConnect_StorageFailureSwallowed(t *testing.T) {
	req := require.New(t)
	store, _, emitter, presence := newPresenceFixture()
	store.addUser(1, "alice")
	store.onlineErr = errStorage

	req.NotPanics(func() { presence.HandleConnect(1) })
	req.Empty(emitter.events)
}

func TestPresence_HandleConnect_FollowerLookupFailureSwallowed(t *testing.T) {
	req := require.New(t)
	store, _, emitter, presence := newPresenceFixture()
	store.addUser(1, "alice")
	store.followersErr = errStorage

	req.NotPanics(func() { presence.HandleConnect(1) })
	req.True(store.online[1])
	req.Empty(emitter.events)
}

func TestPresence_HandleDisconnect_NotLastSession(t *testing.T) {
	req := require.New(t)
	store, registry, emitter, presence := newPresenceFixture()
	store.addUser(1, "alice")
	store.addUser(2, "bob")
	store.addFollow(2, 1)
	registry.Register(2, "bob-conn")
	store.online[1] = true

	presence.HandleDisconnect(1, false)

	// still online, no broadcast
	req.True(store.online[1])
	req.Empty(emitter.events)
}

func TestPresence_HandleDisconnect_LastSession(t *testing.T) {
	req := require.New(t)
	store, registry, emitter, presence := newPresenceFixture()

	store.addUser(1, "alice")
	store.addUser(2, "bob")
	store.addUser(3, "carol")
	store.addFollow(2, 1)
	store.addFollow(3, 1)
	registry.Register(2, "bob-tab-1")
	registry.Register(2, "bob-tab-2")
	store.online[1] = true

	presence.HandleDisconnect(1, true)

	req.False(store.online[1])

	// exactly one offline broadcast per online follower, regardless of how
	// many sessions that follower holds rooms fan it out to
	offline := emitter.forUser(2, EventUserStatus)
	req.Len(offline, 1)
	req.Equal(UserStatusPayload{UserId: 1, Status: StatusOffline}, offline[0].Payload)
	req.Empty(emitter.forUser(3, EventUserStatus))
}
