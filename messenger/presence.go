package messenger

import "go.uber.org/zap"

// Presence derives online/offline transitions from registry membership and
// fans out userStatus events to followers who are themselves present.
// Presence is best-effort: storage or follow-graph failures are logged and
// swallowed so connection setup and teardown never block on them.
type Presence struct {
	store    Store
	registry *Registry
	emitter  Emitter
	events   Publisher
	log      *zap.Logger
}

func NewPresence(store Store, registry *Registry, emitter Emitter, events Publisher, log *zap.Logger) *Presence {
	return &Presence{
		store:    store,
		registry: registry,
		emitter:  emitter,
		events:   events,
		log:      log,
	}
}

// HandleConnect is invoked after the connection has been registered. Marking
// the user online is idempotent, so a second tab re-marks harmlessly.
func (p *Presence) HandleConnect(userID uint) {
	if err := p.store.SetOnline(userID, true); err != nil {
		p.log.Error("failed to mark user online", zap.Uint("userId", userID), zap.Error(err))
		return
	}
	p.broadcastStatus(userID, StatusOnline)
	if p.events != nil {
		p.events.Publish("user.online", UserStatusPayload{UserId: userID, Status: StatusOnline})
	}
}

// HandleDisconnect is invoked with the registry's wasLast flag. While other
// sessions remain nothing happens, which keeps multi-tab users from
// flapping.
func (p *Presence) HandleDisconnect(userID uint, wasLast bool) {
	if !wasLast {
		return
	}
	if err := p.store.SetOnline(userID, false); err != nil {
		p.log.Error("failed to mark user offline", zap.Uint("userId", userID), zap.Error(err))
		return
	}
	p.broadcastStatus(userID, StatusOffline)
	if p.events != nil {
		p.events.Publish("user.offline", UserStatusPayload{UserId: userID, Status: StatusOffline})
	}
}

// broadcastStatus emits the transition to each follower that currently holds
// a session. Followers without sessions are skipped rather than queued.
func (p *Presence) broadcastStatus(userID uint, status string) {
	followerIDs, err := p.store.FollowerIDs(userID)
	if err != nil {
		p.log.Error("failed to fetch followers for status broadcast",
			zap.Uint("userId", userID), zap.Error(err))
		return
	}

	payload := UserStatusPayload{UserId: userID, Status: status}
	for _, followerID := range followerIDs {
		if p.registry.Online(followerID) {
			p.emitter.Emit(followerID, EventUserStatus, payload)
		}
	}
}
