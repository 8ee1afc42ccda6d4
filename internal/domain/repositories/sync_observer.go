package repositories

import "github.com/recallkit/recall/internal/domain/entities"

// SyncObserver receives lifecycle notifications from the sync engine. It is
// a capability interface: the engine is always constructed with one, and
// NoopSyncObserver is the default, so callers never branch on presence.
type SyncObserver interface {
	SyncStarted(operation string)
	SyncFinished(result entities.SyncResult)
}

// NoopSyncObserver ignores every notification.
type NoopSyncObserver struct{}

func (NoopSyncObserver) SyncStarted(string)               {}
func (NoopSyncObserver) SyncFinished(entities.SyncResult) {}
