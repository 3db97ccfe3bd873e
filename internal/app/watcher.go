package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/five82/meteo/internal/favorites"
	"github.com/five82/meteo/internal/kv"
)

// watcher is implemented by backends that can report external writes.
type watcher interface {
	Watch(ctx context.Context, key string, onChange func()) error
}

// StartFavoritesWatcher reports writes to the favorites key until ctx is
// cancelled. It returns nil when the backend cannot be watched or the watch
// fails to install. Notifications are coalesced: a burst of writes yields at
// least one value.
func StartFavoritesWatcher(ctx context.Context, backend kv.Store, log *logrus.Entry) <-chan struct{} {
	w, ok := backend.(watcher)
	if !ok {
		return nil
	}

	changes := make(chan struct{}, 1)
	err := w.Watch(ctx, favorites.StorageKey, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		log.WithError(err).Warn("favorites watcher unavailable")
		return nil
	}
	return changes
}
