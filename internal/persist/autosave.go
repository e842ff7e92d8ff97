package persist

import (
	"context"
	"time"

	"github.com/Makepad-fr/tada/internal/state"
)

// DefaultInterval is how often the list is written back while a session runs.
const DefaultInterval = 20 * time.Second

// Autosaver periodically saves a non-empty store until its context ends.
type Autosaver struct {
	Bridge   *Bridge
	Store    *state.Store
	Interval time.Duration

	// OnSave, if set, is called after every attempted save.
	OnSave func(error)
}

// Run blocks until ctx is cancelled. A non-positive Interval disables the
// timer but still waits for cancellation. Save errors are reported through
// OnSave and never stop the loop.
func (a *Autosaver) Run(ctx context.Context) error {
	if a.Interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if a.Store.Len() == 0 {
				continue
			}
			err := a.Bridge.Save(ctx, a.Store)
			if a.OnSave != nil {
				a.OnSave(err)
			}
		}
	}
}
