package app

import "sync"

// dailySession holds one in-memory session per activity, replaced when the date rolls over.
// Callers hold mu for the whole operation.
type dailySession[S any] struct {
	mu      sync.Mutex
	fresh   func() S
	dateKey string
	sess    S
	started bool
}

func (d *dailySession[S]) current(dateKey string) S {
	if !d.started || d.dateKey != dateKey {
		d.sess = d.fresh()
		d.dateKey = dateKey
		d.started = true
	}
	return d.sess
}
