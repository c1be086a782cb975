package app

import (
	"sync"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

type controlKey struct {
	dateKey  string
	activity record.Activity
}

// LockBoard tracks which activity controls are locked and the write status of each completion.
type LockBoard struct {
	mu     sync.Mutex
	locked map[controlKey]bool
	status map[controlKey]primary.WriteStatus
}

// NewLockBoard creates an empty LockBoard.
func NewLockBoard() *LockBoard {
	return &LockBoard{
		locked: make(map[controlKey]bool),
		status: make(map[controlKey]primary.WriteStatus),
	}
}

// Lock locks an activity's control for a date. It returns true if the state changed.
func (b *LockBoard) Lock(dateKey string, a record.Activity) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := controlKey{dateKey, a}
	if b.locked[k] {
		return false
	}
	b.locked[k] = true
	return true
}

// IsLocked reports whether an activity's control is locked for a date.
func (b *LockBoard) IsLocked(dateKey string, a record.Activity) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked[controlKey{dateKey, a}]
}

// SetStatus records the write status of a completion.
func (b *LockBoard) SetStatus(dateKey string, a record.Activity, s primary.WriteStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[controlKey{dateKey, a}] = s
}

// Status returns the write status of a completion, empty if none was attempted.
func (b *LockBoard) Status(dateKey string, a record.Activity) primary.WriteStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status[controlKey{dateKey, a}]
}
