package dashboard

import "sync"

// MutationStatus is the save state of one entity in a dialog.
type MutationStatus string

const (
	StatusIdle   MutationStatus = "idle"
	StatusSaving MutationStatus = "saving"
	StatusSaved  MutationStatus = "saved"
	StatusError  MutationStatus = "error"
)

// MutationTracker keeps exactly one status per entity id.
type MutationTracker struct {
	mu       sync.RWMutex
	statuses map[string]trackedStatus
}

type trackedStatus struct {
	status MutationStatus
	err    error
}

func NewMutationTracker() *MutationTracker {
	return &MutationTracker{statuses: make(map[string]trackedStatus)}
}

// Begin marks id as saving.
func (t *MutationTracker) Begin(id string) { t.set(id, StatusSaving, nil) }

// Succeed marks id as saved.
func (t *MutationTracker) Succeed(id string) { t.set(id, StatusSaved, nil) }

// Fail marks id as failed with err.
func (t *MutationTracker) Fail(id string, err error) { t.set(id, StatusError, err) }

// Reset returns id to idle.
func (t *MutationTracker) Reset(id string) {
	t.mu.Lock()
	delete(t.statuses, id)
	t.mu.Unlock()
}

// Track runs fn between Begin and Succeed/Fail.
func (t *MutationTracker) Track(id string, fn func() error) error {
	t.Begin(id)
	if err := fn(); err != nil {
		t.Fail(id, err)
		return err
	}
	t.Succeed(id)
	return nil
}

func (t *MutationTracker) Status(id string) MutationStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s, ok := t.statuses[id]; ok {
		return s.status
	}
	return StatusIdle
}

// Err returns the failure recorded for id, if any.
func (t *MutationTracker) Err(id string) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.statuses[id].err
}

// Snapshot copies every non-idle status.
func (t *MutationTracker) Snapshot() map[string]MutationStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]MutationStatus, len(t.statuses))
	for id, s := range t.statuses {
		out[id] = s.status
	}
	return out
}

func (t *MutationTracker) set(id string, status MutationStatus, err error) {
	t.mu.Lock()
	t.statuses[id] = trackedStatus{status: status, err: err}
	t.mu.Unlock()
}
