package draft

import (
	"context"
	"errors"
	"sync"

	"tastebook_backend/models"
	"tastebook_backend/nav"
)

var (
	ErrNoEditor       = errors.New("no editor session for user")
	ErrStepOutOfRange = errors.New("step index out of range")
)

// Editor pairs a draft with the coordinator that will save it and a
// recorder for the navigation the save requests. One editor exists per user
// while the edit screen is open.
//
// The editor is served by concurrent requests, so the draft is only touched
// under the editor's lock; callers work through the methods below and get
// back a snapshot of the draft after the mutation.
type Editor struct {
	mu    sync.Mutex
	draft *Draft

	Coord *Coordinator
	Nav   *nav.Recorder
}

// Snapshot returns a copy of the draft for rendering. Draft mutations
// replace the steps slice rather than write through it, so the copy stays
// consistent after the lock is released.
func (e *Editor) Snapshot() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.draft
}

// AppendStep adds a blank step and returns the updated draft.
func (e *Editor) AppendStep() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.AppendStep()
	return *e.draft
}

// RemoveStep deletes the step at index i. The last remaining step cannot be
// removed; an out-of-range index on a longer list is ErrStepOutOfRange.
func (e *Editor) RemoveStep(i int) (Draft, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.draft.Steps) <= 1 {
		return Draft{}, ErrMinimumOneStep
	}
	if i < 0 || i >= len(e.draft.Steps) {
		return Draft{}, ErrStepOutOfRange
	}
	if err := e.draft.RemoveStep(i); err != nil {
		return Draft{}, err
	}
	return *e.draft, nil
}

// UpdateStepField sets the named field of the step at index i.
func (e *Editor) UpdateStepField(i int, field StepField, value string) (Draft, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i < 0 || i >= len(e.draft.Steps) {
		return Draft{}, ErrStepOutOfRange
	}
	if err := e.draft.UpdateStepField(i, field, value); err != nil {
		return Draft{}, err
	}
	return *e.draft, nil
}

// Update applies non-step edits to the draft as one atomic change.
func (e *Editor) Update(apply func(*Draft)) Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	apply(e.draft)
	return *e.draft
}

// Save hands a snapshot of the draft to the coordinator, so edits arriving
// during the store call cannot race the save's reads. Edits made after the
// snapshot are lost if the save succeeds, since success ends the session.
func (e *Editor) Save(ctx context.Context) (string, error) {
	e.mu.Lock()
	snapshot := *e.draft
	e.mu.Unlock()

	return e.Coord.Save(ctx, &snapshot)
}

// Manager tracks open editor sessions keyed by user ID. Beginning a new
// session replaces any previous one; a successful save ends it, since a
// draft is consumed exactly once.
type Manager struct {
	mu      sync.Mutex
	editors map[string]*Editor
	recipes Recipes
}

func NewManager(recipes Recipes) *Manager {
	return &Manager{
		editors: make(map[string]*Editor),
		recipes: recipes,
	}
}

// Begin opens an editor session for the user on the given recipe payload.
func (m *Manager) Begin(userID string, recipe models.Recipe, ownedByCurrentUser bool) *Editor {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorder := &nav.Recorder{}
	editor := &Editor{
		draft: New(recipe, ownedByCurrentUser),
		Coord: NewCoordinator(m.recipes, recorder),
		Nav:   recorder,
	}
	m.editors[userID] = editor
	return editor
}

// Get returns the user's open editor session.
func (m *Manager) Get(userID string) (*Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	editor, ok := m.editors[userID]
	if !ok {
		return nil, ErrNoEditor
	}
	return editor, nil
}

// End discards the user's editor session.
func (m *Manager) End(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.editors, userID)
}
