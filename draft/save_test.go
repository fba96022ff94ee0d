package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastebook_backend/models"
	"tastebook_backend/nav"
	"tastebook_backend/store"
)

// fakeRecipes counts persistence calls and can block or fail on demand.
type fakeRecipes struct {
	mu           sync.Mutex
	createCalls  int
	updateCalls  int
	lastUpdateID string
	lastRecipe   models.Recipe

	createErr error
	updateErr error

	// when set, Create signals started and waits on release
	started chan struct{}
	release chan struct{}
}

func (f *fakeRecipes) Create(ctx context.Context, recipe models.Recipe) (string, error) {
	f.mu.Lock()
	f.createCalls++
	f.lastRecipe = recipe
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		close(started)
		<-release
	}
	if f.createErr != nil {
		return "", f.createErr
	}
	return "new-id", nil
}

func (f *fakeRecipes) Update(ctx context.Context, id string, recipe models.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdateID = id
	f.lastRecipe = recipe
	return f.updateErr
}

func (f *fakeRecipes) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.updateCalls
}

func validDraft() *Draft {
	return New(models.Recipe{
		Name:        "Shakshuka",
		Ingredients: []string{"eggs", "tomatoes"},
		Steps:       []models.Step{{Text: "simmer sauce"}, {Text: "poach eggs"}},
	}, false)
}

func TestSaveRejectsEmptyIngredients(t *testing.T) {
	recipes := &fakeRecipes{}
	c := NewCoordinator(recipes, nil)

	d := validDraft()
	d.Ingredients = nil

	_, err := c.Save(context.Background(), d)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, NoIngredients, vErr.Kind)

	creates, updates := recipes.calls()
	assert.Zero(t, creates, "validation failure must not reach the store")
	assert.Zero(t, updates)
	assert.Equal(t, StateIdle, c.State(), "validation failure must not move the state machine")
}

func TestSaveRejectsAllBlankSteps(t *testing.T) {
	recipes := &fakeRecipes{}
	c := NewCoordinator(recipes, nil)

	d := validDraft()
	d.Steps = []models.Step{{Text: "  "}, {Text: ""}}

	_, err := c.Save(context.Background(), d)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, NoValidSteps, vErr.Kind)

	creates, updates := recipes.calls()
	assert.Zero(t, creates)
	assert.Zero(t, updates)
	assert.Equal(t, StateIdle, c.State())
}

func TestSaveUpdatesOwnedRecipe(t *testing.T) {
	recipes := &fakeRecipes{}
	recorder := &nav.Recorder{}
	c := NewCoordinator(recipes, recorder)

	d := validDraft()
	d.ID = "r1"
	d.OwnedByCurrentUser = true

	id, err := c.Save(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, "r1", id)
	assert.Equal(t, "r1", recipes.lastUpdateID)
	assert.Equal(t, StateEditSuccess, c.State())

	creates, updates := recipes.calls()
	assert.Zero(t, creates)
	assert.Equal(t, 1, updates)

	screen, params := recorder.Last()
	assert.Equal(t, nav.ScreenRecipeDetail, screen)
	assert.Equal(t, "r1", params["id"])
}

func TestSaveCreatesWithoutIdentity(t *testing.T) {
	recipes := &fakeRecipes{}
	recorder := &nav.Recorder{}
	c := NewCoordinator(recipes, recorder)

	id, err := c.Save(context.Background(), validDraft())

	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	assert.Equal(t, StateCreateSuccess, c.State())

	creates, updates := recipes.calls()
	assert.Equal(t, 1, creates)
	assert.Zero(t, updates)

	screen, _ := recorder.Last()
	assert.Equal(t, nav.ScreenRecipeList, screen)
}

// A recipe not owned by the current user is forked into a new one even when
// it still carries an ID, and an owned draft without an ID falls through to
// create.
func TestSaveCreateBranching(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		owned bool
	}{
		{name: "foreign recipe with id", id: "r2", owned: false},
		{name: "owned but no id", id: "", owned: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes := &fakeRecipes{}
			c := NewCoordinator(recipes, nil)

			d := validDraft()
			d.ID = tt.id
			d.OwnedByCurrentUser = tt.owned

			_, err := c.Save(context.Background(), d)

			require.NoError(t, err)
			creates, updates := recipes.calls()
			assert.Equal(t, 1, creates)
			assert.Zero(t, updates)
			assert.Empty(t, recipes.lastRecipe.ID, "forked recipe must not reuse the source ID")
		})
	}
}

func TestSaveFiltersBlankSteps(t *testing.T) {
	recipes := &fakeRecipes{}
	c := NewCoordinator(recipes, nil)

	d := validDraft()
	d.Steps = []models.Step{{Text: "chop"}, {Text: "   "}, {Text: "serve"}}

	_, err := c.Save(context.Background(), d)

	require.NoError(t, err)
	require.Len(t, recipes.lastRecipe.Steps, 2)
	assert.Equal(t, "chop", recipes.lastRecipe.Steps[0].Text)
	assert.Equal(t, "serve", recipes.lastRecipe.Steps[1].Text)
}

func TestSaveClassifiesStoreErrors(t *testing.T) {
	recipes := &fakeRecipes{
		createErr: &store.Error{Code: store.CodeStepInvalid, Op: "test", Err: errors.New("bad step")},
	}
	c := NewCoordinator(recipes, nil)

	_, err := c.Save(context.Background(), validDraft())

	require.Error(t, err)
	assert.Equal(t, StateError, c.State())
	assert.Equal(t, store.CodeStepInvalid, c.ErrorKind())

	c.Reset()
	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, c.ErrorKind())
}

func TestSaveUnclassifiedErrorIsGeneral(t *testing.T) {
	recipes := &fakeRecipes{createErr: errors.New("socket closed")}
	c := NewCoordinator(recipes, nil)

	_, err := c.Save(context.Background(), validDraft())

	require.Error(t, err)
	assert.Equal(t, StateError, c.State())
	assert.Equal(t, store.CodeGeneral, c.ErrorKind())
}

func TestSaveRefusedWhileSaving(t *testing.T) {
	recipes := &fakeRecipes{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewCoordinator(recipes, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Save(context.Background(), validDraft())
		done <- err
	}()

	select {
	case <-recipes.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first save never reached the store")
	}
	assert.Equal(t, StateSaving, c.State())

	_, err := c.Save(context.Background(), validDraft())
	assert.ErrorIs(t, err, ErrSaveInProgress)

	close(recipes.release)
	require.NoError(t, <-done)

	creates, _ := recipes.calls()
	assert.Equal(t, 1, creates, "refused re-invocation must not call the store again")
	assert.Equal(t, StateCreateSuccess, c.State())
}

func TestResetLeavesInFlightSaveAlone(t *testing.T) {
	recipes := &fakeRecipes{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewCoordinator(recipes, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Save(context.Background(), validDraft())
		done <- err
	}()
	<-recipes.started

	c.Reset()
	assert.Equal(t, StateSaving, c.State())

	close(recipes.release)
	require.NoError(t, <-done)
}
