package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tastebook_backend/models"
	"tastebook_backend/nav"
	"tastebook_backend/store"
)

// SaveState is the coordinator's position in one save attempt.
type SaveState string

const (
	StateIdle          SaveState = "IDLE"
	StateSaving        SaveState = "SAVING"
	StateCreateSuccess SaveState = "CREATE_SUCCESS"
	StateEditSuccess   SaveState = "EDIT_SUCCESS"
	StateError         SaveState = "ERROR"
)

// ValidationKind classifies pre-flight failures that never reach the store.
type ValidationKind string

const (
	NoIngredients ValidationKind = "NO_INGREDIENTS"
	NoValidSteps  ValidationKind = "NO_VALID_STEPS"
)

// ValidationError is a local, recoverable draft problem. It is surfaced to
// the user directly and does not move the save state machine.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft validation failed: %s", e.Kind)
}

var ErrSaveInProgress = errors.New("save already in progress")

// Recipes is the slice of the recipe store the coordinator needs.
type Recipes interface {
	Create(ctx context.Context, recipe models.Recipe) (string, error)
	Update(ctx context.Context, id string, recipe models.Recipe) error
}

// Coordinator runs the save workflow for one draft: validate, persist,
// transition. State is an owned value, readable at any time, never ambient.
//
// One attempt moves IDLE -> SAVING -> CREATE_SUCCESS | EDIT_SUCCESS |
// ERROR. Success and error are terminal for the attempt; Reset re-enters
// IDLE so the draft can be corrected and resubmitted.
type Coordinator struct {
	mu        sync.Mutex
	state     SaveState
	errorKind store.Code

	recipes   Recipes
	navigator nav.Navigator
}

func NewCoordinator(recipes Recipes, navigator nav.Navigator) *Coordinator {
	return &Coordinator{
		state:     StateIdle,
		recipes:   recipes,
		navigator: navigator,
	}
}

func (c *Coordinator) State() SaveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ErrorKind returns the classification of the last persistence failure.
// Meaningful only while State is ERROR.
func (c *Coordinator) ErrorKind() store.Code {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorKind
}

// Reset re-enters IDLE after a terminal state. A save in flight is left
// alone.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSaving {
		c.state = StateIdle
		c.errorKind = ""
	}
}

// Save validates the draft and persists it. A draft with an ID owned by the
// current user updates in place; anything else creates a new recipe, so a
// fork of someone else's recipe becomes the forker's own copy.
//
// Re-invoking while a save is in flight is refused with ErrSaveInProgress
// and causes no second store call. On success the returned ID is the
// persisted recipe's.
func (c *Coordinator) Save(ctx context.Context, d *Draft) (string, error) {
	c.mu.Lock()
	if c.state == StateSaving {
		c.mu.Unlock()
		return "", ErrSaveInProgress
	}

	// Pre-flight checks run before the state machine moves: a validation
	// failure is a prompt to the user, not a save attempt.
	if len(d.Ingredients) == 0 {
		c.mu.Unlock()
		return "", &ValidationError{Kind: NoIngredients}
	}
	valid := d.validSteps()
	if len(valid) == 0 {
		c.mu.Unlock()
		return "", &ValidationError{Kind: NoValidSteps}
	}

	c.state = StateSaving
	c.mu.Unlock()

	// The terminal transition runs on every exit path so the SAVING flag
	// cannot stick if the store call fails or panics.
	final := StateError
	var kind store.Code
	defer func() {
		c.mu.Lock()
		c.state = final
		c.errorKind = kind
		c.mu.Unlock()
	}()

	complete := d.recipe(valid)

	if d.ID != "" && d.OwnedByCurrentUser {
		if err := c.recipes.Update(ctx, d.ID, complete); err != nil {
			kind = store.CodeOf(err)
			return "", err
		}
		final = StateEditSuccess
		c.navigate(nav.ScreenRecipeDetail, map[string]string{"id": d.ID})
		return d.ID, nil
	}

	complete.ID = ""
	id, err := c.recipes.Create(ctx, complete)
	if err != nil {
		kind = store.CodeOf(err)
		return "", err
	}
	final = StateCreateSuccess
	c.navigate(nav.ScreenRecipeList, map[string]string{"id": id})
	return id, nil
}

func (c *Coordinator) navigate(screen nav.Screen, params map[string]string) {
	if c.navigator != nil {
		c.navigator.Navigate(screen, params)
	}
}
