package store

import (
	"context"
	"errors"
	"fmt"

	"tastebook_backend/models"
)

// Code is the closed set of failure classes a recipe store can raise.
// Callers branch on these instead of inspecting error strings.
type Code string

const (
	CodeImageInvalid      Code = "image_invalid"
	CodeIngredientInvalid Code = "ingredient_invalid"
	CodeStepInvalid       Code = "step_invalid"
	CodeValidation        Code = "validation"
	CodeGeneral           Code = "general"
)

// Error tags a store failure with its classification code.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the classification code from err, defaulting to
// CodeGeneral for anything the store did not tag.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) && se.Code != "" {
		return se.Code
	}
	return CodeGeneral
}

var ErrNotFound = errors.New("recipe not found")

// ToggleResult reports the outcome of a favorite toggle. The toggle itself
// never fails for the caller; Message carries anything worth showing.
type ToggleResult struct {
	Favorited bool   `json:"favorited"`
	Message   string `json:"message,omitempty"`
}

// RecipeStore is the persistence contract for recipes and favorites.
type RecipeStore interface {
	// Create persists a new recipe and returns its assigned ID.
	Create(ctx context.Context, recipe models.Recipe) (string, error)

	// Update replaces the recipe stored under id.
	Update(ctx context.Context, id string, recipe models.Recipe) error

	// GetRecipe returns the recipe stored under id, or ErrNotFound.
	GetRecipe(ctx context.Context, id string) (models.Recipe, error)

	// ListRecipes returns every stored recipe.
	ListRecipes(ctx context.Context) ([]models.Recipe, error)

	// Delete removes the recipe stored under id.
	Delete(ctx context.Context, id string) error

	// Favorites returns the user's favorited recipes in favoriting order.
	Favorites(ctx context.Context, userID string) ([]models.Recipe, error)

	// IsFavorite reports whether the user has favorited the recipe.
	IsFavorite(ctx context.Context, userID, recipeID string) (bool, error)

	// ToggleFavorite flips the user's favorite membership for the recipe.
	ToggleFavorite(ctx context.Context, userID string, recipe models.Recipe) (ToggleResult, error)
}
