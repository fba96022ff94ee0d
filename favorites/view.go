// Package favorites joins a user's favorited recipes with cached rating
// aggregates and handles favorite toggling.
package favorites

import (
	"context"
	"errors"

	"tastebook_backend/models"
	"tastebook_backend/nav"
	"tastebook_backend/ratings"
	"tastebook_backend/session"
	"tastebook_backend/store"
)

// RatingState says what a row can show for its rating.
type RatingState string

const (
	// RatingLoading: the cache has no entry for the recipe yet.
	RatingLoading RatingState = "loading"
	// RatingNone: the entry is loaded and nobody has voted.
	RatingNone RatingState = "none"
	// RatingAverage: the entry is loaded with votes; Average is meaningful.
	RatingAverage RatingState = "rated"
)

// Row is one favorites list entry.
type Row struct {
	Recipe  models.Recipe `json:"recipe"`
	State   RatingState   `json:"ratingState"`
	Average float64       `json:"average,omitempty"`
	Votes   int           `json:"votes,omitempty"`
}

var ErrLoginRequired = errors.New("favorite toggle requires a signed-in user")

// Toggler is the slice of the recipe store the view mutates through.
type Toggler interface {
	ToggleFavorite(ctx context.Context, userID string, recipe models.Recipe) (store.ToggleResult, error)
}

// View renders the favorites screen's data and forwards its one mutation.
type View struct {
	toggler   Toggler
	cache     *ratings.Cache
	navigator nav.Navigator
}

func NewView(toggler Toggler, cache *ratings.Cache, navigator nav.Navigator) *View {
	return &View{toggler: toggler, cache: cache, navigator: navigator}
}

// Rows joins the favorites list with the rating cache, preserving order.
func (v *View) Rows(recipes []models.Recipe) []Row {
	rows := make([]Row, 0, len(recipes))
	for _, recipe := range recipes {
		row := Row{Recipe: recipe, State: RatingLoading}
		if rating, ok := v.cache.Get(recipe.ID); ok {
			if rating.VoteCount > 0 {
				row.State = RatingAverage
				row.Average = rating.Average
				row.Votes = rating.VoteCount
			} else {
				row.State = RatingNone
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Refresh asks the cache to load ratings for the given recipes.
func (v *View) Refresh(ctx context.Context, recipes []models.Recipe) error {
	ids := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
	}
	return v.cache.LoadMany(ctx, ids)
}

// Toggle flips the user's favorite membership for the recipe. Without a
// signed-in user the store is never called; a login prompt is requested
// instead and ErrLoginRequired returned.
func (v *View) Toggle(ctx context.Context, user session.User, recipe models.Recipe) (store.ToggleResult, error) {
	if !user.Authenticated() {
		if v.navigator != nil {
			v.navigator.Navigate(nav.ScreenLogin, nil)
		}
		return store.ToggleResult{}, ErrLoginRequired
	}
	return v.toggler.ToggleFavorite(ctx, user.ID, recipe)
}
