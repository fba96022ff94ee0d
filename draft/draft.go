// Package draft holds the in-memory state of a recipe being created or
// edited, and the save workflow that turns it into a persisted recipe.
package draft

import "tastebook_backend/models"

// Draft is a recipe under edit. ID is non-blank only when the draft was
// opened from a pre-existing recipe; combined with OwnedByCurrentUser it
// decides whether saving updates in place or creates a new recipe.
type Draft struct {
	ID                 string        `json:"id"`
	OwnedByCurrentUser bool          `json:"ownedByCurrentUser"`
	AuthorID           string        `json:"authorId"`
	Name               string        `json:"name"`
	Ingredients        []string      `json:"ingredients"`
	Steps              []models.Step `json:"steps"`
	Tags               []string      `json:"tags"`
	ImageURL           string        `json:"imageUrl"`
}

// New builds a draft from an incoming recipe payload. Steps are normalized
// on ingestion so legacy description-only steps read and write through the
// canonical text field. A payload with no steps gets one blank step; the
// editor keeps the step list non-empty from then on.
func New(recipe models.Recipe, ownedByCurrentUser bool) *Draft {
	steps := make([]models.Step, 0, len(recipe.Steps))
	for _, s := range recipe.Steps {
		steps = append(steps, s.Normalize())
	}
	if len(steps) == 0 {
		steps = []models.Step{{}}
	}

	return &Draft{
		ID:                 recipe.ID,
		OwnedByCurrentUser: ownedByCurrentUser,
		AuthorID:           recipe.AuthorID,
		Name:               recipe.Name,
		Ingredients:        recipe.Ingredients,
		Steps:              steps,
		Tags:               recipe.Tags,
		ImageURL:           recipe.ImageURL,
	}
}

// validSteps returns the steps worth persisting: those whose trimmed text is
// non-blank. Blank steps are excluded, not errors.
func (d *Draft) validSteps() []models.Step {
	valid := make([]models.Step, 0, len(d.Steps))
	for _, s := range d.Steps {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	return valid
}

// recipe materializes the draft with the given steps.
func (d *Draft) recipe(steps []models.Step) models.Recipe {
	return models.Recipe{
		ID:          d.ID,
		AuthorID:    d.AuthorID,
		Name:        d.Name,
		Ingredients: d.Ingredients,
		Steps:       steps,
		Tags:        d.Tags,
		ImageURL:    d.ImageURL,
	}
}
