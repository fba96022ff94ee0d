package store

import (
	"errors"
	"net/url"
	"strings"

	"tastebook_backend/models"
)

// validateRecipe enforces the write-side invariants shared by every store
// implementation. The returned error carries the matching classification
// code so save workflows can surface the right failure kind.
func validateRecipe(op string, recipe models.Recipe) error {
	if len(recipe.Ingredients) == 0 {
		return &Error{Code: CodeIngredientInvalid, Op: op, Err: errors.New("recipe has no ingredients")}
	}
	for _, ing := range recipe.Ingredients {
		if strings.TrimSpace(ing) == "" {
			return &Error{Code: CodeIngredientInvalid, Op: op, Err: errors.New("blank ingredient")}
		}
	}

	if len(recipe.Steps) == 0 {
		return &Error{Code: CodeStepInvalid, Op: op, Err: errors.New("recipe has no steps")}
	}
	for _, step := range recipe.Steps {
		if !step.Valid() {
			return &Error{Code: CodeStepInvalid, Op: op, Err: errors.New("blank step text")}
		}
		if err := validateImageURL(step.ImageURL); err != nil {
			return &Error{Code: CodeImageInvalid, Op: op, Err: err}
		}
	}

	if err := validateImageURL(recipe.ImageURL); err != nil {
		return &Error{Code: CodeImageInvalid, Op: op, Err: err}
	}

	if strings.TrimSpace(recipe.Name) == "" {
		return &Error{Code: CodeValidation, Op: op, Err: errors.New("recipe has no name")}
	}

	return nil
}

// validateImageURL checks presence-level well-formedness only; reachability
// is never probed.
func validateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("image url must be http or https")
	}
	return nil
}
