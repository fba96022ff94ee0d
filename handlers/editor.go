package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"tastebook_backend/draft"
	"tastebook_backend/models"
	"tastebook_backend/nav"
	"tastebook_backend/session"
	"tastebook_backend/store"
)

// BeginEditorRequest opens an editor session. With a RecipeID the stored
// recipe is loaded for editing (or forking, when someone else wrote it);
// without one the session starts on a blank recipe.
type BeginEditorRequest struct {
	RecipeID string `json:"recipeId,omitempty"`
}

// BeginEditor opens a draft editing session for the signed-in user.
func BeginEditor(m *draft.Manager, s store.RecipeStore, w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	user := session.FromRequest(r)
	if !user.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Sign in to edit recipes")
		return
	}

	var req BeginEditorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var recipe models.Recipe
	owned := false
	if req.RecipeID != "" {
		var err error
		recipe, err = s.GetRecipe(ctx, req.RecipeID)
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "No matching recipe found")
			return
		}
		if err != nil {
			log.Printf("Failed to retrieve recipe %s: %v", req.RecipeID, err)
			respondError(w, http.StatusInternalServerError, "Failed to retrieve recipe")
			return
		}
		owned = recipe.AuthorID == user.ID
		if !owned {
			// Forking someone else's recipe: the copy belongs to the forker.
			recipe.AuthorID = user.ID
		}
	} else {
		recipe.AuthorID = user.ID
	}

	editor := m.Begin(user.ID, recipe, owned)
	respondJSON(w, http.StatusOK, editor.Snapshot())
}

func editorFor(m *draft.Manager, w http.ResponseWriter, r *http.Request) (*draft.Editor, session.User, bool) {
	user := session.FromRequest(r)
	if !user.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Sign in to edit recipes")
		return nil, user, false
	}

	editor, err := m.Get(user.ID)
	if err != nil {
		respondError(w, http.StatusNotFound, "No editor session; begin one first")
		return nil, user, false
	}
	return editor, user, true
}

// AppendStep adds a blank step to the user's draft.
func AppendStep(m *draft.Manager, w http.ResponseWriter, r *http.Request) {
	editor, _, ok := editorFor(m, w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, editor.AppendStep())
}

// RemoveStep deletes the step at the "index" query parameter from the
// user's draft. The last remaining step cannot be removed.
func RemoveStep(m *draft.Manager, w http.ResponseWriter, r *http.Request) {
	editor, _, ok := editorFor(m, w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'index' query parameter")
		return
	}

	d, err := editor.RemoveStep(index)
	switch {
	case errors.Is(err, draft.ErrMinimumOneStep):
		respondError(w, http.StatusConflict, "A recipe needs at least one step")
		return
	case errors.Is(err, draft.ErrStepOutOfRange):
		respondError(w, http.StatusBadRequest, "Step index out of range")
		return
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// UpdateStepRequest sets one field of one step.
type UpdateStepRequest struct {
	Index int             `json:"index"`
	Field draft.StepField `json:"field"`
	Value string          `json:"value"`
}

// UpdateStep updates a step field on the user's draft.
func UpdateStep(m *draft.Manager, w http.ResponseWriter, r *http.Request) {
	editor, _, ok := editorFor(m, w, r)
	if !ok {
		return
	}

	var req UpdateStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	d, err := editor.UpdateStepField(req.Index, req.Field, req.Value)
	if errors.Is(err, draft.ErrStepOutOfRange) {
		respondError(w, http.StatusBadRequest, "Step index out of range")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// UpdateDraftRequest replaces draft fields the step editor does not own.
type UpdateDraftRequest struct {
	Name        *string   `json:"name,omitempty"`
	Ingredients *[]string `json:"ingredients,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
}

// UpdateDraft applies non-step edits (name, ingredients, tags, image) to
// the user's draft.
func UpdateDraft(m *draft.Manager, w http.ResponseWriter, r *http.Request) {
	editor, _, ok := editorFor(m, w, r)
	if !ok {
		return
	}

	var req UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	d := editor.Update(func(d *draft.Draft) {
		if req.Name != nil {
			d.Name = *req.Name
		}
		if req.Ingredients != nil {
			d.Ingredients = *req.Ingredients
		}
		if req.Tags != nil {
			d.Tags = *req.Tags
		}
		if req.ImageURL != nil {
			d.ImageURL = *req.ImageURL
		}
	})
	respondJSON(w, http.StatusOK, d)
}

// saveResponse reports a finished save attempt.
type saveResponse struct {
	ID       string          `json:"id"`
	State    draft.SaveState `json:"state"`
	Navigate navigateHint    `json:"navigate"`
}

type navigateHint struct {
	Screen nav.Screen        `json:"screen"`
	Params map[string]string `json:"params,omitempty"`
}

// SaveDraft validates and persists the user's draft. The session ends on
// success; on any failure it stays open for correction.
func SaveDraft(m *draft.Manager, w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	editor, user, ok := editorFor(m, w, r)
	if !ok {
		return
	}

	id, err := editor.Save(ctx)
	if err != nil {
		var vErr *draft.ValidationError
		switch {
		case errors.Is(err, draft.ErrSaveInProgress):
			respondError(w, http.StatusConflict, "A save is already in progress")
		case errors.As(err, &vErr):
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error": vErr.Error(),
				"kind":  string(vErr.Kind),
			})
		default:
			log.Printf("Failed to save draft for user %s: %v", user.ID, err)
			respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": "Failed to save recipe",
				"kind":  string(store.CodeOf(err)),
			})
			editor.Coord.Reset()
		}
		return
	}

	state := editor.Coord.State()
	screen, params := editor.Nav.Last()
	m.End(user.ID)

	status := http.StatusOK
	if state == draft.StateCreateSuccess {
		status = http.StatusCreated
	}
	respondJSON(w, status, saveResponse{
		ID:       id,
		State:    state,
		Navigate: navigateHint{Screen: screen, Params: params},
	})
}
