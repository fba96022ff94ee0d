package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tastebook_backend/favorites"
	"tastebook_backend/nav"
	"tastebook_backend/ratings"
	"tastebook_backend/session"
	"tastebook_backend/store"
)

// favoritesResponse is the favorites screen payload. RatingsVersion lets
// clients poll cheaply: rows only change when the version moves.
type favoritesResponse struct {
	Rows           []favorites.Row `json:"rows"`
	RatingsVersion uint64          `json:"ratingsVersion"`
}

// GetFavorites renders the signed-in user's favorites joined with whatever
// ratings are cached, and kicks off a background load for the rest. Rows
// for unloaded ratings come back in the "loading" state until a later poll.
func GetFavorites(s store.RecipeStore, cache *ratings.Cache, w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	user := session.FromRequest(r)
	if !user.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Sign in to see favorites")
		return
	}

	recipes, err := s.Favorites(ctx, user.ID)
	if err != nil {
		log.Printf("Failed to list favorites for user %s: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "Failed to list favorites")
		return
	}

	view := favorites.NewView(s, cache, nil)

	go func() {
		if err := view.Refresh(context.Background(), recipes); err != nil {
			log.Printf("Failed to load ratings: %v", err)
		}
	}()

	respondJSON(w, http.StatusOK, favoritesResponse{
		Rows:           view.Rows(recipes),
		RatingsVersion: cache.Version(),
	})
}

// ToggleFavoriteRequest names the recipe to toggle.
type ToggleFavoriteRequest struct {
	RecipeID string `json:"recipeId"`
}

type toggleResponse struct {
	store.ToggleResult
	Navigate *navigateHint `json:"navigate,omitempty"`
}

// ToggleFavorite flips favorite membership for the signed-in user. Without
// a session the store is untouched and the response asks for the login
// screen.
func ToggleFavorite(s store.RecipeStore, cache *ratings.Cache, w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RecipeID == "" {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	recipe, err := s.GetRecipe(ctx, req.RecipeID)
	if err == store.ErrNotFound {
		respondError(w, http.StatusNotFound, "No matching recipe found")
		return
	}
	if err != nil {
		log.Printf("Failed to retrieve recipe %s: %v", req.RecipeID, err)
		respondError(w, http.StatusInternalServerError, "Failed to retrieve recipe")
		return
	}

	recorder := &nav.Recorder{}
	view := favorites.NewView(s, cache, recorder)

	user := session.FromRequest(r)
	result, err := view.Toggle(ctx, user, recipe)
	if errors.Is(err, favorites.ErrLoginRequired) {
		screen, params := recorder.Last()
		respondJSON(w, http.StatusUnauthorized, toggleResponse{
			Navigate: &navigateHint{Screen: screen, Params: params},
		})
		return
	}
	if err != nil {
		log.Printf("Failed to toggle favorite for user %s: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	respondJSON(w, http.StatusOK, toggleResponse{ToggleResult: result})
}
