package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"tastebook_backend/session"
	"tastebook_backend/store"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// GetRecipes returns every stored recipe.
func GetRecipes(s store.RecipeStore, w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		log.Printf("Failed to list recipes: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to list recipes")
		return
	}

	respondJSON(w, http.StatusOK, recipes)
}

// GetRecipe returns the recipe named by the "id" query parameter.
func GetRecipe(s store.RecipeStore, w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	recipeID := r.URL.Query().Get("id")
	if recipeID == "" {
		respondError(w, http.StatusBadRequest, "Missing 'id' query parameter")
		return
	}

	recipe, err := s.GetRecipe(ctx, recipeID)
	if err == store.ErrNotFound {
		respondError(w, http.StatusNotFound, "No matching recipe found")
		return
	}
	if err != nil {
		log.Printf("Failed to retrieve recipe %s: %v", recipeID, err)
		respondError(w, http.StatusInternalServerError, "Failed to retrieve recipe")
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

// DeleteRecipe removes a recipe. Only its author may delete it.
func DeleteRecipe(s store.RecipeStore, w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	recipeID := r.URL.Query().Get("id")
	if recipeID == "" {
		respondError(w, http.StatusBadRequest, "Missing 'id' query parameter")
		return
	}

	user := session.FromRequest(r)
	if !user.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Sign in to delete recipes")
		return
	}

	recipe, err := s.GetRecipe(ctx, recipeID)
	if err == store.ErrNotFound {
		respondError(w, http.StatusNotFound, "No matching recipe found")
		return
	}
	if err != nil {
		log.Printf("Failed to retrieve recipe %s: %v", recipeID, err)
		respondError(w, http.StatusInternalServerError, "Failed to retrieve recipe")
		return
	}
	if recipe.AuthorID != user.ID {
		respondError(w, http.StatusForbidden, "Only the author can delete a recipe")
		return
	}

	if err := s.Delete(ctx, recipeID); err != nil {
		log.Printf("Failed to delete recipe %s: %v", recipeID, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
