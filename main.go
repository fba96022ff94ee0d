package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"tastebook_backend/config"
	"tastebook_backend/draft"
	"tastebook_backend/handlers"
	"tastebook_backend/models"
	"tastebook_backend/ratings"
	"tastebook_backend/store"
)

// ratingSource is implemented by both stores; it feeds the rating cache.
type ratingSource interface {
	Ratings(ctx context.Context, ids []string) (map[string]models.Rating, error)
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	recipeStore, source, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize recipe store: %v", err)
	}
	defer cleanup()

	cache := ratings.NewCache(source.Ratings)
	manager := draft.NewManager(recipeStore)

	r := mux.NewRouter()

	r.HandleFunc("/recipes", func(w http.ResponseWriter, r *http.Request) {
		handlers.GetRecipes(recipeStore, w, r)
	}).Methods("GET")

	r.HandleFunc("/recipe", func(w http.ResponseWriter, r *http.Request) {
		handlers.GetRecipe(recipeStore, w, r)
	}).Methods("GET")

	r.HandleFunc("/delete/recipe", func(w http.ResponseWriter, r *http.Request) {
		handlers.DeleteRecipe(recipeStore, w, r)
	}).Methods("DELETE")

	r.HandleFunc("/editor/begin", func(w http.ResponseWriter, r *http.Request) {
		handlers.BeginEditor(manager, recipeStore, w, r)
	}).Methods("POST")

	r.HandleFunc("/editor/steps", func(w http.ResponseWriter, r *http.Request) {
		handlers.AppendStep(manager, w, r)
	}).Methods("POST")

	r.HandleFunc("/editor/steps", func(w http.ResponseWriter, r *http.Request) {
		handlers.RemoveStep(manager, w, r)
	}).Methods("DELETE")

	r.HandleFunc("/editor/steps", func(w http.ResponseWriter, r *http.Request) {
		handlers.UpdateStep(manager, w, r)
	}).Methods("PUT")

	r.HandleFunc("/editor/draft", func(w http.ResponseWriter, r *http.Request) {
		handlers.UpdateDraft(manager, w, r)
	}).Methods("PUT")

	r.HandleFunc("/editor/save", func(w http.ResponseWriter, r *http.Request) {
		handlers.SaveDraft(manager, w, r)
	}).Methods("POST")

	r.HandleFunc("/favorites", func(w http.ResponseWriter, r *http.Request) {
		handlers.GetFavorites(recipeStore, cache, w, r)
	}).Methods("GET")

	r.HandleFunc("/favorite/toggle", func(w http.ResponseWriter, r *http.Request) {
		handlers.ToggleFavorite(recipeStore, cache, w, r)
	}).Methods("POST")

	r.HandleFunc("/image", handlers.FetchStepImage).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Auth-User", "X-Forwarded-User"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// buildStore picks Firestore when a project is configured and falls back to
// the in-memory store for local runs.
func buildStore(ctx context.Context, cfg *config.Config) (store.RecipeStore, ratingSource, func(), error) {
	if cfg.FirestoreProject == "" {
		log.Println("No firestore_project configured, using in-memory store")
		mem := store.NewMemory()
		return mem, mem, func() {}, nil
	}

	if cfg.CredentialsFile != "" {
		if err := os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cfg.CredentialsFile); err != nil {
			return nil, nil, nil, err
		}
	}

	client, err := firestore.NewClient(ctx, cfg.FirestoreProject)
	if err != nil {
		return nil, nil, nil, err
	}

	fs := store.NewFirestore(client)
	return fs, fs, func() { client.Close() }, nil
}
