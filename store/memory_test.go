package store

import (
	"context"
	"errors"
	"testing"

	"tastebook_backend/models"
)

func validRecipe() models.Recipe {
	return models.Recipe{
		Name:        "Congee",
		Ingredients: []string{"rice", "water"},
		Steps:       []models.Step{{Text: "simmer for an hour"}},
	}
}

func TestMemoryCreateAssignsID(t *testing.T) {
	m := NewMemory()

	id, err := m.Create(context.Background(), validRecipe())
	if err != nil {
		t.Fatalf("Create = %v", err)
	}
	if id == "" {
		t.Fatal("Create returned an empty ID")
	}

	got, err := m.GetRecipe(context.Background(), id)
	if err != nil {
		t.Fatalf("GetRecipe = %v", err)
	}
	if got.Name != "Congee" {
		t.Fatalf("stored name = %q", got.Name)
	}
}

func TestMemoryUpdateUnknownRecipe(t *testing.T) {
	m := NewMemory()

	err := m.Update(context.Background(), "missing", validRecipe())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update = %v, want ErrNotFound", err)
	}
}

func TestMemoryValidationCodes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Recipe)
		want   Code
	}{
		{
			name:   "no ingredients",
			mutate: func(r *models.Recipe) { r.Ingredients = nil },
			want:   CodeIngredientInvalid,
		},
		{
			name:   "blank ingredient",
			mutate: func(r *models.Recipe) { r.Ingredients = []string{"rice", " "} },
			want:   CodeIngredientInvalid,
		},
		{
			name:   "blank step",
			mutate: func(r *models.Recipe) { r.Steps = []models.Step{{Text: "  "}} },
			want:   CodeStepInvalid,
		},
		{
			name:   "no steps",
			mutate: func(r *models.Recipe) { r.Steps = nil },
			want:   CodeStepInvalid,
		},
		{
			name:   "bad step image scheme",
			mutate: func(r *models.Recipe) { r.Steps[0].ImageURL = "ftp://img/1.jpg" },
			want:   CodeImageInvalid,
		},
		{
			name:   "bad recipe image",
			mutate: func(r *models.Recipe) { r.ImageURL = "not a url\x7f://" },
			want:   CodeImageInvalid,
		},
		{
			name:   "no name",
			mutate: func(r *models.Recipe) { r.Name = "" },
			want:   CodeValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			recipe := validRecipe()
			tt.mutate(&recipe)

			_, err := m.Create(context.Background(), recipe)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := CodeOf(err); got != tt.want {
				t.Fatalf("CodeOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCodeOfUntaggedError(t *testing.T) {
	if got := CodeOf(errors.New("plain failure")); got != CodeGeneral {
		t.Fatalf("CodeOf = %s, want %s", got, CodeGeneral)
	}
}

func TestMemoryToggleFavorite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first, _ := m.Create(ctx, validRecipe())
	second, _ := m.Create(ctx, models.Recipe{
		Name:        "Dal",
		Ingredients: []string{"lentils"},
		Steps:       []models.Step{{Text: "cook"}},
	})

	r1, _ := m.GetRecipe(ctx, first)
	r2, _ := m.GetRecipe(ctx, second)

	result, err := m.ToggleFavorite(ctx, "u1", r1)
	if err != nil || !result.Favorited {
		t.Fatalf("ToggleFavorite = %+v, %v", result, err)
	}
	if _, err := m.ToggleFavorite(ctx, "u1", r2); err != nil {
		t.Fatalf("ToggleFavorite = %v", err)
	}

	favs, err := m.Favorites(ctx, "u1")
	if err != nil {
		t.Fatalf("Favorites = %v", err)
	}
	if len(favs) != 2 || favs[0].ID != first || favs[1].ID != second {
		t.Fatalf("favorites order = %v", favs)
	}

	ok, _ := m.IsFavorite(ctx, "u1", first)
	if !ok {
		t.Fatal("IsFavorite = false, want true")
	}

	result, err = m.ToggleFavorite(ctx, "u1", r1)
	if err != nil || result.Favorited {
		t.Fatalf("second toggle = %+v, %v, want unfavorited", result, err)
	}

	favs, _ = m.Favorites(ctx, "u1")
	if len(favs) != 1 || favs[0].ID != second {
		t.Fatalf("favorites after untoggle = %v", favs)
	}
}

func TestMemoryDeleteDropsFavorites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, _ := m.Create(ctx, validRecipe())
	recipe, _ := m.GetRecipe(ctx, id)
	if _, err := m.ToggleFavorite(ctx, "u1", recipe); err != nil {
		t.Fatalf("ToggleFavorite = %v", err)
	}

	if err := m.Delete(ctx, id); err != nil {
		t.Fatalf("Delete = %v", err)
	}

	if _, err := m.GetRecipe(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetRecipe after delete = %v, want ErrNotFound", err)
	}
	favs, _ := m.Favorites(ctx, "u1")
	if len(favs) != 0 {
		t.Fatalf("favorites after delete = %v, want empty", favs)
	}
}

func TestMemoryRatings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.SetRating(models.Rating{RecipeID: "r1", Average: 3.5, VoteCount: 4})

	out, err := m.Ratings(ctx, []string{"r1", "r2"})
	if err != nil {
		t.Fatalf("Ratings = %v", err)
	}

	if out["r1"].VoteCount != 4 || out["r1"].Average != 3.5 {
		t.Fatalf("rated entry = %+v", out["r1"])
	}
	if out["r2"].VoteCount != 0 {
		t.Fatalf("unrated entry = %+v, want zero votes", out["r2"])
	}
}
