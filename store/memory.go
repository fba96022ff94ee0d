package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tastebook_backend/models"
)

// Memory is an in-process RecipeStore. It backs tests and local runs where
// no Firestore project is configured.
type Memory struct {
	mu        sync.Mutex
	recipes   map[string]models.Recipe
	favorites map[string][]string // userID -> recipe IDs in favoriting order
	ratings   map[string]models.Rating
}

func NewMemory() *Memory {
	return &Memory{
		recipes:   make(map[string]models.Recipe),
		favorites: make(map[string][]string),
		ratings:   make(map[string]models.Rating),
	}
}

func (m *Memory) Create(ctx context.Context, recipe models.Recipe) (string, error) {
	const op = "memory.Create"

	if err := validateRecipe(op, recipe); err != nil {
		return "", err
	}

	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes[recipe.ID] = recipe

	return recipe.ID, nil
}

func (m *Memory) Update(ctx context.Context, id string, recipe models.Recipe) error {
	const op = "memory.Update"

	if err := validateRecipe(op, recipe); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recipes[id]; !ok {
		return ErrNotFound
	}

	recipe.ID = id
	m.recipes[id] = recipe
	return nil
}

func (m *Memory) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recipe, ok := m.recipes[id]
	if !ok {
		return models.Recipe{}, ErrNotFound
	}
	return recipe, nil
}

func (m *Memory) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recipes := make([]models.Recipe, 0, len(m.recipes))
	for _, recipe := range m.recipes {
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.recipes, id)
	for userID, ids := range m.favorites {
		m.favorites[userID] = removeID(ids, id)
	}
	return nil
}

func (m *Memory) Favorites(ctx context.Context, userID string) ([]models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recipes := []models.Recipe{}
	for _, id := range m.favorites[userID] {
		if recipe, ok := m.recipes[id]; ok {
			recipes = append(recipes, recipe)
		}
	}
	return recipes, nil
}

func (m *Memory) IsFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.favorites[userID] {
		if id == recipeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) ToggleFavorite(ctx context.Context, userID string, recipe models.Recipe) (ToggleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.favorites[userID]
	for _, id := range ids {
		if id == recipe.ID {
			m.favorites[userID] = removeID(ids, recipe.ID)
			return ToggleResult{Favorited: false, Message: fmt.Sprintf("%s removed from favorites", recipe.Name)}, nil
		}
	}

	m.favorites[userID] = append(ids, recipe.ID)
	return ToggleResult{Favorited: true, Message: fmt.Sprintf("%s added to favorites", recipe.Name)}, nil
}

// SetRating seeds a rating aggregate, for tests and local runs.
func (m *Memory) SetRating(rating models.Rating) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings[rating.RecipeID] = rating
}

// Ratings mirrors Firestore.Ratings: unknown recipes yield zero-vote entries.
func (m *Memory) Ratings(ctx context.Context, ids []string) (map[string]models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]models.Rating, len(ids))
	for _, id := range ids {
		if rating, ok := m.ratings[id]; ok {
			out[id] = rating
		} else {
			out[id] = models.Rating{RecipeID: id}
		}
	}
	return out, nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, have := range ids {
		if have != id {
			out = append(out, have)
		}
	}
	return out
}
