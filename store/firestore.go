package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"tastebook_backend/models"
)

const (
	recipesCollection   = "recipes"
	favoritesCollection = "favorites"
	ratingsCollection   = "ratings"
)

// Firestore stores recipes and favorite memberships in Cloud Firestore.
// Favorites live in their own collection keyed "<userID>_<recipeID>" so a
// membership check is a single lookup.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

// favorite is the membership document written on toggle.
type favorite struct {
	UserID    string    `firestore:"userId"`
	RecipeID  string    `firestore:"recipeId"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func favoriteKey(userID, recipeID string) string {
	return userID + "_" + recipeID
}

func (f *Firestore) Create(ctx context.Context, recipe models.Recipe) (string, error) {
	const op = "firestore.Create"

	if err := validateRecipe(op, recipe); err != nil {
		return "", err
	}

	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}

	_, err := f.client.Collection(recipesCollection).Doc(recipe.ID).Set(ctx, recipe)
	if err != nil {
		return "", &Error{Code: CodeGeneral, Op: op, Err: err}
	}

	return recipe.ID, nil
}

func (f *Firestore) Update(ctx context.Context, id string, recipe models.Recipe) error {
	const op = "firestore.Update"

	if err := validateRecipe(op, recipe); err != nil {
		return err
	}

	recipe.ID = id
	_, err := f.client.Collection(recipesCollection).Doc(id).Set(ctx, recipe)
	if err != nil {
		return &Error{Code: CodeGeneral, Op: op, Err: err}
	}

	return nil
}

func (f *Firestore) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	const op = "firestore.GetRecipe"

	iter := f.client.Collection(recipesCollection).Where("id", "==", id).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return models.Recipe{}, ErrNotFound
	}
	if err != nil {
		return models.Recipe{}, &Error{Code: CodeGeneral, Op: op, Err: err}
	}

	var recipe models.Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return models.Recipe{}, &Error{Code: CodeGeneral, Op: op, Err: err}
	}

	backfillSlices(&recipe)
	return recipe, nil
}

func (f *Firestore) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	const op = "firestore.ListRecipes"

	recipes := []models.Recipe{}
	iter := f.client.Collection(recipesCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &Error{Code: CodeGeneral, Op: op, Err: err}
		}

		var recipe models.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, &Error{Code: CodeGeneral, Op: op, Err: err}
		}

		backfillSlices(&recipe)
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func (f *Firestore) Delete(ctx context.Context, id string) error {
	const op = "firestore.Delete"

	_, err := f.client.Collection(recipesCollection).Doc(id).Delete(ctx)
	if err != nil {
		return &Error{Code: CodeGeneral, Op: op, Err: err}
	}
	return nil
}

func (f *Firestore) Favorites(ctx context.Context, userID string) ([]models.Recipe, error) {
	const op = "firestore.Favorites"

	iter := f.client.Collection(favoritesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	recipes := []models.Recipe{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &Error{Code: CodeGeneral, Op: op, Err: err}
		}

		var fav favorite
		if err := doc.DataTo(&fav); err != nil {
			return nil, &Error{Code: CodeGeneral, Op: op, Err: err}
		}

		recipe, err := f.GetRecipe(ctx, fav.RecipeID)
		if err == ErrNotFound {
			// Recipe deleted after favoriting; drop the stale membership.
			continue
		}
		if err != nil {
			return nil, err
		}

		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func (f *Firestore) IsFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	const op = "firestore.IsFavorite"

	iter := f.client.Collection(favoritesCollection).
		Where("userId", "==", userID).
		Where("recipeId", "==", recipeID).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, &Error{Code: CodeGeneral, Op: op, Err: err}
	}
	return true, nil
}

func (f *Firestore) ToggleFavorite(ctx context.Context, userID string, recipe models.Recipe) (ToggleResult, error) {
	const op = "firestore.ToggleFavorite"

	favorited, err := f.IsFavorite(ctx, userID, recipe.ID)
	if err != nil {
		return ToggleResult{}, err
	}

	key := favoriteKey(userID, recipe.ID)
	if favorited {
		if _, err := f.client.Collection(favoritesCollection).Doc(key).Delete(ctx); err != nil {
			return ToggleResult{}, &Error{Code: CodeGeneral, Op: op, Err: err}
		}
		return ToggleResult{Favorited: false, Message: fmt.Sprintf("%s removed from favorites", recipe.Name)}, nil
	}

	fav := favorite{UserID: userID, RecipeID: recipe.ID, CreatedAt: time.Now()}
	if _, err := f.client.Collection(favoritesCollection).Doc(key).Set(ctx, fav); err != nil {
		return ToggleResult{}, &Error{Code: CodeGeneral, Op: op, Err: err}
	}
	return ToggleResult{Favorited: true, Message: fmt.Sprintf("%s added to favorites", recipe.Name)}, nil
}

// Ratings fetches the rating aggregates for the given recipe IDs. A recipe
// with no rating document gets a zero-vote entry so callers can tell "not
// rated" apart from "not loaded yet".
func (f *Firestore) Ratings(ctx context.Context, ids []string) (map[string]models.Rating, error) {
	const op = "firestore.Ratings"

	out := make(map[string]models.Rating, len(ids))
	for _, id := range ids {
		iter := f.client.Collection(ratingsCollection).Where("recipeId", "==", id).Documents(ctx)

		doc, err := iter.Next()
		if err == iterator.Done {
			iter.Stop()
			out[id] = models.Rating{RecipeID: id}
			continue
		}
		if err != nil {
			iter.Stop()
			return nil, &Error{Code: CodeGeneral, Op: op, Err: err}
		}

		var rating models.Rating
		if err := doc.DataTo(&rating); err != nil {
			iter.Stop()
			return nil, &Error{Code: CodeGeneral, Op: op, Err: err}
		}
		iter.Stop()

		rating.RecipeID = id
		out[id] = rating
	}

	return out, nil
}

// backfillSlices keeps decoded documents JSON-friendly; Firestore hands back
// nil for absent array fields.
func backfillSlices(recipe *models.Recipe) {
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	if recipe.Steps == nil {
		recipe.Steps = []models.Step{}
	}
	if recipe.Tags == nil {
		recipe.Tags = []string{}
	}
}
