package models

import "strings"

type Recipe struct {
	ID          string   `firestore:"id" json:"id"`
	Name        string   `firestore:"Name" json:"name"`
	Description string   `firestore:"Description" json:"description"`
	AuthorID    string   `firestore:"authorId" json:"authorId"`
	Ingredients []string `firestore:"Ingredients" json:"ingredients"`
	Steps       []Step   `firestore:"Steps" json:"steps"`
	Tags        []string `firestore:"tags" json:"tags"`
	ImageURL    string   `firestore:"imageURL" json:"imageUrl"`
}

// Step is one instruction unit of a recipe. Older documents stored the
// instruction in Description; Text is canonical on write and Description is
// only ever read.
type Step struct {
	Text        string `firestore:"text" json:"text"`
	Description string `firestore:"Description,omitempty" json:"description,omitempty"`
	ImageURL    string `firestore:"imageURL" json:"imageUrl"`
}

// EffectiveText returns the canonical text, falling back to the legacy
// description field for documents written before the rename.
func (s Step) EffectiveText() string {
	if s.Text != "" {
		return s.Text
	}
	return s.Description
}

// Valid reports whether the step carries any instruction after trimming.
func (s Step) Valid() bool {
	return strings.TrimSpace(s.EffectiveText()) != ""
}

// Normalize folds the legacy description into the canonical text field.
// Normalized steps never carry Description, so writes are single-field.
func (s Step) Normalize() Step {
	if s.Text == "" {
		s.Text = s.Description
	}
	s.Description = ""
	return s
}

type Rating struct {
	RecipeID  string  `firestore:"recipeId" json:"recipeId"`
	Average   float64 `firestore:"Average" json:"average"`
	VoteCount int     `firestore:"VoteCount" json:"voteCount"`
}
