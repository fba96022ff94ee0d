package models

import "testing"

func TestStepEffectiveText(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want string
	}{
		{name: "canonical text", step: Step{Text: "whisk eggs"}, want: "whisk eggs"},
		{name: "legacy description", step: Step{Description: "fold gently"}, want: "fold gently"},
		{name: "text wins over description", step: Step{Text: "sear", Description: "grill"}, want: "sear"},
		{name: "both empty", step: Step{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.step.EffectiveText(); got != tt.want {
				t.Fatalf("EffectiveText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStepValid(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want bool
	}{
		{name: "text present", step: Step{Text: "boil water"}, want: true},
		{name: "legacy description present", step: Step{Description: "drain"}, want: true},
		{name: "blank", step: Step{}, want: false},
		{name: "whitespace only", step: Step{Text: "   \t"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.step.Valid(); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStepNormalize(t *testing.T) {
	legacy := Step{Description: "rest the dough", ImageURL: "https://img/1.jpg"}

	got := legacy.Normalize()

	if got.Text != "rest the dough" {
		t.Fatalf("normalized text = %q, want %q", got.Text, "rest the dough")
	}
	if got.Description != "" {
		t.Fatalf("normalized description = %q, want empty", got.Description)
	}
	if got.ImageURL != legacy.ImageURL {
		t.Fatalf("normalize dropped image url")
	}

	canonical := Step{Text: "knead", Description: "old words"}
	if got := canonical.Normalize(); got.Text != "knead" || got.Description != "" {
		t.Fatalf("Normalize() = %+v, want text kept and description cleared", got)
	}
}
