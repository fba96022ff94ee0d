package draft

import (
	"errors"
	"fmt"

	"tastebook_backend/models"
)

// StepField names a mutable field of a step record.
type StepField string

const (
	FieldText     StepField = "text"
	FieldImageURL StepField = "imageUrl"
)

var ErrMinimumOneStep = errors.New("recipe needs at least one step")

// AppendStep adds a blank step to the end of the list. There is no upper
// bound on step count.
func (d *Draft) AppendStep() {
	steps := make([]models.Step, len(d.Steps), len(d.Steps)+1)
	copy(steps, d.Steps)
	d.Steps = append(steps, models.Step{})
}

// RemoveStep deletes the step at index i. Removing the last remaining step
// is refused with ErrMinimumOneStep and the list is left untouched.
func (d *Draft) RemoveStep(i int) error {
	if len(d.Steps) <= 1 {
		return ErrMinimumOneStep
	}
	if i < 0 || i >= len(d.Steps) {
		panic(fmt.Sprintf("draft: step index %d out of range [0,%d)", i, len(d.Steps)))
	}

	steps := make([]models.Step, 0, len(d.Steps)-1)
	steps = append(steps, d.Steps[:i]...)
	steps = append(steps, d.Steps[i+1:]...)
	d.Steps = steps
	return nil
}

// UpdateStepField sets the named field of the step at index i. Callers must
// pass an in-range index; an unknown field name is an error.
func (d *Draft) UpdateStepField(i int, field StepField, value string) error {
	if i < 0 || i >= len(d.Steps) {
		panic(fmt.Sprintf("draft: step index %d out of range [0,%d)", i, len(d.Steps)))
	}

	steps := make([]models.Step, len(d.Steps))
	copy(steps, d.Steps)

	switch field {
	case FieldText:
		steps[i].Text = value
		steps[i].Description = ""
	case FieldImageURL:
		steps[i].ImageURL = value
	default:
		return fmt.Errorf("draft: unknown step field %q", field)
	}

	d.Steps = steps
	return nil
}
