// Package workshop holds the workshop aggregate: an ordered sequence of
// steps, each pairing source code with line-keyed annotations, highlights
// and an optional diff against the previous step.
package workshop

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrStepNotFound indicates the requested step is not part of the workshop.
var ErrStepNotFound = errors.New("step not found")

// ErrEmptyTitle indicates a workshop or step was created without a title.
var ErrEmptyTitle = errors.New("title must not be empty")

// Workshop is the aggregate root for one guided lesson.
type Workshop struct {
	id          string
	title       string
	description string
	createdAt   time.Time
	updatedAt   time.Time
	steps       []Step
}

// NewWorkshop creates a Workshop with a generated id.
func NewWorkshop(title, description string) (Workshop, error) {
	if title == "" {
		return Workshop{}, ErrEmptyTitle
	}
	now := time.Now().UTC()
	return Workshop{
		id:          uuid.New().String(),
		title:       title,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructWorkshop rebuilds a Workshop from persisted state.
func ReconstructWorkshop(id, title, description string, createdAt, updatedAt time.Time, steps []Step) Workshop {
	w := Workshop{
		id:          id,
		title:       title,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
	w.steps = make([]Step, len(steps))
	copy(w.steps, steps)
	return w
}

// ID returns the workshop id.
func (w Workshop) ID() string {
	return w.id
}

// Title returns the workshop title.
func (w Workshop) Title() string {
	return w.title
}

// Description returns the workshop description.
func (w Workshop) Description() string {
	return w.description
}

// CreatedAt returns the creation timestamp.
func (w Workshop) CreatedAt() time.Time {
	return w.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (w Workshop) UpdatedAt() time.Time {
	return w.updatedAt
}

// Steps returns the steps in order.
func (w Workshop) Steps() []Step {
	steps := make([]Step, len(w.steps))
	copy(steps, w.steps)
	return steps
}

// Step returns the step with the given id.
func (w Workshop) Step(id string) (Step, error) {
	for _, s := range w.steps {
		if s.ID() == id {
			return s, nil
		}
	}
	return Step{}, ErrStepNotFound
}

// StepAt returns the step at position, 0-indexed.
func (w Workshop) StepAt(position int) (Step, error) {
	if position < 0 || position >= len(w.steps) {
		return Step{}, ErrStepNotFound
	}
	return w.steps[position], nil
}

// StepCount returns the number of steps.
func (w Workshop) StepCount() int {
	return len(w.steps)
}

// WithTitle returns a copy with the title replaced.
func (w Workshop) WithTitle(title string) Workshop {
	w.title = title
	return w.touched()
}

// WithDescription returns a copy with the description replaced.
func (w Workshop) WithDescription(description string) Workshop {
	w.description = description
	return w.touched()
}

// AppendStep returns a copy with step appended at the end.
func (w Workshop) AppendStep(step Step) Workshop {
	steps := make([]Step, len(w.steps), len(w.steps)+1)
	copy(steps, w.steps)
	w.steps = append(steps, step)
	return w.touched()
}

// ReplaceStep returns a copy with the step of the same id replaced.
func (w Workshop) ReplaceStep(step Step) (Workshop, error) {
	for i, s := range w.steps {
		if s.ID() == step.ID() {
			steps := make([]Step, len(w.steps))
			copy(steps, w.steps)
			steps[i] = step
			w.steps = steps
			return w.touched(), nil
		}
	}
	return Workshop{}, ErrStepNotFound
}

// RemoveStep returns a copy with the step of the given id removed.
func (w Workshop) RemoveStep(id string) (Workshop, error) {
	for i, s := range w.steps {
		if s.ID() == id {
			steps := make([]Step, 0, len(w.steps)-1)
			steps = append(steps, w.steps[:i]...)
			steps = append(steps, w.steps[i+1:]...)
			w.steps = steps
			return w.touched(), nil
		}
	}
	return Workshop{}, ErrStepNotFound
}

// MoveStep returns a copy with the step of the given id moved to position.
func (w Workshop) MoveStep(id string, position int) (Workshop, error) {
	if position < 0 || position >= len(w.steps) {
		return Workshop{}, ErrStepNotFound
	}
	from := -1
	for i, s := range w.steps {
		if s.ID() == id {
			from = i
			break
		}
	}
	if from == -1 {
		return Workshop{}, ErrStepNotFound
	}

	steps := make([]Step, 0, len(w.steps))
	steps = append(steps, w.steps[:from]...)
	steps = append(steps, w.steps[from+1:]...)
	moved := w.steps[from]
	steps = append(steps[:position], append([]Step{moved}, steps[position:]...)...)
	w.steps = steps
	return w.touched(), nil
}

func (w Workshop) touched() Workshop {
	w.updatedAt = time.Now().UTC()
	return w
}
