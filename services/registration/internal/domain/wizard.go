package domain

import "context"

const TotalSteps = 3

// Wizard is the navigation state around one draft. Steps run from 1 to TotalSteps.
type Wizard struct {
	Step       int   `json:"step"`
	TotalSteps int   `json:"total_steps"`
	Draft      Draft `json:"draft"`
}

func NewWizard(role Role) *Wizard {
	return &Wizard{Step: 1, TotalSteps: TotalSteps, Draft: NewDraft(role)}
}

// Next advances one step when the current step validates. Otherwise the step
// is kept and a *ValidationError lists every failure.
func (w *Wizard) Next() error {
	if msgs := Validate(w.Step, w.Draft); len(msgs) > 0 {
		return &ValidationError{Step: w.Step, Messages: msgs}
	}
	w.Step = min(w.Step+1, w.TotalSteps)
	return nil
}

// Prev steps back without validating.
func (w *Wizard) Prev() {
	w.Step = max(w.Step-1, 1)
}

func (w *Wizard) IsLastStep() bool {
	return w.Step == w.TotalSteps
}

// Progress is the completion percentage shown next to the step counter.
func (w *Wizard) Progress() int {
	if w.TotalSteps == 0 {
		return 0
	}
	return w.Step * 100 / w.TotalSteps
}

// Submit re-validates the last step and hands the flattened draft to s.
// A rejection is returned as *SubmissionError and leaves the wizard as it was.
func (w *Wizard) Submit(ctx context.Context, s Submitter) (Receipt, error) {
	if !w.IsLastStep() {
		return Receipt{}, ErrNotFinalStep
	}
	if msgs := Validate(w.TotalSteps, w.Draft); len(msgs) > 0 {
		return Receipt{}, &ValidationError{Step: w.TotalSteps, Messages: msgs}
	}

	receipt, err := s.Submit(ctx, w.Draft.Payload())
	if err != nil {
		return Receipt{}, &SubmissionError{Err: err}
	}
	return receipt, nil
}
