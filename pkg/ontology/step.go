package ontology

import "time"

// Step is one unit of work inside a run. Steps nest: a step owns its
// sub-steps, and every tree operation on Run traverses them depth first in
// listed order.
type Step struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StepNumber   int    `json:"step_number"`
	ParentStepID string `json:"parent_step_id,omitempty"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Duration  *float64   `json:"duration,omitempty"`

	PerceptionState  *PerceptionSnapshot  `json:"perception_state,omitempty"`
	CognitionState   *CognitionSnapshot   `json:"cognition_state,omitempty"`
	ActionState      *ActionSnapshot      `json:"action_state,omitempty"`
	CompleteState    *CompleteState       `json:"complete_state,omitempty"`
	InteractionState *InteractionSnapshot `json:"interaction_state,omitempty"`
	OversightState   *OversightSnapshot   `json:"oversight_state,omitempty"`

	Inputs   map[string]any `json:"inputs,omitempty"`
	Outputs  map[string]any `json:"outputs,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`

	SubSteps []Step `json:"sub_steps,omitempty"`

	Extra map[string]any `json:"-"`
}

func (s Step) MarshalJSON() ([]byte, error) {
	type alias Step
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *Step) UnmarshalJSON(data []byte) error {
	type alias Step
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = Step(v)
	s.Extra = extra
	return s.Validate()
}

func (s *Step) Validate() error {
	if s.ID == "" {
		return requiredErr("Step", "id")
	}
	if s.Name == "" {
		return requiredErr("Step", "name")
	}
	if s.StartTime.IsZero() {
		return requiredErr("Step", "start_time")
	}
	for i := range s.SubSteps {
		if err := s.SubSteps[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// findStep walks steps depth first and returns the first step whose id
// matches.
func findStep(steps []Step, id string) (*Step, bool) {
	for i := range steps {
		if steps[i].ID == id {
			return &steps[i], true
		}
		if found, ok := findStep(steps[i].SubSteps, id); ok {
			return found, true
		}
	}
	return nil, false
}

func maxDepth(steps []Step, current int) int {
	if len(steps) == 0 {
		return current
	}
	max := current
	for i := range steps {
		if len(steps[i].SubSteps) > 0 {
			if d := maxDepth(steps[i].SubSteps, current+1); d > max {
				max = d
			}
		}
	}
	return max
}

func collectDurations(steps []Step, out *[]float64) {
	for i := range steps {
		if steps[i].Duration != nil {
			*out = append(*out, *steps[i].Duration)
		}
		collectDurations(steps[i].SubSteps, out)
	}
}
