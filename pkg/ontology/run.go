package ontology

import (
	"sort"
	"time"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
	RunUnknown   RunStatus = "unknown"
)

func (s RunStatus) Valid() bool {
	switch s {
	case RunRunning, RunCompleted, RunFailed, RunCancelled, RunUnknown:
		return true
	}
	return false
}

// Run is one end-to-end agent execution, the top-level aggregate. It owns
// the agent instance, the step forest, and the aggregate counters derived
// from the steps.
type Run struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Agent AgentInstance `json:"agent"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Duration  *float64   `json:"duration,omitempty"`

	Status       RunStatus `json:"status"`
	Success      *bool     `json:"success,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`

	InitialState   *CompleteState `json:"initial_state,omitempty"`
	InitialGoals   []string       `json:"initial_goals,omitempty"`
	InitialContext map[string]any `json:"initial_context,omitempty"`

	FinalState    *CompleteState `json:"final_state,omitempty"`
	AchievedGoals []string       `json:"achieved_goals,omitempty"`
	FinalContext  map[string]any `json:"final_context,omitempty"`

	Steps []Step `json:"steps,omitempty"`

	TotalObservations  int `json:"total_observations"`
	TotalDecisions     int `json:"total_decisions"`
	TotalActions       int `json:"total_actions"`
	TotalMessages      int `json:"total_messages"`
	TotalAnomalies     int `json:"total_anomalies"`
	TotalInterventions int `json:"total_interventions"`

	PerformanceMetrics map[string]float64 `json:"performance_metrics,omitempty"`
	ResourceUsage      map[string]any     `json:"resource_usage,omitempty"`

	RiskEvents       []string `json:"risk_events,omitempty"`
	ComplianceChecks []string `json:"compliance_checks,omitempty"`
	HumanReviews     []string `json:"human_reviews,omitempty"`

	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`

	Extra map[string]any `json:"-"`
}

func (r Run) MarshalJSON() ([]byte, error) {
	type alias Run
	return marshalWithExtra(alias(r), r.Extra)
}

func (r *Run) UnmarshalJSON(data []byte) error {
	type alias Run
	v := alias{Status: RunRunning}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*r = Run(v)
	r.Extra = extra
	return r.Validate()
}

func (r *Run) Validate() error {
	if r.ID == "" {
		return requiredErr("Run", "id")
	}
	if r.Name == "" {
		return requiredErr("Run", "name")
	}
	if err := r.Agent.Validate(); err != nil {
		return err
	}
	if r.StartTime.IsZero() {
		return requiredErr("Run", "start_time")
	}
	if !r.Status.Valid() {
		return enumErr("Run", "status", string(r.Status))
	}
	for i := range r.Steps {
		if err := r.Steps[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddStep appends a step to the run's top-level step list.
func (r *Run) AddStep(step Step) {
	r.Steps = append(r.Steps, step)
}

// FindStepByID searches the step tree depth first, sub-steps included, and
// returns the first step whose id matches. The bool reports whether a step
// was found.
func (r *Run) FindStepByID(id string) (*Step, bool) {
	return findStep(r.Steps, id)
}

// TimelineEvent is one entry in the chronological view of a run.
type TimelineEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	StepID    string    `json:"step_id"`
	StepName  string    `json:"step_name"`
	Depth     int       `json:"depth"`
}

// Timeline flattens the step tree into step_start/step_end events sorted by
// timestamp. The sort is stable, so events sharing a timestamp keep their
// depth-first emission order.
func (r *Run) Timeline() []TimelineEvent {
	var events []TimelineEvent

	var emit func(step *Step, depth int)
	emit = func(step *Step, depth int) {
		events = append(events, TimelineEvent{
			Timestamp: step.StartTime,
			Type:      "step_start",
			StepID:    step.ID,
			StepName:  step.Name,
			Depth:     depth,
		})
		if step.EndTime != nil {
			events = append(events, TimelineEvent{
				Timestamp: *step.EndTime,
				Type:      "step_end",
				StepID:    step.ID,
				StepName:  step.Name,
				Depth:     depth,
			})
		}
		for i := range step.SubSteps {
			emit(&step.SubSteps[i], depth+1)
		}
	}
	for i := range r.Steps {
		emit(&r.Steps[i], 0)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events
}

// MaxNestingDepth reports how deep the sub-step chains go: 0 for a run with
// no steps, 1 when every step is top level, one more per nesting level.
func (r *Run) MaxNestingDepth() int {
	if len(r.Steps) == 0 {
		return 0
	}
	return maxDepth(r.Steps, 1)
}

// AverageStepDuration is the mean duration over every step in the tree that
// carries one, or 0 when none do.
func (r *Run) AverageStepDuration() float64 {
	var durations []float64
	collectDurations(r.Steps, &durations)
	if len(durations) == 0 {
		return 0
	}
	var total float64
	for _, d := range durations {
		total += d
	}
	return total / float64(len(durations))
}

// Metrics aggregates run-level measurements with the run's own performance
// metrics merged on top.
func (r *Run) Metrics() map[string]any {
	metrics := map[string]any{
		"total_steps":           len(r.Steps),
		"total_duration":        0.0,
		"average_step_duration": r.AverageStepDuration(),
		"max_nesting_depth":     r.MaxNestingDepth(),
		"success_rate":          0.0,
	}
	if r.Duration != nil {
		metrics["total_duration"] = *r.Duration
	}
	for k, v := range r.PerformanceMetrics {
		metrics[k] = v
	}
	return metrics
}
