package ontology

import "time"

// ReasoningType classifies a reasoning approach.
type ReasoningType string

const (
	ReasoningDeductive     ReasoningType = "deductive"
	ReasoningInductive     ReasoningType = "inductive"
	ReasoningAbductive     ReasoningType = "abductive"
	ReasoningProbabilistic ReasoningType = "probabilistic"
	ReasoningFuzzy         ReasoningType = "fuzzy"
	ReasoningRuleBased     ReasoningType = "rule-based"
	ReasoningCaseBased     ReasoningType = "case-based"
	ReasoningModelBased    ReasoningType = "model-based"
)

func (t ReasoningType) Valid() bool {
	switch t {
	case ReasoningDeductive, ReasoningInductive, ReasoningAbductive,
		ReasoningProbabilistic, ReasoningFuzzy, ReasoningRuleBased,
		ReasoningCaseBased, ReasoningModelBased:
		return true
	}
	return false
}

// DecisionStrategy classifies how a decision was made.
type DecisionStrategy string

const (
	StrategyOptimization  DecisionStrategy = "optimization"
	StrategySatisficing   DecisionStrategy = "satisficing"
	StrategyHeuristic     DecisionStrategy = "heuristic"
	StrategyMultiCriteria DecisionStrategy = "multi-criteria"
	StrategyGameTheoretic DecisionStrategy = "game-theoretic"
	StrategyConsensus     DecisionStrategy = "consensus"
)

func (s DecisionStrategy) Valid() bool {
	switch s {
	case StrategyOptimization, StrategySatisficing, StrategyHeuristic,
		StrategyMultiCriteria, StrategyGameTheoretic, StrategyConsensus:
		return true
	}
	return false
}

// Reasoning is one inference process, from inputs to a conclusion.
type Reasoning struct {
	ID             string           `json:"id"`
	Type           ReasoningType    `json:"type"`
	Inputs         []string         `json:"inputs"`
	Premises       []map[string]any `json:"premises,omitempty"`
	InferenceSteps []map[string]any `json:"inference_steps,omitempty"`
	Conclusion     any              `json:"conclusion"`
	Confidence     float64          `json:"confidence"`
	Timestamp      time.Time        `json:"timestamp"`

	Extra map[string]any `json:"-"`
}

func (r Reasoning) MarshalJSON() ([]byte, error) {
	type alias Reasoning
	return marshalWithExtra(alias(r), r.Extra)
}

func (r *Reasoning) UnmarshalJSON(data []byte) error {
	type alias Reasoning
	v := alias{Confidence: 1.0}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*r = Reasoning(v)
	r.Extra = extra
	return r.Validate()
}

func (r *Reasoning) Validate() error {
	if r.ID == "" {
		return requiredErr("Reasoning", "id")
	}
	if !r.Type.Valid() {
		return enumErr("Reasoning", "type", string(r.Type))
	}
	if r.Timestamp.IsZero() {
		return requiredErr("Reasoning", "timestamp")
	}
	return nil
}

// Decision records the options an agent considered and the one it selected.
type Decision struct {
	ID             string             `json:"id"`
	ReasoningIDs   []string           `json:"reasoning_ids"`
	Strategy       DecisionStrategy   `json:"strategy"`
	Options        []map[string]any   `json:"options"`
	SelectedOption map[string]any     `json:"selected_option"`
	Criteria       map[string]float64 `json:"criteria,omitempty"`
	Confidence     float64            `json:"confidence"`
	Timestamp      time.Time          `json:"timestamp"`
	Justification  string             `json:"justification,omitempty"`

	Extra map[string]any `json:"-"`
}

func (d Decision) MarshalJSON() ([]byte, error) {
	type alias Decision
	return marshalWithExtra(alias(d), d.Extra)
}

func (d *Decision) UnmarshalJSON(data []byte) error {
	type alias Decision
	v := alias{Confidence: 1.0}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*d = Decision(v)
	d.Extra = extra
	return d.Validate()
}

func (d *Decision) Validate() error {
	if d.ID == "" {
		return requiredErr("Decision", "id")
	}
	if !d.Strategy.Valid() {
		return enumErr("Decision", "strategy", string(d.Strategy))
	}
	if d.Timestamp.IsZero() {
		return requiredErr("Decision", "timestamp")
	}
	return nil
}

// Goal is one objective the agent pursues.
type Goal struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Priority        int            `json:"priority"`
	ParentGoalID    string         `json:"parent_goal_id,omitempty"`
	SubGoalIDs      []string       `json:"sub_goal_ids,omitempty"`
	Constraints     map[string]any `json:"constraints,omitempty"`
	SuccessCriteria map[string]any `json:"success_criteria"`
	Status          string         `json:"status"`
	Progress        float64        `json:"progress"`

	Extra map[string]any `json:"-"`
}

func (g Goal) MarshalJSON() ([]byte, error) {
	type alias Goal
	return marshalWithExtra(alias(g), g.Extra)
}

func (g *Goal) UnmarshalJSON(data []byte) error {
	type alias Goal
	v := alias{Status: "active"}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*g = Goal(v)
	g.Extra = extra
	return g.Validate()
}

func (g *Goal) Validate() error {
	if g.ID == "" {
		return requiredErr("Goal", "id")
	}
	if g.Name == "" {
		return requiredErr("Goal", "name")
	}
	return nil
}

// Plan is an execution plan covering one or more goals.
type Plan struct {
	ID                string              `json:"id"`
	GoalIDs           []string            `json:"goal_ids"`
	Steps             []map[string]any    `json:"steps"`
	Dependencies      map[string][]string `json:"dependencies,omitempty"`
	ResourcesRequired map[string]any      `json:"resources_required,omitempty"`
	EstimatedDuration *float64            `json:"estimated_duration,omitempty"`
	Confidence        float64             `json:"confidence"`
	Alternatives      []string            `json:"alternatives,omitempty"`

	Extra map[string]any `json:"-"`
}

func (p Plan) MarshalJSON() ([]byte, error) {
	type alias Plan
	return marshalWithExtra(alias(p), p.Extra)
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	type alias Plan
	v := alias{Confidence: 1.0}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*p = Plan(v)
	p.Extra = extra
	return p.Validate()
}

func (p *Plan) Validate() error {
	if p.ID == "" {
		return requiredErr("Plan", "id")
	}
	return nil
}

// CognitionSnapshot is the cognition layer at one point in time.
type CognitionSnapshot struct {
	Timestamp        time.Time      `json:"timestamp"`
	ActiveReasoning  []Reasoning    `json:"active_reasoning,omitempty"`
	RecentDecisions  []Decision     `json:"recent_decisions,omitempty"`
	CurrentGoals     []Goal         `json:"current_goals,omitempty"`
	ActivePlans      []Plan         `json:"active_plans,omitempty"`
	KnowledgeStats   map[string]int `json:"knowledge_stats,omitempty"`
	LearningRate     float64        `json:"learning_rate"`
	UncertaintyLevel float64        `json:"uncertainty_level"`

	Extra map[string]any `json:"-"`
}

func (s CognitionSnapshot) MarshalJSON() ([]byte, error) {
	type alias CognitionSnapshot
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *CognitionSnapshot) UnmarshalJSON(data []byte) error {
	type alias CognitionSnapshot
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = CognitionSnapshot(v)
	s.Extra = extra
	return s.Validate()
}

func (s *CognitionSnapshot) Validate() error {
	if s.Timestamp.IsZero() {
		return requiredErr("CognitionSnapshot", "timestamp")
	}
	return nil
}
