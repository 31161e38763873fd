package ontology

import "time"

// AgentStatus is the overall condition of the agent.
type AgentStatus string

const (
	StatusInitializing AgentStatus = "initializing"
	StatusReady        AgentStatus = "ready"
	StatusActive       AgentStatus = "active"
	StatusBusy         AgentStatus = "busy"
	StatusPaused       AgentStatus = "paused"
	StatusError        AgentStatus = "error"
	StatusShuttingDown AgentStatus = "shutting-down"
	StatusTerminated   AgentStatus = "terminated"
)

func (s AgentStatus) Valid() bool {
	switch s {
	case StatusInitializing, StatusReady, StatusActive, StatusBusy,
		StatusPaused, StatusError, StatusShuttingDown, StatusTerminated:
		return true
	}
	return false
}

// ExecutionPhase is where the agent sits in its perceive/reason/act cycle.
type ExecutionPhase string

const (
	PhasePerception ExecutionPhase = "perception"
	PhaseReasoning  ExecutionPhase = "reasoning"
	PhasePlanning   ExecutionPhase = "planning"
	PhaseExecution  ExecutionPhase = "execution"
	PhaseMonitoring ExecutionPhase = "monitoring"
	PhaseLearning   ExecutionPhase = "learning"
	PhaseIdle       ExecutionPhase = "idle"
)

func (p ExecutionPhase) Valid() bool {
	switch p {
	case PhasePerception, PhaseReasoning, PhasePlanning, PhaseExecution,
		PhaseMonitoring, PhaseLearning, PhaseIdle:
		return true
	}
	return false
}

// AgentState is the agent-wide portion of a complete state.
type AgentState struct {
	ID                 string         `json:"id"`
	AgentID            string         `json:"agent_id"`
	Status             AgentStatus    `json:"status"`
	HealthScore        float64        `json:"health_score"`
	Uptime             float64        `json:"uptime"`
	LastActivity       time.Time      `json:"last_activity"`
	ActiveCapabilities []string       `json:"active_capabilities,omitempty"`
	ResourceAllocation map[string]any `json:"resource_allocation,omitempty"`
	ConfigurationHash  string         `json:"configuration_hash"`

	Extra map[string]any `json:"-"`
}

func (s AgentState) MarshalJSON() ([]byte, error) {
	type alias AgentState
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *AgentState) UnmarshalJSON(data []byte) error {
	type alias AgentState
	v := alias{HealthScore: 1.0}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = AgentState(v)
	s.Extra = extra
	return s.Validate()
}

func (s *AgentState) Validate() error {
	if s.ID == "" {
		return requiredErr("AgentState", "id")
	}
	if s.AgentID == "" {
		return requiredErr("AgentState", "agent_id")
	}
	if !s.Status.Valid() {
		return enumErr("AgentState", "status", string(s.Status))
	}
	if s.LastActivity.IsZero() {
		return requiredErr("AgentState", "last_activity")
	}
	if s.ConfigurationHash == "" {
		return requiredErr("AgentState", "configuration_hash")
	}
	return nil
}

// ExecutionState is the execution portion of a complete state.
type ExecutionState struct {
	ID                 string             `json:"id"`
	Phase              ExecutionPhase     `json:"phase"`
	ActiveTasks        []string           `json:"active_tasks,omitempty"`
	PendingActions     []string           `json:"pending_actions,omitempty"`
	ExecutionStack     []map[string]any   `json:"execution_stack,omitempty"`
	ResourceUsage      map[string]float64 `json:"resource_usage,omitempty"`
	PerformanceMetrics map[string]float64 `json:"performance_metrics,omitempty"`
	Bottlenecks        []string           `json:"bottlenecks,omitempty"`

	Extra map[string]any `json:"-"`
}

func (s ExecutionState) MarshalJSON() ([]byte, error) {
	type alias ExecutionState
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *ExecutionState) UnmarshalJSON(data []byte) error {
	type alias ExecutionState
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = ExecutionState(v)
	s.Extra = extra
	return s.Validate()
}

func (s *ExecutionState) Validate() error {
	if s.ID == "" {
		return requiredErr("ExecutionState", "id")
	}
	if !s.Phase.Valid() {
		return enumErr("ExecutionState", "phase", string(s.Phase))
	}
	return nil
}

// CognitiveState is the cognitive portion of a complete state.
type CognitiveState struct {
	ID              string   `json:"id"`
	AttentionFocus  []string `json:"attention_focus,omitempty"`
	WorkingMemory   []string `json:"working_memory,omitempty"`
	ActiveGoals     []string `json:"active_goals,omitempty"`
	ActivePlans     []string `json:"active_plans,omitempty"`
	ReasoningDepth  int      `json:"reasoning_depth"`
	CognitiveLoad   float64  `json:"cognitive_load"`
	LearningEnabled bool     `json:"learning_enabled"`
	ExplorationRate float64  `json:"exploration_rate"`

	Extra map[string]any `json:"-"`
}

func (s CognitiveState) MarshalJSON() ([]byte, error) {
	type alias CognitiveState
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *CognitiveState) UnmarshalJSON(data []byte) error {
	type alias CognitiveState
	v := alias{LearningEnabled: true, ExplorationRate: 0.1}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = CognitiveState(v)
	s.Extra = extra
	return s.Validate()
}

func (s *CognitiveState) Validate() error {
	if s.ID == "" {
		return requiredErr("CognitiveState", "id")
	}
	return nil
}

// PerceptualState is the perceptual portion of a complete state.
type PerceptualState struct {
	ID                     string             `json:"id"`
	ActiveSensors          []string           `json:"active_sensors,omitempty"`
	SensorReadings         map[string]any     `json:"sensor_readings,omitempty"`
	ObservationBuffer      []string           `json:"observation_buffer,omitempty"`
	AttentionFilters       []string           `json:"attention_filters,omitempty"`
	SignalQuality          map[string]float64 `json:"signal_quality,omitempty"`
	AnomalyDetectionActive bool               `json:"anomaly_detection_active"`

	Extra map[string]any `json:"-"`
}

func (s PerceptualState) MarshalJSON() ([]byte, error) {
	type alias PerceptualState
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *PerceptualState) UnmarshalJSON(data []byte) error {
	type alias PerceptualState
	v := alias{AnomalyDetectionActive: true}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = PerceptualState(v)
	s.Extra = extra
	return s.Validate()
}

func (s *PerceptualState) Validate() error {
	if s.ID == "" {
		return requiredErr("PerceptualState", "id")
	}
	return nil
}

// StateConstraint is an invariant the agent's state must hold to.
type StateConstraint struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	Expression     string     `json:"expression"`
	Severity       string     `json:"severity"`
	Active         bool       `json:"active"`
	ViolationCount int        `json:"violation_count"`
	LastViolation  *time.Time `json:"last_violation,omitempty"`

	Extra map[string]any `json:"-"`
}

func (c StateConstraint) MarshalJSON() ([]byte, error) {
	type alias StateConstraint
	return marshalWithExtra(alias(c), c.Extra)
}

func (c *StateConstraint) UnmarshalJSON(data []byte) error {
	type alias StateConstraint
	v := alias{Severity: "warning", Active: true}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*c = StateConstraint(v)
	c.Extra = extra
	return c.Validate()
}

func (c *StateConstraint) Validate() error {
	if c.ID == "" {
		return requiredErr("StateConstraint", "id")
	}
	if c.Name == "" {
		return requiredErr("StateConstraint", "name")
	}
	if c.Expression == "" {
		return requiredErr("StateConstraint", "expression")
	}
	return nil
}

// CompleteState bundles the agent's state across all dimensions at one point
// in time.
type CompleteState struct {
	Timestamp         time.Time          `json:"timestamp"`
	AgentState        AgentState         `json:"agent_state"`
	ExecutionState    ExecutionState     `json:"execution_state"`
	CognitiveState    CognitiveState     `json:"cognitive_state"`
	PerceptualState   PerceptualState    `json:"perceptual_state"`
	HistoricalSummary map[string]any     `json:"historical_summary,omitempty"`
	ActiveConstraints []StateConstraint  `json:"active_constraints,omitempty"`
	HealthIndicators  map[string]float64 `json:"health_indicators,omitempty"`

	Extra map[string]any `json:"-"`
}

func (s CompleteState) MarshalJSON() ([]byte, error) {
	type alias CompleteState
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *CompleteState) UnmarshalJSON(data []byte) error {
	type alias CompleteState
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = CompleteState(v)
	s.Extra = extra
	return s.Validate()
}

func (s *CompleteState) Validate() error {
	if s.Timestamp.IsZero() {
		return requiredErr("CompleteState", "timestamp")
	}
	if err := s.AgentState.Validate(); err != nil {
		return err
	}
	if err := s.ExecutionState.Validate(); err != nil {
		return err
	}
	if err := s.CognitiveState.Validate(); err != nil {
		return err
	}
	return s.PerceptualState.Validate()
}
