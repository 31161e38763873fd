package ontology

import "time"

// ActionType classifies what an action affects.
type ActionType string

const (
	ActionExternal ActionType = "external"
	ActionInternal ActionType = "internal"
	ActionSocial   ActionType = "social"
	ActionMeta     ActionType = "meta"
)

func (t ActionType) Valid() bool {
	switch t {
	case ActionExternal, ActionInternal, ActionSocial, ActionMeta:
		return true
	}
	return false
}

// ActionCategory groups actions by mechanism.
type ActionCategory string

const (
	CategoryCommunication    ActionCategory = "communication"
	CategoryComputation      ActionCategory = "computation"
	CategoryDataManipulation ActionCategory = "data-manipulation"
	CategoryResourceAccess   ActionCategory = "resource-access"
	CategoryToolUse          ActionCategory = "tool-use"
	CategoryDecisionMaking   ActionCategory = "decision-making"
	CategoryLearning         ActionCategory = "learning"
	CategoryMonitoring       ActionCategory = "monitoring"
)

func (c ActionCategory) Valid() bool {
	switch c {
	case CategoryCommunication, CategoryComputation, CategoryDataManipulation,
		CategoryResourceAccess, CategoryToolUse, CategoryDecisionMaking,
		CategoryLearning, CategoryMonitoring:
		return true
	}
	return false
}

// ActionStatus is the lifecycle state of an action execution.
type ActionStatus string

const (
	ActionPlanned   ActionStatus = "planned"
	ActionValidated ActionStatus = "validated"
	ActionExecuting ActionStatus = "executing"
	ActionCompleted ActionStatus = "completed"
	ActionFailed    ActionStatus = "failed"
	ActionCancelled ActionStatus = "cancelled"
	ActionSuspended ActionStatus = "suspended"
)

func (s ActionStatus) Valid() bool {
	switch s {
	case ActionPlanned, ActionValidated, ActionExecuting, ActionCompleted,
		ActionFailed, ActionCancelled, ActionSuspended:
		return true
	}
	return false
}

// ActionPlan is an action the agent intends to take.
type ActionPlan struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            ActionType       `json:"type"`
	Category        ActionCategory   `json:"category"`
	Description     string           `json:"description"`
	GoalID          string           `json:"goal_id,omitempty"`
	PlanID          string           `json:"plan_id,omitempty"`
	Parameters      map[string]any   `json:"parameters,omitempty"`
	Preconditions   []map[string]any `json:"preconditions,omitempty"`
	ExpectedEffects []map[string]any `json:"expected_effects,omitempty"`
	Priority        int              `json:"priority"`
	Deadline        *time.Time       `json:"deadline"`

	Extra map[string]any `json:"-"`
}

func (p ActionPlan) MarshalJSON() ([]byte, error) {
	type alias ActionPlan
	return marshalWithExtra(alias(p), p.Extra)
}

func (p *ActionPlan) UnmarshalJSON(data []byte) error {
	type alias ActionPlan
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*p = ActionPlan(v)
	p.Extra = extra
	return p.Validate()
}

func (p *ActionPlan) Validate() error {
	if p.ID == "" {
		return requiredErr("ActionPlan", "id")
	}
	if p.Name == "" {
		return requiredErr("ActionPlan", "name")
	}
	if !p.Type.Valid() {
		return enumErr("ActionPlan", "type", string(p.Type))
	}
	if !p.Category.Valid() {
		return enumErr("ActionPlan", "category", string(p.Category))
	}
	return nil
}

// ToolInvocation is one call into an external tool or API. The source trace
// format has no separate invocation end time, so converted invocations carry
// start_time == end_time.
type ToolInvocation struct {
	ID                string         `json:"id"`
	ToolName          string         `json:"tool_name"`
	ToolVersion       string         `json:"tool_version,omitempty"`
	ActionExecutionID string         `json:"action_execution_id"`
	InputParameters   map[string]any `json:"input_parameters"`
	OutputData        any            `json:"output_data"`
	StatusCode        *int           `json:"status_code,omitempty"`
	ErrorMessage      string         `json:"error_message,omitempty"`
	StartTime         time.Time      `json:"start_time"`
	EndTime           *time.Time     `json:"end_time"`

	Extra map[string]any `json:"-"`
}

func (t ToolInvocation) MarshalJSON() ([]byte, error) {
	type alias ToolInvocation
	return marshalWithExtra(alias(t), t.Extra)
}

func (t *ToolInvocation) UnmarshalJSON(data []byte) error {
	type alias ToolInvocation
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*t = ToolInvocation(v)
	t.Extra = extra
	return t.Validate()
}

func (t *ToolInvocation) Validate() error {
	if t.ID == "" {
		return requiredErr("ToolInvocation", "id")
	}
	if t.ToolName == "" {
		return requiredErr("ToolInvocation", "tool_name")
	}
	if t.ActionExecutionID == "" {
		return requiredErr("ToolInvocation", "action_execution_id")
	}
	if t.StartTime.IsZero() {
		return requiredErr("ToolInvocation", "start_time")
	}
	return nil
}

// ActionExecution is the record of one action being carried out. An execution
// backed by a tool call nests its ToolInvocation.
type ActionExecution struct {
	ID               string           `json:"id"`
	ActionPlanID     string           `json:"action_plan_id"`
	Status           ActionStatus     `json:"status"`
	StartTime        time.Time        `json:"start_time"`
	EndTime          *time.Time       `json:"end_time"`
	Duration         *float64         `json:"duration,omitempty"`
	ExecutorID       string           `json:"executor_id"`
	ActualParameters map[string]any   `json:"actual_parameters,omitempty"`
	Results          any              `json:"results"`
	SideEffects      []map[string]any `json:"side_effects,omitempty"`
	ResourceUsage    map[string]any   `json:"resource_usage,omitempty"`
	ToolInvocation   *ToolInvocation  `json:"tool_invocation,omitempty"`

	Extra map[string]any `json:"-"`
}

func (e ActionExecution) MarshalJSON() ([]byte, error) {
	type alias ActionExecution
	return marshalWithExtra(alias(e), e.Extra)
}

func (e *ActionExecution) UnmarshalJSON(data []byte) error {
	type alias ActionExecution
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*e = ActionExecution(v)
	e.Extra = extra
	return e.Validate()
}

func (e *ActionExecution) Validate() error {
	if e.ID == "" {
		return requiredErr("ActionExecution", "id")
	}
	if e.ActionPlanID == "" {
		return requiredErr("ActionExecution", "action_plan_id")
	}
	if !e.Status.Valid() {
		return enumErr("ActionExecution", "status", string(e.Status))
	}
	if e.StartTime.IsZero() {
		return requiredErr("ActionExecution", "start_time")
	}
	if e.ExecutorID == "" {
		return requiredErr("ActionExecution", "executor_id")
	}
	if e.ToolInvocation != nil {
		return e.ToolInvocation.Validate()
	}
	return nil
}

// ActionSnapshot is the action layer at one point in time.
type ActionSnapshot struct {
	Timestamp           time.Time          `json:"timestamp"`
	PlannedActions      []ActionPlan       `json:"planned_actions,omitempty"`
	ExecutingActions    []ActionExecution  `json:"executing_actions,omitempty"`
	CompletedActions    []ActionExecution  `json:"completed_actions,omitempty"`
	FailedActions       []ActionExecution  `json:"failed_actions,omitempty"`
	ActionQueueSize     int                `json:"action_queue_size"`
	ResourceUtilization map[string]float64 `json:"resource_utilization,omitempty"`

	Extra map[string]any `json:"-"`
}

func (s ActionSnapshot) MarshalJSON() ([]byte, error) {
	type alias ActionSnapshot
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *ActionSnapshot) UnmarshalJSON(data []byte) error {
	type alias ActionSnapshot
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = ActionSnapshot(v)
	s.Extra = extra
	return s.Validate()
}

func (s *ActionSnapshot) Validate() error {
	if s.Timestamp.IsZero() {
		return requiredErr("ActionSnapshot", "timestamp")
	}
	return nil
}
