// Package openaitrace converts OpenAI-style agent trace documents into
// ontology runs. A trace is one JSON object with a flat list of message and
// tool steps; the converter maps each step onto the layered snapshot model,
// synthesizing the ids and timestamps the trace format leaves out.
package openaitrace

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/agentlogco/spool/pkg/ontology"
)

const (
	defaultModel     = "gpt-4"
	defaultCreatedBy = "openai"
	interfaceID      = "openai-api"
)

// Converter maps trace documents to runs. The zero value is not usable,
// construct with New.
type Converter struct {
	now       func() time.Time
	createdBy string
}

// Option configures a Converter.
type Option func(*Converter)

// WithClock replaces the current-time source. Conversion with a frozen clock
// is fully deterministic: identical input yields an identical run.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// WithCreatedBy overrides the creator recorded in the synthesized agent
// metadata. An empty name keeps the default.
func WithCreatedBy(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.createdBy = name
		}
	}
}

func New(opts ...Option) *Converter {
	c := &Converter{
		now:       time.Now,
		createdBy: defaultCreatedBy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertJSON parses raw trace JSON and converts it.
func (c *Converter) ConvertJSON(data []byte) (*ontology.Run, error) {
	var trace map[string]any
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("openaitrace: parse trace: %w", err)
	}
	return c.Convert(trace)
}

// Convert builds a fully populated run from one parsed trace document. Each
// call returns a fresh run; the caller owns it exclusively.
func (c *Converter) Convert(trace map[string]any) (*ontology.Run, error) {
	now := c.now().UTC()
	steps := traceSteps(trace)

	startTime, err := parseTime("started_at", trace["started_at"])
	if err != nil {
		return nil, err
	}
	endTime, err := parseTime("ended_at", trace["ended_at"])
	if err != nil {
		return nil, err
	}

	agent := c.buildAgent(trace, steps, startTime, now)

	runStart := now
	if startTime != nil {
		runStart = *startTime
	}

	traceID := stringField(trace, "id")
	run := &ontology.Run{
		ID:           traceID,
		Name:         fmt.Sprintf("OpenAI Agent Run %s", traceID),
		Agent:        agent,
		StartTime:    runStart,
		EndTime:      endTime,
		Status:       mapStatus(stringField(trace, "status")),
		InitialState: c.buildInitialState(agent.ID, startTime, now),
	}
	if startTime != nil && endTime != nil {
		d := endTime.Sub(*startTime).Seconds()
		run.Duration = &d
	}

	for idx, rawStep := range steps {
		step, err := c.buildStep(rawStep, idx, agent.ID, now)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", idx, err)
		}
		run.AddStep(step)
	}

	// Aggregate counters come from the raw step list, not the converted
	// tree, and are not recomputed if the run is mutated later.
	for _, rawStep := range steps {
		switch stringField(rawStep, "type") {
		case "message":
			run.TotalObservations++
			run.TotalMessages++
		case "tool":
			run.TotalObservations++
			run.TotalActions++
		}
	}

	if n := len(run.Steps); n > 0 {
		if cs := run.Steps[n-1].CompleteState; cs != nil {
			final := *cs
			run.FinalState = &final
		}
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}
	return run, nil
}

func (c *Converter) buildAgent(trace map[string]any, steps []map[string]any, startTime *time.Time, now time.Time) ontology.AgentInstance {
	agentID := stringField(trace, "agent_id")
	if agentID == "" {
		agentID = stringField(trace, "id")
	}
	if agentID == "" {
		agentID = "unknown"
	}

	types := []ontology.AgentType{ontology.AgentTypeConversational}
	for _, s := range steps {
		if stringField(s, "type") == "tool" {
			types = append(types, ontology.AgentTypeTaskExecution)
			break
		}
	}

	// One capability per distinct tool, in first-seen order.
	var capabilities []ontology.AgentCapability
	seen := map[string]bool{}
	for _, s := range steps {
		if stringField(s, "type") != "tool" {
			continue
		}
		toolName := stringField(s, "tool_name")
		if toolName == "" || seen[toolName] {
			continue
		}
		seen[toolName] = true
		capabilities = append(capabilities, ontology.AgentCapability{
			Name:    "tool:" + toolName,
			Version: "1.0.0",
			Enabled: true,
		})
	}

	model := stringField(trace, "model")
	if model == "" {
		model = defaultModel
	}

	createdAt := now
	if startTime != nil {
		createdAt = *startTime
	}

	return ontology.AgentInstance{
		ID:           agentID,
		Name:         fmt.Sprintf("OpenAI Agent %s", agentID),
		Types:        types,
		Domains:      []ontology.AgentDomain{ontology.AgentDomainGeneral},
		Capabilities: capabilities,
		Configuration: ontology.AgentConfiguration{
			ModelID:    model,
			Parameters: mapField(trace, "config"),
		},
		Metadata: ontology.AgentMetadata{
			CreatedAt: createdAt,
			CreatedBy: c.createdBy,
			Version:   "1.0.0",
			Tags:      []string{"openai", "trace-import"},
		},
	}
}

func (c *Converter) buildInitialState(agentID string, startTime *time.Time, now time.Time) *ontology.CompleteState {
	ts := now
	if startTime != nil {
		ts = *startTime
	}
	return &ontology.CompleteState{
		Timestamp: ts,
		AgentState: ontology.AgentState{
			ID:                agentID + "-state-initial",
			AgentID:           agentID,
			Status:            ontology.StatusInitializing,
			HealthScore:       1.0,
			LastActivity:      ts,
			ConfigurationHash: "initial",
		},
		ExecutionState: ontology.ExecutionState{
			ID:    agentID + "-exec-initial",
			Phase: ontology.PhaseIdle,
		},
		CognitiveState: ontology.CognitiveState{
			ID:              agentID + "-cog-initial",
			LearningEnabled: true,
			ExplorationRate: 0.1,
		},
		PerceptualState: ontology.PerceptualState{
			ID:                     agentID + "-percept-initial",
			AnomalyDetectionActive: true,
		},
	}
}

func (c *Converter) buildStep(rawStep map[string]any, index int, agentID string, now time.Time) (ontology.Step, error) {
	stepID := stringField(rawStep, "id")
	if stepID == "" {
		stepID = fmt.Sprintf("step-%d", index)
	}

	parsed, err := parseTime("timestamp", rawStep["timestamp"])
	if err != nil {
		return ontology.Step{}, err
	}
	ts := now
	if parsed != nil {
		ts = *parsed
	}

	stepType := stringField(rawStep, "type")
	name := stepType
	if name == "" {
		name = "unknown"
	}

	step := ontology.Step{
		ID:         stepID,
		Name:       name,
		StepNumber: index,
		StartTime:  ts,
		Inputs:     map[string]any{"original_step": rawStep},
	}

	switch stepType {
	case "message":
		step.PerceptionState = messagePerception(rawStep, stepID, agentID, ts)
		step.InteractionState = messageInteraction(rawStep, stepID, agentID, ts)
		step.Outputs = map[string]any{"message_content": stringField(rawStep, "content")}
	case "tool":
		step.ActionState = toolAction(rawStep, stepID, agentID, ts)
		step.Outputs = map[string]any{"tool_output": rawStep["output"]}
	}

	step.CompleteState = stepState(rawStep, stepID, agentID, ts)
	return step, nil
}

func messagePerception(rawStep map[string]any, stepID, agentID string, ts time.Time) *ontology.PerceptionSnapshot {
	role := stringField(rawStep, "role")
	if role == "" {
		role = "assistant"
	}
	observation := ontology.Observation{
		ID:          stepID + "-obs",
		ProcessorID: agentID + "-nlp-processor",
		SignalIDs:   []string{stepID + "-signal"},
		Type:        "text-message",
		Content:     stringField(rawStep, "content"),
		Confidence:  1.0,
		Timestamp:   ts,
		Metadata:    map[string]any{"role": role},
	}
	return &ontology.PerceptionSnapshot{
		Timestamp:           ts,
		CurrentObservations: []ontology.Observation{observation},
	}
}

func messageInteraction(rawStep map[string]any, stepID, agentID string, ts time.Time) *ontology.InteractionSnapshot {
	msg := ontology.Message{
		ID:          stepID,
		InterfaceID: interfaceID,
		Content:     stringField(rawStep, "content"),
		Timestamp:   ts,
	}
	if stringField(rawStep, "role") == "assistant" {
		msg.Type = ontology.MessageResponse
		msg.SenderID = agentID
		msg.RecipientID = "user"
	} else {
		msg.Type = ontology.MessageRequest
		msg.SenderID = "user"
		msg.RecipientID = agentID
	}
	return &ontology.InteractionSnapshot{
		Timestamp:      ts,
		RecentMessages: []ontology.Message{msg},
	}
}

func toolAction(rawStep map[string]any, stepID, agentID string, ts time.Time) *ontology.ActionSnapshot {
	// The trace format carries no separate invocation end time, so tool
	// execution is recorded as instant: start equals end.
	end := ts
	invocation := ontology.ToolInvocation{
		ID:                stepID + "-tool",
		ToolName:          stringField(rawStep, "tool_name"),
		ActionExecutionID: stepID,
		InputParameters:   mapField(rawStep, "input"),
		OutputData:        rawStep["output"],
		StartTime:         ts,
		EndTime:           &end,
	}
	execution := ontology.ActionExecution{
		ID:               stepID,
		ActionPlanID:     stepID + "-plan",
		Status:           ontology.ActionCompleted,
		StartTime:        ts,
		EndTime:          &end,
		ExecutorID:       agentID,
		ActualParameters: mapField(rawStep, "input"),
		Results:          rawStep["output"],
		ToolInvocation:   &invocation,
	}
	return &ontology.ActionSnapshot{
		Timestamp:        ts,
		CompletedActions: []ontology.ActionExecution{execution},
	}
}

func stepState(rawStep map[string]any, stepID, agentID string, ts time.Time) *ontology.CompleteState {
	phase := ontology.PhasePerception
	if stringField(rawStep, "type") == "tool" {
		phase = ontology.PhaseExecution
	}

	var lastInput any
	if content := stringField(rawStep, "content"); content != "" {
		lastInput = content
	} else {
		lastInput = rawStep["input"]
	}

	return &ontology.CompleteState{
		Timestamp: ts,
		AgentState: ontology.AgentState{
			ID:                agentID + "-state-" + stepID,
			AgentID:           agentID,
			Status:            ontology.StatusActive,
			HealthScore:       1.0,
			LastActivity:      ts,
			ConfigurationHash: "active",
		},
		ExecutionState: ontology.ExecutionState{
			ID:          agentID + "-exec-" + stepID,
			Phase:       phase,
			ActiveTasks: []string{stepID},
		},
		CognitiveState: ontology.CognitiveState{
			ID:              agentID + "-cog-" + stepID,
			AttentionFocus:  []string{stringField(rawStep, "type")},
			LearningEnabled: true,
			ExplorationRate: 0.1,
		},
		PerceptualState: ontology.PerceptualState{
			ID:                     agentID + "-percept-" + stepID,
			ActiveSensors:          []string{interfaceID},
			SensorReadings:         map[string]any{"last_input": lastInput},
			AnomalyDetectionActive: true,
		},
	}
}

// mapStatus translates the trace-level status through a fixed table. Any
// value outside the table, missing included, becomes unknown.
func mapStatus(status string) ontology.RunStatus {
	switch status {
	case "completed":
		return ontology.RunCompleted
	case "failed":
		return ontology.RunFailed
	case "cancelled":
		return ontology.RunCancelled
	case "running":
		return ontology.RunRunning
	}
	return ontology.RunUnknown
}

// parseTime parses an ISO-8601 timestamp field. Absent or null values yield
// nil without error; a present but unparseable value is a hard failure.
func parseTime(field string, value any) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, &ontology.MalformedTimestampError{
			Field: field,
			Value: fmt.Sprintf("%v", value),
			Err:   fmt.Errorf("expected string, got %T", value),
		}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Offset-less ISO-8601 timestamps are valid input; treat them as UTC.
		naive, naiveErr := time.Parse("2006-01-02T15:04:05.999999999", s)
		if naiveErr != nil {
			return nil, &ontology.MalformedTimestampError{Field: field, Value: s, Err: err}
		}
		t = naive
	}
	t = t.UTC()
	return &t, nil
}

func traceSteps(trace map[string]any) []map[string]any {
	raw, _ := trace["steps"].([]any)
	steps := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			steps = append(steps, m)
		}
	}
	return steps
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapField(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}
