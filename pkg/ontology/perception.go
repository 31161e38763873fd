package ontology

import "time"

// SensorType classifies how raw input reaches the agent.
type SensorType string

const (
	SensorTextInput        SensorType = "text-input"
	SensorDocumentInput    SensorType = "document-input"
	SensorAPIInput         SensorType = "api-input"
	SensorDatabaseInput    SensorType = "database-input"
	SensorFileSystemInput  SensorType = "file-system-input"
	SensorNetworkInput     SensorType = "network-input"
	SensorEnvironmentState SensorType = "environment-state"
	SensorAgentState       SensorType = "agent-state"
	SensorUserFeedback     SensorType = "user-feedback"
	SensorSystemMetrics    SensorType = "system-metrics"
)

func (t SensorType) Valid() bool {
	switch t {
	case SensorTextInput, SensorDocumentInput, SensorAPIInput, SensorDatabaseInput,
		SensorFileSystemInput, SensorNetworkInput, SensorEnvironmentState,
		SensorAgentState, SensorUserFeedback, SensorSystemMetrics:
		return true
	}
	return false
}

// SignalType classifies raw signal payloads.
type SignalType string

const (
	SignalText         SignalType = "text"
	SignalNumeric      SignalType = "numeric"
	SignalBinary       SignalType = "binary"
	SignalStructured   SignalType = "structured"
	SignalUnstructured SignalType = "unstructured"
	SignalTimeSeries   SignalType = "time-series"
	SignalEvent        SignalType = "event"
)

func (t SignalType) Valid() bool {
	switch t {
	case SignalText, SignalNumeric, SignalBinary, SignalStructured,
		SignalUnstructured, SignalTimeSeries, SignalEvent:
		return true
	}
	return false
}

// Sensor captures raw input for the agent.
type Sensor struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          SensorType     `json:"type"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Active        bool           `json:"active"`
	SamplingRate  *float64       `json:"sampling_rate,omitempty"`
	Filters       []string       `json:"filters,omitempty"`

	Extra map[string]any `json:"-"`
}

func (s Sensor) MarshalJSON() ([]byte, error) {
	type alias Sensor
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *Sensor) UnmarshalJSON(data []byte) error {
	type alias Sensor
	v := alias{Active: true}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = Sensor(v)
	s.Extra = extra
	return s.Validate()
}

func (s *Sensor) Validate() error {
	if s.ID == "" {
		return requiredErr("Sensor", "id")
	}
	if s.Name == "" {
		return requiredErr("Sensor", "name")
	}
	if !s.Type.Valid() {
		return enumErr("Sensor", "type", string(s.Type))
	}
	return nil
}

// RawSignal is one untreated reading from a sensor.
type RawSignal struct {
	ID        string         `json:"id"`
	SensorID  string         `json:"sensor_id"`
	Type      SignalType     `json:"type"`
	Data      any            `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
	Quality   float64        `json:"quality"`
	Metadata  map[string]any `json:"metadata,omitempty"`

	Extra map[string]any `json:"-"`
}

func (s RawSignal) MarshalJSON() ([]byte, error) {
	type alias RawSignal
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *RawSignal) UnmarshalJSON(data []byte) error {
	type alias RawSignal
	v := alias{Quality: 1.0}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = RawSignal(v)
	s.Extra = extra
	return s.Validate()
}

func (s *RawSignal) Validate() error {
	if s.ID == "" {
		return requiredErr("RawSignal", "id")
	}
	if s.SensorID == "" {
		return requiredErr("RawSignal", "sensor_id")
	}
	if !s.Type.Valid() {
		return enumErr("RawSignal", "type", string(s.Type))
	}
	if s.Timestamp.IsZero() {
		return requiredErr("RawSignal", "timestamp")
	}
	return nil
}

// Observation is a processed signal: what the agent actually perceived.
type Observation struct {
	ID          string         `json:"id"`
	ProcessorID string         `json:"processor_id"`
	SignalIDs   []string       `json:"signal_ids"`
	Type        string         `json:"type"`
	Content     any            `json:"content"`
	Confidence  float64        `json:"confidence"`
	Timestamp   time.Time      `json:"timestamp"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	Extra map[string]any `json:"-"`
}

func (o Observation) MarshalJSON() ([]byte, error) {
	type alias Observation
	return marshalWithExtra(alias(o), o.Extra)
}

func (o *Observation) UnmarshalJSON(data []byte) error {
	type alias Observation
	v := alias{Confidence: 1.0}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*o = Observation(v)
	o.Extra = extra
	return o.Validate()
}

func (o *Observation) Validate() error {
	if o.ID == "" {
		return requiredErr("Observation", "id")
	}
	if o.ProcessorID == "" {
		return requiredErr("Observation", "processor_id")
	}
	if o.Type == "" {
		return requiredErr("Observation", "type")
	}
	if o.Timestamp.IsZero() {
		return requiredErr("Observation", "timestamp")
	}
	return nil
}

// ContextFilter narrows which observations the agent attends to.
type ContextFilter struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Criteria map[string]any `json:"criteria"`
	Priority int            `json:"priority"`
	Active   bool           `json:"active"`

	Extra map[string]any `json:"-"`
}

func (f ContextFilter) MarshalJSON() ([]byte, error) {
	type alias ContextFilter
	return marshalWithExtra(alias(f), f.Extra)
}

func (f *ContextFilter) UnmarshalJSON(data []byte) error {
	type alias ContextFilter
	v := alias{Active: true}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*f = ContextFilter(v)
	f.Extra = extra
	return f.Validate()
}

func (f *ContextFilter) Validate() error {
	if f.ID == "" {
		return requiredErr("ContextFilter", "id")
	}
	if f.Name == "" {
		return requiredErr("ContextFilter", "name")
	}
	return nil
}

// PerceptionSnapshot is the perception layer at one point in time. Its
// timestamp is independent of the owning step's timestamps.
type PerceptionSnapshot struct {
	Timestamp           time.Time       `json:"timestamp"`
	ActiveSensors       []Sensor        `json:"active_sensors,omitempty"`
	RecentSignals       []RawSignal     `json:"recent_signals,omitempty"`
	CurrentObservations []Observation   `json:"current_observations,omitempty"`
	ActiveFilters       []ContextFilter `json:"active_filters,omitempty"`
	ProcessingQueueSize int             `json:"processing_queue_size"`

	Extra map[string]any `json:"-"`
}

func (s PerceptionSnapshot) MarshalJSON() ([]byte, error) {
	type alias PerceptionSnapshot
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *PerceptionSnapshot) UnmarshalJSON(data []byte) error {
	type alias PerceptionSnapshot
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = PerceptionSnapshot(v)
	s.Extra = extra
	return s.Validate()
}

func (s *PerceptionSnapshot) Validate() error {
	if s.Timestamp.IsZero() {
		return requiredErr("PerceptionSnapshot", "timestamp")
	}
	return nil
}
