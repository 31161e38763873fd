package eventstream

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentlogco/spool/pkg/ontology"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeRunImported is emitted after a converted run is persisted.
	EventTypeRunImported = "spool.run.imported"
)

// RunImportedEvent is a transport-neutral event payload for an imported run.
type RunImportedEvent struct {
	SchemaVersion int           `json:"schema_version"`
	EventType     string        `json:"event_type"`
	EventID       string        `json:"event_id"`
	EmittedAt     time.Time     `json:"emitted_at"`
	Source        EventSource   `json:"source"`
	RunMeta       RunMeta       `json:"run_meta"`
	Run           *ontology.Run `json:"run"`
}

// EventSource identifies where the run came from.
type EventSource struct {
	Connector string `json:"connector"`
	Project   string `json:"project,omitempty"`
}

// RunMeta captures import lifecycle metadata for the event.
type RunMeta struct {
	RunID         string             `json:"run_id"`
	Name          string             `json:"name"`
	Status        ontology.RunStatus `json:"status"`
	StepCount     int                `json:"step_count"`
	TotalMessages int                `json:"total_messages"`
	TotalActions  int                `json:"total_actions"`
}

// NewRunImportedEvent builds the canonical event for a freshly imported run.
func NewRunImportedEvent(run *ontology.Run, source EventSource) *RunImportedEvent {
	return &RunImportedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeRunImported,
		EventID:       "evt_" + uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Source:        source,
		RunMeta: RunMeta{
			RunID:         run.ID,
			Name:          run.Name,
			Status:        run.Status,
			StepCount:     len(run.Steps),
			TotalMessages: run.TotalMessages,
			TotalActions:  run.TotalActions,
		},
		Run: run,
	}
}
