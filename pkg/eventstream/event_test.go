package eventstream_test

import (
	"context"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agentlogco/spool/pkg/eventstream"
	"github.com/agentlogco/spool/pkg/eventstream/nop"
	"github.com/agentlogco/spool/pkg/ontology"
)

func eventTestRun() *ontology.Run {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ontology.Run{
		ID:   "run-1",
		Name: "Test Run",
		Agent: ontology.AgentInstance{
			ID:    "agent-1",
			Name:  "Test Agent",
			Types: []ontology.AgentType{ontology.AgentTypeConversational},
			Metadata: ontology.AgentMetadata{
				CreatedAt: base,
				CreatedBy: "tester",
				Version:   "1.0.0",
			},
		},
		StartTime:     base,
		Status:        ontology.RunCompleted,
		Steps:         []ontology.Step{{ID: "s1", Name: "step", StartTime: base}},
		TotalMessages: 2,
		TotalActions:  1,
	}
}

var _ = Describe("NewRunImportedEvent", func() {
	It("stamps the schema version and event type", func() {
		event := eventstream.NewRunImportedEvent(eventTestRun(), eventstream.EventSource{Connector: "openai-trace"})

		Expect(event.SchemaVersion).To(Equal(eventstream.SchemaVersionV1))
		Expect(event.EventType).To(Equal(eventstream.EventTypeRunImported))
	})

	It("assigns a unique prefixed event id", func() {
		run := eventTestRun()
		source := eventstream.EventSource{Connector: "openai-trace"}

		first := eventstream.NewRunImportedEvent(run, source)
		second := eventstream.NewRunImportedEvent(run, source)

		Expect(first.EventID).To(HavePrefix("evt_"))
		Expect(second.EventID).NotTo(Equal(first.EventID))
	})

	It("summarizes the run in the meta block", func() {
		event := eventstream.NewRunImportedEvent(eventTestRun(), eventstream.EventSource{Connector: "openai-trace"})

		Expect(event.RunMeta.RunID).To(Equal("run-1"))
		Expect(event.RunMeta.Status).To(Equal(ontology.RunCompleted))
		Expect(event.RunMeta.StepCount).To(Equal(1))
		Expect(event.RunMeta.TotalMessages).To(Equal(2))
		Expect(event.RunMeta.TotalActions).To(Equal(1))
	})

	It("carries the full run payload", func() {
		run := eventTestRun()
		event := eventstream.NewRunImportedEvent(run, eventstream.EventSource{Connector: "openai-trace"})

		Expect(event.Run).To(BeIdenticalTo(run))
	})

	It("serializes to a self-describing JSON document", func() {
		event := eventstream.NewRunImportedEvent(eventTestRun(), eventstream.EventSource{
			Connector: "openai-trace",
			Project:   "demo",
		})

		data, err := json.Marshal(event)
		Expect(err).NotTo(HaveOccurred())

		var doc map[string]any
		Expect(json.Unmarshal(data, &doc)).To(Succeed())
		Expect(doc).To(HaveKeyWithValue("event_type", "spool.run.imported"))
		Expect(doc).To(HaveKeyWithValue("schema_version", 1.0))
		Expect(doc["source"]).To(HaveKeyWithValue("project", "demo"))
		Expect(doc["run"]).To(HaveKeyWithValue("id", "run-1"))
	})
})

var _ = Describe("nop publisher", func() {
	It("accepts events without error", func() {
		publisher := nop.NewPublisher()
		defer publisher.Close()

		event := eventstream.NewRunImportedEvent(eventTestRun(), eventstream.EventSource{Connector: "openai-trace"})
		Expect(publisher.PublishRun(context.Background(), event)).To(Succeed())
	})

	It("rejects a nil event", func() {
		publisher := nop.NewPublisher()

		err := publisher.PublishRun(context.Background(), nil)
		Expect(err).To(MatchError(eventstream.ErrNilRunEvent))
	})
})
