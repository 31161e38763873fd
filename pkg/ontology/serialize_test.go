package ontology_test

import (
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agentlogco/spool/pkg/ontology"
)

const minimalRunDoc = `{
	"id": "run-1",
	"name": "Test Run",
	"agent": {
		"id": "agent-1",
		"name": "Test Agent",
		"types": ["conversational"],
		"configuration": {},
		"metadata": {
			"created_at": "2025-03-01T12:00:00Z",
			"created_by": "tester",
			"version": "1.0.0"
		}
	},
	"start_time": "2025-03-01T12:00:00Z",
	"end_time": null
}`

var _ = Describe("Serialization", func() {
	Describe("UnmarshalRun", func() {
		It("parses a minimal document", func() {
			run, err := ontology.UnmarshalRun([]byte(minimalRunDoc))
			Expect(err).NotTo(HaveOccurred())
			Expect(run.ID).To(Equal("run-1"))
			Expect(run.Agent.Name).To(Equal("Test Agent"))
		})

		It("defaults a missing status to running", func() {
			run, err := ontology.UnmarshalRun([]byte(minimalRunDoc))
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Status).To(Equal(ontology.RunRunning))
		})

		It("rejects a status outside the closed set", func() {
			doc := []byte(`{
				"id": "run-1",
				"name": "Test Run",
				"agent": {
					"id": "agent-1",
					"name": "Test Agent",
					"types": ["conversational"],
					"configuration": {},
					"metadata": {
						"created_at": "2025-03-01T12:00:00Z",
						"created_by": "tester",
						"version": "1.0.0"
					}
				},
				"start_time": "2025-03-01T12:00:00Z",
				"end_time": null,
				"status": "paused"
			}`)

			_, err := ontology.UnmarshalRun(doc)
			var verr *ontology.ValidationError
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Entity).To(Equal("Run"))
			Expect(verr.Field).To(Equal("status"))
		})

		It("rejects a run missing a required field", func() {
			_, err := ontology.UnmarshalRun([]byte(`{"name": "no id"}`))
			var verr *ontology.ValidationError
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Entity).To(Equal("Run"))
			Expect(verr.Field).To(Equal("id"))
		})

		It("applies capability defaults", func() {
			var capability ontology.AgentCapability
			err := json.Unmarshal([]byte(`{"name": "tool:search"}`), &capability)
			Expect(err).NotTo(HaveOccurred())
			Expect(capability.Version).To(Equal("1.0.0"))
			Expect(capability.Enabled).To(BeTrue())
		})
	})

	Describe("round trips", func() {
		It("is stable over marshal and unmarshal", func() {
			run, err := ontology.UnmarshalRun([]byte(minimalRunDoc))
			Expect(err).NotTo(HaveOccurred())

			first, err := ontology.MarshalRun(run)
			Expect(err).NotTo(HaveOccurred())

			again, err := ontology.UnmarshalRun(first)
			Expect(err).NotTo(HaveOccurred())
			second, err := ontology.MarshalRun(again)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(MatchJSON(first))
		})

		It("preserves unrecognized keys at the run level", func() {
			doc := []byte(`{
				"id": "run-1",
				"name": "Test Run",
				"agent": {
					"id": "agent-1",
					"name": "Test Agent",
					"types": ["conversational"],
					"configuration": {},
					"metadata": {
						"created_at": "2025-03-01T12:00:00Z",
						"created_by": "tester",
						"version": "1.0.0"
					}
				},
				"start_time": "2025-03-01T12:00:00Z",
				"end_time": null,
				"future_field": {"nested": true}
			}`)

			run, err := ontology.UnmarshalRun(doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Extra).To(HaveKey("future_field"))

			out, err := ontology.MarshalRun(run)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(ContainSubstring(`"future_field"`))
		})

		It("preserves unrecognized keys on nested entities", func() {
			doc := []byte(`{
				"id": "run-1",
				"name": "Test Run",
				"agent": {
					"id": "agent-1",
					"name": "Test Agent",
					"types": ["conversational"],
					"configuration": {},
					"metadata": {
						"created_at": "2025-03-01T12:00:00Z",
						"created_by": "tester",
						"version": "1.0.0"
					},
					"vendor_hint": "custom"
				},
				"start_time": "2025-03-01T12:00:00Z",
				"end_time": null
			}`)

			run, err := ontology.UnmarshalRun(doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Agent.Extra).To(HaveKeyWithValue("vendor_hint", "custom"))

			out, err := ontology.MarshalRun(run)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(ContainSubstring(`"vendor_hint":"custom"`))
		})

		It("lets typed fields win over colliding extra keys", func() {
			run := testRun()
			run.Extra = map[string]any{"id": "impostor"}

			out, err := ontology.MarshalRun(run)
			Expect(err).NotTo(HaveOccurred())

			var doc map[string]any
			Expect(json.Unmarshal(out, &doc)).To(Succeed())
			Expect(doc).To(HaveKeyWithValue("id", "run-1"))
		})

		It("always writes end_time, as null when unset", func() {
			out, err := ontology.MarshalRun(testRun())
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(ContainSubstring(`"end_time":null`))
		})

		It("writes a set end_time in RFC 3339 UTC", func() {
			run := testRun()
			end := time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC)
			run.EndTime = &end

			out, err := ontology.MarshalRun(run)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(ContainSubstring(`"end_time":"2025-03-01T12:05:00Z"`))
		})

		It("writes an unset message expiry as null", func() {
			out, err := json.Marshal(ontology.Message{
				ID:        "msg-1",
				Type:      ontology.MessageNotification,
				Timestamp: runBase,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(ContainSubstring(`"expires_at":null`))
		})

		It("writes an unset plan deadline as null", func() {
			out, err := json.Marshal(ontology.ActionPlan{
				ID:   "plan-1",
				Name: "fetch",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(ContainSubstring(`"deadline":null`))
		})
	})

	Describe("documents", func() {
		It("converts to and from a generic map", func() {
			run, err := ontology.UnmarshalRun([]byte(minimalRunDoc))
			Expect(err).NotTo(HaveOccurred())

			doc, err := ontology.ToDocument(run)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc).To(HaveKeyWithValue("id", "run-1"))

			back, err := ontology.FromDocument(doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(back.ID).To(Equal(run.ID))
			Expect(back.StartTime).To(Equal(run.StartTime))
		})
	})
})
