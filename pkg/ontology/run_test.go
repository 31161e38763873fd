package ontology_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agentlogco/spool/pkg/ontology"
)

var runBase = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// testAgent builds a minimal valid agent instance for run fixtures.
func testAgent() ontology.AgentInstance {
	return ontology.AgentInstance{
		ID:    "agent-1",
		Name:  "Test Agent",
		Types: []ontology.AgentType{ontology.AgentTypeConversational},
		Metadata: ontology.AgentMetadata{
			CreatedAt: runBase,
			CreatedBy: "tester",
			Version:   "1.0.0",
		},
	}
}

func testRun() *ontology.Run {
	return &ontology.Run{
		ID:        "run-1",
		Name:      "Test Run",
		Agent:     testAgent(),
		StartTime: runBase,
		Status:    ontology.RunCompleted,
	}
}

// stepAt builds a step starting at an offset from the fixture base time.
func stepAt(id string, offset time.Duration) ontology.Step {
	return ontology.Step{
		ID:        id,
		Name:      "step " + id,
		StartTime: runBase.Add(offset),
	}
}

func floatPtr(f float64) *float64 { return &f }

var _ = Describe("Run", func() {
	Describe("FindStepByID", func() {
		It("finds a top-level step", func() {
			run := testRun()
			run.AddStep(stepAt("s1", 0))

			step, ok := run.FindStepByID("s1")
			Expect(ok).To(BeTrue())
			Expect(step.ID).To(Equal("s1"))
		})

		It("finds a nested sub-step depth first", func() {
			run := testRun()
			parent := stepAt("s1", 0)
			child := stepAt("s1-1", time.Second)
			child.SubSteps = append(child.SubSteps, stepAt("s1-1-1", 2*time.Second))
			parent.SubSteps = append(parent.SubSteps, child)
			run.AddStep(parent)

			step, ok := run.FindStepByID("s1-1-1")
			Expect(ok).To(BeTrue())
			Expect(step.Name).To(Equal("step s1-1-1"))
		})

		It("reports a miss without a step", func() {
			run := testRun()
			run.AddStep(stepAt("s1", 0))

			step, ok := run.FindStepByID("missing")
			Expect(ok).To(BeFalse())
			Expect(step).To(BeNil())
		})

		It("returns a pointer into the run so mutations stick", func() {
			run := testRun()
			run.AddStep(stepAt("s1", 0))

			step, ok := run.FindStepByID("s1")
			Expect(ok).To(BeTrue())
			step.Outputs = map[string]any{"result": "done"}

			Expect(run.Steps[0].Outputs).To(HaveKeyWithValue("result", "done"))
		})
	})

	Describe("MaxNestingDepth", func() {
		It("is zero for a run without steps", func() {
			Expect(testRun().MaxNestingDepth()).To(Equal(0))
		})

		It("is one for a flat step list", func() {
			run := testRun()
			run.AddStep(stepAt("s1", 0))
			run.AddStep(stepAt("s2", time.Second))

			Expect(run.MaxNestingDepth()).To(Equal(1))
		})

		It("counts one level per nesting", func() {
			run := testRun()
			parent := stepAt("s1", 0)
			child := stepAt("s1-1", time.Second)
			child.SubSteps = append(child.SubSteps, stepAt("s1-1-1", 2*time.Second))
			parent.SubSteps = append(parent.SubSteps, child)
			run.AddStep(parent)
			run.AddStep(stepAt("s2", 3*time.Second))

			Expect(run.MaxNestingDepth()).To(Equal(3))
		})
	})

	Describe("AverageStepDuration", func() {
		It("is zero when no step carries a duration", func() {
			run := testRun()
			run.AddStep(stepAt("s1", 0))

			Expect(run.AverageStepDuration()).To(BeZero())
		})

		It("averages over every step in the tree that has one", func() {
			run := testRun()
			parent := stepAt("s1", 0)
			parent.Duration = floatPtr(2.0)
			sub := stepAt("s1-1", time.Second)
			sub.Duration = floatPtr(4.0)
			parent.SubSteps = append(parent.SubSteps, sub)
			run.AddStep(parent)
			run.AddStep(stepAt("s2", 2*time.Second))

			Expect(run.AverageStepDuration()).To(BeNumerically("~", 3.0, 1e-9))
		})
	})

	Describe("Timeline", func() {
		It("emits start and end events ordered by timestamp", func() {
			run := testRun()
			s1 := stepAt("s1", 0)
			end := runBase.Add(5 * time.Second)
			s1.EndTime = &end
			s2 := stepAt("s2", 2*time.Second)
			run.AddStep(s1)
			run.AddStep(s2)

			events := run.Timeline()
			Expect(events).To(HaveLen(3))
			Expect(events[0].Type).To(Equal("step_start"))
			Expect(events[0].StepID).To(Equal("s1"))
			Expect(events[1].StepID).To(Equal("s2"))
			Expect(events[2].Type).To(Equal("step_end"))
			Expect(events[2].StepID).To(Equal("s1"))
		})

		It("keeps emission order for events sharing a timestamp", func() {
			run := testRun()
			run.AddStep(stepAt("s1", 0))
			run.AddStep(stepAt("s2", 0))

			events := run.Timeline()
			Expect(events[0].StepID).To(Equal("s1"))
			Expect(events[1].StepID).To(Equal("s2"))
		})

		It("records the nesting depth of each event", func() {
			run := testRun()
			parent := stepAt("s1", 0)
			parent.SubSteps = append(parent.SubSteps, stepAt("s1-1", time.Second))
			run.AddStep(parent)

			events := run.Timeline()
			Expect(events[0].Depth).To(Equal(0))
			Expect(events[1].Depth).To(Equal(1))
		})

		It("skips end events for unfinished steps", func() {
			run := testRun()
			run.AddStep(stepAt("s1", 0))

			events := run.Timeline()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Type).To(Equal("step_start"))
		})
	})

	Describe("Metrics", func() {
		It("reports step counts and derived measurements", func() {
			run := testRun()
			run.Duration = floatPtr(12.5)
			s1 := stepAt("s1", 0)
			s1.Duration = floatPtr(2.0)
			run.AddStep(s1)

			metrics := run.Metrics()
			Expect(metrics).To(HaveKeyWithValue("total_steps", 1))
			Expect(metrics).To(HaveKeyWithValue("total_duration", 12.5))
			Expect(metrics).To(HaveKeyWithValue("average_step_duration", 2.0))
			Expect(metrics).To(HaveKeyWithValue("max_nesting_depth", 1))
			Expect(metrics).To(HaveKeyWithValue("success_rate", 0.0))
		})

		It("defaults total_duration to zero without a run duration", func() {
			metrics := testRun().Metrics()
			Expect(metrics).To(HaveKeyWithValue("total_duration", 0.0))
		})

		It("merges performance metrics on top", func() {
			run := testRun()
			run.PerformanceMetrics = map[string]float64{
				"tokens_per_second": 41.5,
				"success_rate":      0.9,
			}

			metrics := run.Metrics()
			Expect(metrics).To(HaveKeyWithValue("tokens_per_second", 41.5))
			Expect(metrics).To(HaveKeyWithValue("success_rate", 0.9))
		})
	})
})
