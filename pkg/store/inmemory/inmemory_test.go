package inmemory_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agentlogco/spool/pkg/ontology"
	"github.com/agentlogco/spool/pkg/store"
	"github.com/agentlogco/spool/pkg/store/inmemory"
)

var storeBase = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// storeTestRun builds a valid run with the given id and start offset.
func storeTestRun(id string, offset time.Duration) *ontology.Run {
	return &ontology.Run{
		ID:   id,
		Name: "Run " + id,
		Agent: ontology.AgentInstance{
			ID:    "agent-1",
			Name:  "Test Agent",
			Types: []ontology.AgentType{ontology.AgentTypeConversational},
			Metadata: ontology.AgentMetadata{
				CreatedAt: storeBase,
				CreatedBy: "tester",
				Version:   "1.0.0",
			},
		},
		StartTime: storeBase.Add(offset),
		Status:    ontology.RunCompleted,
	}
}

var _ = Describe("Driver", func() {
	var (
		ctx    context.Context
		driver *inmemory.Driver
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = inmemory.NewDriver()
	})

	Describe("Put", func() {
		It("reports a new run as inserted", func() {
			inserted, err := driver.Put(ctx, storeTestRun("r1", 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(inserted).To(BeTrue())
		})

		It("reports a replacement as not inserted", func() {
			_, err := driver.Put(ctx, storeTestRun("r1", 0))
			Expect(err).NotTo(HaveOccurred())

			inserted, err := driver.Put(ctx, storeTestRun("r1", time.Second))
			Expect(err).NotTo(HaveOccurred())
			Expect(inserted).To(BeFalse())
			Expect(driver.Count()).To(Equal(1))
		})

		It("rejects a nil run", func() {
			_, err := driver.Put(ctx, nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Get", func() {
		It("returns a stored run", func() {
			_, err := driver.Put(ctx, storeTestRun("r1", 0))
			Expect(err).NotTo(HaveOccurred())

			run, err := driver.Get(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Name).To(Equal("Run r1"))
		})

		It("returns ErrNotFound for a missing run", func() {
			_, err := driver.Get(ctx, "missing")

			var notFound store.ErrNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
			Expect(notFound.ID).To(Equal("missing"))
		})
	})

	Describe("Has", func() {
		It("reports presence", func() {
			_, err := driver.Put(ctx, storeTestRun("r1", 0))
			Expect(err).NotTo(HaveOccurred())

			ok, err := driver.Has(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = driver.Has(ctx, "r2")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Describe("List", func() {
		It("orders runs by start time", func() {
			_, err := driver.Put(ctx, storeTestRun("later", time.Hour))
			Expect(err).NotTo(HaveOccurred())
			_, err = driver.Put(ctx, storeTestRun("earlier", 0))
			Expect(err).NotTo(HaveOccurred())

			runs, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))
			Expect(runs[0].ID).To(Equal("earlier"))
			Expect(runs[1].ID).To(Equal("later"))
		})

		It("breaks ties by id", func() {
			_, err := driver.Put(ctx, storeTestRun("b", 0))
			Expect(err).NotTo(HaveOccurred())
			_, err = driver.Put(ctx, storeTestRun("a", 0))
			Expect(err).NotTo(HaveOccurred())

			runs, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs[0].ID).To(Equal("a"))
			Expect(runs[1].ID).To(Equal("b"))
		})

		It("returns an empty list for an empty store", func() {
			runs, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		It("removes a stored run", func() {
			_, err := driver.Put(ctx, storeTestRun("r1", 0))
			Expect(err).NotTo(HaveOccurred())

			Expect(driver.Delete(ctx, "r1")).To(Succeed())
			Expect(driver.Count()).To(BeZero())
		})

		It("returns ErrNotFound for a missing run", func() {
			err := driver.Delete(ctx, "missing")

			var notFound store.ErrNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})
})
