package sqlite_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agentlogco/spool/pkg/ontology"
	"github.com/agentlogco/spool/pkg/store"
	"github.com/agentlogco/spool/pkg/store/sqlite"
)

var sqliteBase = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sqliteTestRun(id string, offset time.Duration) *ontology.Run {
	return &ontology.Run{
		ID:   id,
		Name: "Run " + id,
		Agent: ontology.AgentInstance{
			ID:    "agent-1",
			Name:  "Test Agent",
			Types: []ontology.AgentType{ontology.AgentTypeConversational},
			Metadata: ontology.AgentMetadata{
				CreatedAt: sqliteBase,
				CreatedBy: "tester",
				Version:   "1.0.0",
			},
		},
		StartTime: sqliteBase.Add(offset),
		Status:    ontology.RunCompleted,
	}
}

var _ = Describe("Driver", func() {
	var (
		ctx    context.Context
		driver *sqlite.Driver
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		driver, err = sqlite.NewDriver(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(driver.Close()).To(Succeed())
	})

	Describe("Put and Get", func() {
		It("round-trips a run through the document column", func() {
			original := sqliteTestRun("r1", 0)
			end := sqliteBase.Add(time.Minute)
			original.EndTime = &end
			original.Extra = map[string]any{"future_field": "kept"}

			inserted, err := driver.Put(ctx, original)
			Expect(err).NotTo(HaveOccurred())
			Expect(inserted).To(BeTrue())

			got, err := driver.Get(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Run r1"))
			Expect(got.StartTime).To(Equal(original.StartTime))
			Expect(got.EndTime).NotTo(BeNil())
			Expect(got.Extra).To(HaveKeyWithValue("future_field", "kept"))
		})

		It("replaces an existing run and reports it", func() {
			_, err := driver.Put(ctx, sqliteTestRun("r1", 0))
			Expect(err).NotTo(HaveOccurred())

			replacement := sqliteTestRun("r1", 0)
			replacement.Name = "Run r1 updated"
			inserted, err := driver.Put(ctx, replacement)
			Expect(err).NotTo(HaveOccurred())
			Expect(inserted).To(BeFalse())

			got, err := driver.Get(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Run r1 updated"))
		})

		It("rejects a nil run", func() {
			_, err := driver.Put(ctx, nil)
			Expect(err).To(HaveOccurred())
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
			_, err := driver.Put(ctx, sqliteTestRun("r1", 0))
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
			_, err := driver.Put(ctx, sqliteTestRun("later", time.Hour))
			Expect(err).NotTo(HaveOccurred())
			_, err = driver.Put(ctx, sqliteTestRun("earlier", 0))
			Expect(err).NotTo(HaveOccurred())

			runs, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))
			Expect(runs[0].ID).To(Equal("earlier"))
			Expect(runs[1].ID).To(Equal("later"))
		})
	})

	Describe("Delete", func() {
		It("removes a stored run", func() {
			_, err := driver.Put(ctx, sqliteTestRun("r1", 0))
			Expect(err).NotTo(HaveOccurred())

			Expect(driver.Delete(ctx, "r1")).To(Succeed())

			ok, err := driver.Has(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("returns ErrNotFound for a missing run", func() {
			err := driver.Delete(ctx, "missing")

			var notFound store.ErrNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})

	Describe("file-backed databases", func() {
		It("persists runs across driver instances", func() {
			dir, err := os.MkdirTemp("", "spool-sqlite-*")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(func() {
				_ = os.RemoveAll(dir)
			})

			path := filepath.Join(dir, "spool.db")
			first, err := sqlite.NewDriver(path)
			Expect(err).NotTo(HaveOccurred())
			_, err = first.Put(ctx, sqliteTestRun("r1", 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Close()).To(Succeed())

			second, err := sqlite.NewDriver(path)
			Expect(err).NotTo(HaveOccurred())
			defer second.Close()

			got, err := second.Get(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Run r1"))
		})
	})
})
