package sqlitevec_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/pkg/vector"
	"github.com/papercomputeco/stacks/pkg/vector/sqlitevec"
)

func TestSQLiteVec(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SQLiteVec Driver Suite")
}

var _ = Describe("Driver", func() {
	var (
		logger *zap.Logger
		ctx    context.Context
	)

	newDriver := func() *sqlitevec.Driver {
		driver, err := sqlitevec.NewDriver(sqlitevec.Config{
			DBPath:         ":memory:",
			CollectionName: "knowledge_base",
			Dimensions:     4,
		}, logger)
		Expect(err).NotTo(HaveOccurred())
		return driver
	}

	BeforeEach(func() {
		logger = zap.NewNop()
		ctx = context.Background()
	})

	Describe("NewDriver", func() {
		It("should return an error when DBPath is empty", func() {
			_, err := sqlitevec.NewDriver(sqlitevec.Config{DBPath: ""}, logger)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("database path is required"))
		})

		It("should return an error when the collection name is empty", func() {
			_, err := sqlitevec.NewDriver(sqlitevec.Config{
				DBPath:     ":memory:",
				Dimensions: 4,
			}, logger)
			Expect(err).To(HaveOccurred())
		})

		It("should error when dimensions are not specified", func() {
			_, err := sqlitevec.NewDriver(sqlitevec.Config{
				DBPath:         ":memory:",
				CollectionName: "knowledge_base",
			}, logger)
			Expect(err).To(HaveOccurred())
		})

		It("should create a driver with an in-memory database", func() {
			driver := newDriver()
			Expect(driver.Close()).To(Succeed())
		})
	})

	Describe("Query before ingestion", func() {
		It("returns ErrCollectionNotFound", func() {
			driver := newDriver()
			defer driver.Close()

			_, err := driver.Query(ctx, []float32{1, 0, 0, 0}, 3)
			Expect(err).To(MatchError(vector.ErrCollectionNotFound))

			_, err = driver.Count(ctx)
			Expect(err).To(MatchError(vector.ErrCollectionNotFound))
		})
	})

	Describe("Upsert and Query", func() {
		var driver *sqlitevec.Driver

		BeforeEach(func() {
			driver = newDriver()

			Expect(driver.Upsert(ctx, []vector.Document{
				{ID: "0", Text: "north", SourceURL: "https://example.com/n", Embedding: []float32{1, 0, 0, 0}},
				{ID: "1", Text: "east", SourceURL: "https://example.com/e", Embedding: []float32{0, 1, 0, 0}},
				{ID: "2", Text: "northeast", Embedding: []float32{0.7071, 0.7071, 0, 0}},
			})).To(Succeed())
		})

		AfterEach(func() {
			driver.Close()
		})

		It("returns the nearest documents first with text and metadata", func() {
			results, err := driver.Query(ctx, []float32{1, 0, 0, 0}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Text).To(Equal("north"))
			Expect(results[0].SourceURL).To(Equal("https://example.com/n"))
			Expect(results[0].Score).To(BeNumerically(">", results[1].Score))
		})

		It("returns all documents when topK exceeds the collection size", func() {
			results, err := driver.Query(ctx, []float32{0, 1, 0, 0}, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
		})

		It("falls back to the default result count for non-positive topK", func() {
			Expect(driver.Upsert(ctx, []vector.Document{
				{ID: "3", Text: "south", Embedding: []float32{-1, 0, 0, 0}},
			})).To(Succeed())

			results, err := driver.Query(ctx, []float32{1, 0, 0, 0}, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(vector.DefaultTopK))
		})

		It("overwrites documents that share an ID", func() {
			Expect(driver.Upsert(ctx, []vector.Document{
				{ID: "0", Text: "true north", SourceURL: "https://example.com/tn", Embedding: []float32{1, 0, 0, 0}},
			})).To(Succeed())

			count, err := driver.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(3))

			results, err := driver.Query(ctx, []float32{1, 0, 0, 0}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Text).To(Equal("true north"))
			Expect(results[0].SourceURL).To(Equal("https://example.com/tn"))
		})

		It("is idempotent when the same batch is ingested twice", func() {
			Expect(driver.Upsert(ctx, []vector.Document{
				{ID: "0", Text: "north", SourceURL: "https://example.com/n", Embedding: []float32{1, 0, 0, 0}},
				{ID: "1", Text: "east", SourceURL: "https://example.com/e", Embedding: []float32{0, 1, 0, 0}},
				{ID: "2", Text: "northeast", Embedding: []float32{0.7071, 0.7071, 0, 0}},
			})).To(Succeed())

			count, err := driver.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(3))
		})
	})
})
