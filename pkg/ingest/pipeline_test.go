package ingest_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/stacks/pkg/ingest"
	"github.com/papercomputeco/stacks/pkg/record"
	testutils "github.com/papercomputeco/stacks/pkg/utils/test"
)

func TestIngest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ingest Suite")
}

func makeRecords(n int) []record.Record {
	records := make([]record.Record, n)
	for i := range records {
		records[i] = record.Record{
			ID:        fmt.Sprintf("%d", i),
			Text:      fmt.Sprintf("document %d", i),
			SourceURL: fmt.Sprintf("https://example.com/%d", i),
		}
	}
	return records
}

var _ = Describe("Pipeline", func() {
	var (
		ctx      context.Context
		embedder *testutils.MockEmbedder
		driver   *testutils.MockVectorDriver
		pipeline *ingest.Pipeline
	)

	BeforeEach(func() {
		ctx = context.Background()
		embedder = testutils.NewMockEmbedder()
		driver = testutils.NewMockVectorDriver()

		var err error
		pipeline, err = ingest.NewPipeline(embedder, driver, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("splits 40 records into a full batch and a partial batch", func() {
		count, err := pipeline.Run(ctx, makeRecords(40), 32)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(40))

		Expect(embedder.BatchSizes).To(Equal([]int{32, 8}))
		Expect(driver.UpsertBatches).To(HaveLen(2))
		Expect(driver.UpsertBatches[0]).To(HaveLen(32))
		Expect(driver.UpsertBatches[1]).To(HaveLen(8))
	})

	It("ensures the collection before upserting", func() {
		_, err := pipeline.Run(ctx, makeRecords(3), 32)
		Expect(err).NotTo(HaveOccurred())
		Expect(driver.EnsureCalls).To(Equal(1))
	})

	It("drops records with empty or whitespace-only text", func() {
		records := []record.Record{
			{ID: "0", Text: "keep me"},
			{ID: "1", Text: "   "},
			{ID: "2", Text: ""},
			{ID: "3", Text: "also kept"},
		}

		count, err := pipeline.Run(ctx, records, 32)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2))

		docs := driver.Documents()
		Expect(docs).To(HaveLen(2))
		Expect(docs[0].ID).To(Equal("0"))
		Expect(docs[1].ID).To(Equal("3"))
	})

	It("stores trimmed text", func() {
		records := []record.Record{
			{ID: "0", Text: "  surrounded by spaces  ", SourceURL: "https://example.com/0"},
		}

		count, err := pipeline.Run(ctx, records, 32)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))

		docs := driver.Documents()
		Expect(docs).To(HaveLen(1))
		Expect(docs[0].Text).To(Equal("surrounded by spaces"))
	})

	It("stores the same documents regardless of batch size", func() {
		records := makeRecords(10)

		count, err := pipeline.Run(ctx, records, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(10))
		first := driver.Documents()

		driver2 := testutils.NewMockVectorDriver()
		pipeline2, err := ingest.NewPipeline(testutils.NewMockEmbedder(), driver2, nil)
		Expect(err).NotTo(HaveOccurred())

		count, err = pipeline2.Run(ctx, records, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(10))

		Expect(driver2.Documents()).To(Equal(first))
	})

	It("is idempotent over repeated runs", func() {
		records := makeRecords(5)

		count, err := pipeline.Run(ctx, records, 32)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(5))

		count, err = pipeline.Run(ctx, records, 32)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(5))

		// Same IDs both runs; a real driver overwrites by ID.
		Expect(driver.UpsertBatches).To(HaveLen(2))
		Expect(driver.UpsertBatches[0]).To(Equal(driver.UpsertBatches[1]))
	})

	It("carries embedded vectors and metadata onto the documents", func() {
		embedder.Embeddings["document 0"] = []float32{0.5, 0.5, 0}

		_, err := pipeline.Run(ctx, makeRecords(1), 32)
		Expect(err).NotTo(HaveOccurred())

		docs := driver.Documents()
		Expect(docs).To(HaveLen(1))
		Expect(docs[0].Embedding).To(Equal([]float32{0.5, 0.5, 0}))
		Expect(docs[0].SourceURL).To(Equal("https://example.com/0"))
	})

	It("reports the failing batch index on embedding errors", func() {
		embedder.FailOn = "document 7"

		_, err := pipeline.Run(ctx, makeRecords(10), 5)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("batch 1"))

		// First batch was already stored, second never reached the driver.
		Expect(driver.UpsertBatches).To(HaveLen(1))
	})

	It("reports the failing batch index on upsert errors", func() {
		driver.FailUpsert = true

		_, err := pipeline.Run(ctx, makeRecords(3), 32)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("upserting batch 0"))
	})

	It("returns zero for an empty dataset without touching the embedder", func() {
		count, err := pipeline.Run(ctx, nil, 32)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(0))
		Expect(embedder.Calls()).To(Equal(0))
	})

	It("falls back to the default batch size when given zero", func() {
		count, err := pipeline.Run(ctx, makeRecords(40), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(40))
		Expect(embedder.BatchSizes).To(Equal([]int{32, 8}))
	})

	It("requires an embedder and a driver", func() {
		_, err := ingest.NewPipeline(nil, driver, nil)
		Expect(err).To(HaveOccurred())

		_, err = ingest.NewPipeline(embedder, nil, nil)
		Expect(err).To(HaveOccurred())
	})
})
