package rag_test

import (
	"context"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/stacks/pkg/llm"
	"github.com/papercomputeco/stacks/pkg/prompt"
	"github.com/papercomputeco/stacks/pkg/rag"
	"github.com/papercomputeco/stacks/pkg/retrieval"
	testutils "github.com/papercomputeco/stacks/pkg/utils/test"
	"github.com/papercomputeco/stacks/pkg/vector"
)

func TestRAG(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RAG Suite")
}

var _ = Describe("Engine", func() {
	var (
		ctx       context.Context
		driver    *testutils.MockVectorDriver
		generator *testutils.MockGenerator
		engine    *rag.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = testutils.NewMockVectorDriver()
		generator = testutils.NewMockGenerator("grounded answer")

		retriever, err := retrieval.NewRetriever(testutils.NewMockEmbedder(), driver, nil)
		Expect(err).NotTo(HaveOccurred())

		engine, err = rag.NewEngine(retriever, generator, rag.Options{
			Model:           "llama-3.1-8b-instant",
			TopK:            3,
			Temperature:     0.2,
			MaxOutputTokens: 400,
		}, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("answers with retrieved context and reports sources", func() {
		driver.Results = []vector.QueryResult{
			{Text: "go is a compiled language", SourceURL: "https://example.com/go", Score: 0.9},
			{Text: "python is interpreted", SourceURL: "https://example.com/py", Score: 0.5},
		}

		answer, err := engine.Ask(ctx, "is go compiled?")
		Expect(err).NotTo(HaveOccurred())
		Expect(answer.Text).To(Equal("grounded answer"))
		Expect(answer.Context).To(ContainSubstring("[Source 1] https://example.com/go"))
		Expect(answer.Sources).To(HaveLen(2))
		Expect(answer.Sources[0].URL).To(Equal("https://example.com/go"))
		Expect(answer.Sources[0].Score).To(BeNumerically("~", 0.9, 1e-6))
	})

	It("sends the configured model and sampling parameters", func() {
		_, err := engine.Ask(ctx, "anything")
		Expect(err).NotTo(HaveOccurred())

		Expect(generator.Requests).To(HaveLen(1))
		req := generator.Requests[0]
		Expect(req.Model).To(Equal("llama-3.1-8b-instant"))
		Expect(req.Temperature).To(BeNumerically("~", 0.2, 1e-9))
		Expect(req.MaxTokens).To(Equal(400))
		Expect(req.Messages[0].Role).To(Equal(llm.RoleSystem))
		Expect(req.Messages[1].Content).To(ContainSubstring("QUESTION: anything"))
	})

	It("keeps the assembled context within the total budget", func() {
		driver.Results = []vector.QueryResult{
			{Text: strings.Repeat("a", 2000), SourceURL: "https://example.com/1"},
			{Text: strings.Repeat("b", 500), SourceURL: "https://example.com/2"},
		}

		retriever, err := retrieval.NewRetriever(testutils.NewMockEmbedder(), driver, nil)
		Expect(err).NotTo(HaveOccurred())

		tight, err := rag.NewEngine(retriever, generator, rag.Options{
			Model:        "m",
			PerItemChars: 1200,
			TotalChars:   1600,
		}, nil)
		Expect(err).NotTo(HaveOccurred())

		answer, err := tight.Ask(ctx, "anything")
		Expect(err).NotTo(HaveOccurred())
		Expect(len([]rune(answer.Context))).To(BeNumerically("<=", 1600))
		Expect(answer.Context).NotTo(ContainSubstring("[Source 2]"))
	})

	It("surfaces a missing collection instead of generating", func() {
		driver.Missing = true

		_, err := engine.Ask(ctx, "anything")
		Expect(err).To(MatchError(vector.ErrCollectionNotFound))
		Expect(generator.Requests).To(BeEmpty())
	})

	It("propagates generation failures", func() {
		generator.Err = llm.ErrGeneration

		_, err := engine.Ask(ctx, "anything")
		Expect(err).To(MatchError(llm.ErrGeneration))
	})

	It("applies defaults for unset options", func() {
		retriever, err := retrieval.NewRetriever(testutils.NewMockEmbedder(), driver, nil)
		Expect(err).NotTo(HaveOccurred())

		eng, err := rag.NewEngine(retriever, generator, rag.Options{Model: "m"}, nil)
		Expect(err).NotTo(HaveOccurred())

		driver.Results = []vector.QueryResult{
			{Text: strings.Repeat("a", prompt.DefaultPerItemChars + 100), SourceURL: "https://example.com/1"},
		}

		answer, err := eng.Ask(ctx, "anything")
		Expect(err).NotTo(HaveOccurred())
		Expect(answer.Context).To(ContainSubstring("..."))
	})

	It("requires a retriever and a generator", func() {
		_, err := rag.NewEngine(nil, generator, rag.Options{}, nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("History", func() {
	It("records turns in order", func() {
		history := rag.NewHistory()
		history.Append(rag.Turn{Query: "one", Answer: "a", AskedAt: time.Now()})
		history.Append(rag.Turn{Query: "two", Answer: "b", AskedAt: time.Now()})

		turns := history.Turns()
		Expect(turns).To(HaveLen(2))
		Expect(turns[0].Query).To(Equal("one"))
		Expect(turns[1].Query).To(Equal("two"))
		Expect(history.Len()).To(Equal(2))
	})

	It("returns a copy that later appends do not mutate", func() {
		history := rag.NewHistory()
		history.Append(rag.Turn{Query: "one"})

		turns := history.Turns()
		history.Append(rag.Turn{Query: "two"})
		Expect(turns).To(HaveLen(1))
	})
})
