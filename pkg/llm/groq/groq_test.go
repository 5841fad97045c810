package groq_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/stacks/pkg/llm"
	"github.com/papercomputeco/stacks/pkg/llm/groq"
)

func TestGroq(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Groq Generator Suite")
}

var _ = Describe("Generator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("NewGenerator", func() {
		It("fails immediately when the API key is missing", func() {
			_, err := groq.NewGenerator(groq.Config{})
			Expect(err).To(MatchError(llm.ErrMissingAPIKey))
		})
	})

	Describe("Complete", func() {
		It("posts the chat request and returns the completion text", func() {
			var gotBody map[string]any

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/chat/completions"))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer gsk-test"))
				Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())

				json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]any{"content": "the answer"}},
					},
				})
			}))
			defer server.Close()

			gen, err := groq.NewGenerator(groq.Config{BaseURL: server.URL, APIKey: "gsk-test"})
			Expect(err).NotTo(HaveOccurred())

			answer, err := gen.Complete(ctx, &llm.ChatRequest{
				Model: "llama-3.1-8b-instant",
				Messages: []llm.Message{
					{Role: llm.RoleSystem, Content: "answer from context"},
					{Role: llm.RoleUser, Content: "CONTEXT: ...\n\nQUESTION: why?"},
				},
				Temperature: 0.2,
				MaxTokens:   400,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(answer).To(Equal("the answer"))

			Expect(gotBody["model"]).To(Equal("llama-3.1-8b-instant"))
			Expect(gotBody["max_tokens"]).To(BeNumerically("==", 400))
			Expect(gotBody["messages"]).To(HaveLen(2))
		})

		It("surfaces backend failures as ErrGeneration without retrying", func() {
			var calls int
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				http.Error(w, `{"error":"request too large"}`, http.StatusRequestEntityTooLarge)
			}))
			defer server.Close()

			gen, err := groq.NewGenerator(groq.Config{BaseURL: server.URL, APIKey: "gsk-test"})
			Expect(err).NotTo(HaveOccurred())

			_, err = gen.Complete(ctx, &llm.ChatRequest{Model: "m"})
			Expect(err).To(MatchError(llm.ErrGeneration))
			Expect(err.Error()).To(ContainSubstring("413"))
			Expect(calls).To(Equal(1))
		})

		It("rejects responses without choices", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
			}))
			defer server.Close()

			gen, err := groq.NewGenerator(groq.Config{BaseURL: server.URL, APIKey: "gsk-test"})
			Expect(err).NotTo(HaveOccurred())

			_, err = gen.Complete(ctx, &llm.ChatRequest{Model: "m"})
			Expect(err).To(MatchError(llm.ErrGeneration))
		})
	})
})
