package prompt

import (
	"fmt"

	"github.com/papercomputeco/stacks/pkg/llm"
)

// SystemInstruction grounds the generator in the retrieved context.
const SystemInstruction = "You are a helpful assistant. Answer the question using only the provided context. If the context does not contain the answer, say you don't know."

// BuildMessages pairs the system instruction with a user message carrying
// the assembled context and the question.
func BuildMessages(context, query string) []llm.Message {
	return []llm.Message{
		{
			Role:    llm.RoleSystem,
			Content: SystemInstruction,
		},
		{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("CONTEXT:\n%s\n\nQUESTION: %s", context, query),
		},
	}
}
