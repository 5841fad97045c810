// Package prompt assembles retrieved documents into a bounded context
// string and builds the chat messages sent to the generator.
package prompt

import (
	"fmt"
	"strings"

	"github.com/papercomputeco/stacks/pkg/vector"
)

const (
	// DefaultPerItemChars caps each document's text inside the context.
	DefaultPerItemChars = 1200

	// DefaultTotalChars caps the assembled context as a whole.
	DefaultTotalChars = 4500

	// truncationMarker is appended to clipped texts. It does not count
	// against the per-item limit.
	truncationMarker = "..."
)

// Assemble builds the context string from retrieved results, in rank order.
// Each item's text is trimmed of surrounding whitespace and becomes a
// "[Source i] url\ntext\n" block; texts exceeding perItemChars are clipped
// at exactly that many characters. Blocks
// are appended greedily until adding one would push the whole context past
// totalChars, at which point assembly stops, even if a later, shorter item
// would still fit. Limits count Unicode characters, not bytes.
func Assemble(items []vector.QueryResult, perItemChars, totalChars int) string {
	if perItemChars <= 0 {
		perItemChars = DefaultPerItemChars
	}
	if totalChars <= 0 {
		totalChars = DefaultTotalChars
	}

	var blocks []string
	total := 0

	for i, item := range items {
		text := strings.TrimSpace(item.Text)
		if runes := []rune(text); len(runes) > perItemChars {
			text = string(runes[:perItemChars]) + truncationMarker
		}

		block := fmt.Sprintf("[Source %d] %s\n%s\n", i+1, item.SourceURL, text)

		cost := len([]rune(block))
		if len(blocks) > 0 {
			cost++ // joining newline
		}
		if total+cost > totalChars {
			break
		}

		blocks = append(blocks, block)
		total += cost
	}

	return strings.Join(blocks, "\n")
}
