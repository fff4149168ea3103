package agents

import (
	"log"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts tokens with tiktoken, or estimates when the encoding
// cannot be loaded (offline hosts have no BPE cache).
type Tokenizer struct {
	encoder *tiktoken.Tiktoken
}

// NewTokenizerForModel picks the encoding that matches the model family
func NewTokenizerForModel(model string) *Tokenizer {
	encoding := "cl100k_base"
	m := strings.ToLower(strings.TrimSpace(model))
	if strings.HasPrefix(m, "gpt-4o") || strings.HasPrefix(m, "o1") || strings.HasPrefix(m, "o3") {
		encoding = "o200k_base"
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		log.Printf("⚠️ tiktoken %s unavailable, estimating tokens: %v", encoding, err)
		return &Tokenizer{}
	}
	return &Tokenizer{encoder: enc}
}

// CountText returns the token count of text
func (t *Tokenizer) CountText(text string) int {
	if text == "" {
		return 0
	}
	if t == nil || t.encoder == nil {
		estimate := len(text) / 4
		if estimate < 1 {
			estimate = 1
		}
		return estimate
	}
	return len(t.encoder.Encode(text, nil, nil))
}

// TrimHistory keeps the most recent messages whose combined size fits the
// budget. The newest message is always kept, and the result never opens on a
// non-user turn since Claude rejects such requests.
func (t *Tokenizer) TrimHistory(messages []Message, budget int) []Message {
	if budget <= 0 || len(messages) == 0 {
		return messages
	}

	used := 0
	start := len(messages)
	for i := len(messages) - 1; i >= 0; i-- {
		// ~4 tokens of per-message overhead
		cost := 4 + t.CountText(messages[i].Content)
		if used+cost > budget && i < len(messages)-1 {
			break
		}
		used += cost
		start = i
	}
	for start < len(messages)-1 && messages[start].Role != "user" {
		start++
	}
	return messages[start:]
}
