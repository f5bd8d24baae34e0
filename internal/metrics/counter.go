package metrics

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter provides methods for counting bytes, tokens, and lines in text
type Counter interface {
	// Count returns the number of bytes, tokens, and lines in the given text
	Count(text string) (bytes, tokens, lines int)
}

// NewCounter returns the counter registered under name: "simple" or "tiktoken".
func NewCounter(name, model string) (Counter, error) {
	switch name {
	case "", "simple":
		return SimpleCounter{}, nil
	case "tiktoken":
		return NewTiktokenCounter(model)
	default:
		return nil, fmt.Errorf("unknown token estimator: %s", name)
	}
}

// SimpleCounter estimates tokens as bytes/4.
type SimpleCounter struct{}

func (SimpleCounter) Count(text string) (int, int, int) {
	return len(text), len(text) / 4, countLines(text)
}

// TiktokenCounter counts tokens with a model's BPE encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the encoding for model.
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("unsupported model for tiktoken: %s: %w", model, err)
	}
	return &TiktokenCounter{enc: enc}, nil
}

func (c *TiktokenCounter) Count(text string) (int, int, int) {
	tokens := c.enc.Encode(strings.TrimSpace(text), nil, nil)
	return len(text), len(tokens), countLines(text)
}

func countLines(text string) int {
	return bytes.Count([]byte(text), []byte{'\n'}) + 1
}
