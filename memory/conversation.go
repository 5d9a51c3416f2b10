package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultMaxExchanges caps how many prior exchanges feed the history summary.
const DefaultMaxExchanges = 2

// Exchange is one completed question/answer pair.
type Exchange struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// History is a session's capped exchange log.
type History struct {
	MaxExchanges int        `json:"max_exchanges,omitempty"`
	Exchanges    []Exchange `json:"exchanges"`
}

// LoadHistory reads a persisted history from path. A missing file yields an
// empty history, not an error.
func LoadHistory(path string) (*History, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		return nil, err
	}
	var h History
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Save writes the history to path as indented JSON.
func (h *History) Save(path string) error {
	b, err := json.MarshalIndent(h, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Add appends a completed exchange and drops the oldest entries beyond the cap.
func (h *History) Add(query, answer string) {
	h.Exchanges = append(h.Exchanges, Exchange{Query: query, Answer: answer})
	max := h.MaxExchanges
	if max <= 0 {
		max = DefaultMaxExchanges
	}
	if len(h.Exchanges) > max {
		h.Exchanges = h.Exchanges[len(h.Exchanges)-max:]
	}
}

// Summary formats the retained exchanges as an opaque block for the model's
// system prompt. Empty history yields "".
func (h *History) Summary() string {
	if len(h.Exchanges) == 0 {
		return ""
	}
	var parts []string
	for _, e := range h.Exchanges {
		parts = append(parts, fmt.Sprintf("User: %s\nAssistant: %s", e.Query, e.Answer))
	}
	return strings.Join(parts, "\n")
}
