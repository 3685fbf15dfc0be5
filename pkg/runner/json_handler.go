package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// JSONHandler implements IOHandler for JSON-Lines communication.
// Each input line is either a JSON string or raw text; each outcome is
// emitted as one JSON object.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
}

// Message is one line written by the JSONHandler.
type Message struct {
	Type     string          `json:"type"` // prompt, result, system
	Alphabet []domain.Symbol `json:"alphabet,omitempty"`
	Outcome  *Outcome        `json:"outcome,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Prompt(_ context.Context, alphabet []domain.Symbol) error {
	return h.Encoder.Encode(Message{Type: "prompt", Alphabet: alphabet})
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}

	trimmed := strings.TrimSpace(text)
	var val string
	if err := json.Unmarshal([]byte(trimmed), &val); err == nil {
		return val, nil
	}
	// Plain text fallback.
	return text, nil
}

func (h *JSONHandler) Output(_ context.Context, o *Outcome) error {
	return h.Encoder.Encode(Message{Type: "result", Outcome: o})
}

func (h *JSONHandler) SystemOutput(_ context.Context, msg string) error {
	return h.Encoder.Encode(Message{Type: "system", Message: msg})
}
