package ports

import (
	"context"
	"time"
)

// Generation is the model's raw text output plus envelope metadata.
type Generation struct {
	Text  string
	Model string
	Done  bool
	// EvalCount and TotalDuration are zero when the endpoint omits them.
	EvalCount     int
	TotalDuration time.Duration
}

// Generator sends a single prompt to an inference endpoint and returns the generated text.
// Implementations return *domain.ReportError of kind ErrTransport or ErrMalformedEnvelope.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
}
