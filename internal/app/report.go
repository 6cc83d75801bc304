package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/randomtoy/cropreport-go/internal/domain"
	"github.com/randomtoy/cropreport-go/internal/ports"
)

// ReportClient turns farm inputs into a validated assessment report with a
// single call to the inference endpoint. It holds no per-call state and is
// safe for concurrent use.
type ReportClient struct {
	generator ports.Generator
	model     string
	logger    *slog.Logger
}

func NewReportClient(gen ports.Generator, model string, logger *slog.Logger) *ReportClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportClient{
		generator: gen,
		model:     model,
		logger:    logger,
	}
}

// Model returns the configured model identifier.
func (c *ReportClient) Model() string { return c.model }

// GenerateReport validates req, prompts the model once and decodes its answer.
// Every error returned is a *domain.ReportError; nothing is retried or cached.
func (c *ReportClient) GenerateReport(ctx context.Context, req domain.ReportRequest) (domain.ReportResult, error) {
	if err := req.Validate(); err != nil {
		return domain.ReportResult{}, err
	}

	prompt := BuildPrompt(req)

	start := time.Now()
	gen, err := c.generator.Generate(ctx, prompt)
	latency := time.Since(start)
	if err != nil {
		err = asReportError(err)
		c.logFailure(ctx, err, latency)
		return domain.ReportResult{}, err
	}

	c.logger.DebugContext(ctx, "model output", "model", gen.Model, "text", gen.Text)

	result, err := DecodeReport(gen.Text)
	if err != nil {
		c.logFailure(ctx, err, latency)
		return domain.ReportResult{}, err
	}

	c.logger.InfoContext(ctx, "report generated",
		"model", modelName(gen.Model, c.model),
		"latency_ms", latency.Milliseconds(),
		"eval_count", gen.EvalCount,
		"total_duration_ms", gen.TotalDuration.Milliseconds(),
	)
	return result, nil
}

// DecodeReport extracts the report object from model text and checks that all
// ten fields are present as strings.
func DecodeReport(text string) (domain.ReportResult, error) {
	obj, ok := ExtractJSONObject(text)
	if !ok {
		return domain.ReportResult{}, &domain.ReportError{
			Kind: domain.ErrMalformedReport,
			Err:  errors.New("no JSON object found in model output"),
		}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return domain.ReportResult{}, &domain.ReportError{Kind: domain.ErrMalformedReport, Err: err}
	}

	var missing []string
	for _, key := range domain.ReportFields {
		v, ok := raw[key]
		if !ok || !isJSONString(v) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return domain.ReportResult{}, &domain.ReportError{Kind: domain.ErrIncompleteReport, Fields: missing}
	}

	var result domain.ReportResult
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return domain.ReportResult{}, &domain.ReportError{Kind: domain.ErrMalformedReport, Err: err}
	}
	return result, nil
}

// isJSONString rejects null, which json.Unmarshal would accept into a string.
func isJSONString(v json.RawMessage) bool {
	if len(v) == 0 || v[0] != '"' {
		return false
	}
	var s string
	return json.Unmarshal(v, &s) == nil
}

// asReportError keeps typed errors from the generator and treats anything else
// as a transport failure.
func asReportError(err error) error {
	var rerr *domain.ReportError
	if errors.As(err, &rerr) {
		return err
	}
	return domain.NewTransportError(0, fmt.Errorf("generate: %w", err))
}

func (c *ReportClient) logFailure(ctx context.Context, err error, latency time.Duration) {
	var rerr *domain.ReportError
	kind := "internal"
	if errors.As(err, &rerr) {
		kind = rerr.KindName()
	}
	c.logger.WarnContext(ctx, "report generation failed",
		"model", c.model,
		"kind", kind,
		"latency_ms", latency.Milliseconds(),
		"error", err,
	)
}

func modelName(fromLLM, fallback string) string {
	if fromLLM != "" {
		return fromLLM
	}
	return fallback
}
