package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomtoy/cropreport-go/internal/adapters/llm/ollama"
	"github.com/randomtoy/cropreport-go/internal/app"
	"github.com/randomtoy/cropreport-go/internal/config"
	"github.com/randomtoy/cropreport-go/internal/domain"
)

type generateOptions struct {
	req      domain.ReportRequest
	baseURL  string
	model    string
	format   string
	timeout  time.Duration
	output   string
	logLevel string
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one assessment report for the given farm inputs",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != "json" && opts.output != "text" {
				return fmt.Errorf("--output must be json or text, got %q", opts.output)
			}
			return resolveConfig(cmd, &opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	// Help shows the built-in defaults; the environment is applied in PreRunE.
	cfg := config.Defaults()

	f := cmd.Flags()
	f.StringVar(&opts.req.SoilType, "soil-type", "", "soil type, e.g. \"Black soil\"")
	f.StringVar(&opts.req.Crop, "crop", "", "crop to assess")
	f.StringVar(&opts.req.CropVariant, "crop-variant", "", "crop variant")
	f.StringVar(&opts.req.PreviousCrop, "previous-crop", "", "crop grown in the previous season")
	f.StringVar(&opts.req.SelectedFertilizer, "fertilizer", "", "selected fertilizer")
	f.StringVar(&opts.req.IrrigationMethod, "irrigation", "", "irrigation method")
	f.Float64Var(&opts.req.AreaSizeAcres, "acres", 0, "farm area in acres")
	f.StringVar(&opts.baseURL, "base-url", cfg.OllamaBaseURL, "inference endpoint base URL")
	f.StringVar(&opts.model, "model", cfg.LLMModel, "model identifier")
	f.StringVar(&opts.format, "format", cfg.LLMFormat, "optional Ollama output format, e.g. json")
	f.DurationVar(&opts.timeout, "timeout", cfg.LLMTimeout, "give up on the endpoint after this long")
	f.StringVarP(&opts.output, "output", "o", "text", "output format: json or text")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	return cmd
}

// resolveConfig fills every endpoint flag the user did not set from the
// environment the daemon reads. A broken environment fails the command.
func resolveConfig(cmd *cobra.Command, opts *generateOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if !f.Changed("base-url") {
		opts.baseURL = cfg.OllamaBaseURL
	}
	if !f.Changed("model") {
		opts.model = cfg.LLMModel
	}
	if !f.Changed("format") {
		opts.format = cfg.LLMFormat
	}
	if !f.Changed("timeout") {
		opts.timeout = cfg.LLMTimeout
	}
	return nil
}

func runGenerate(ctx context.Context, stdout, stderr io.Writer, opts generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := config.ParseLogLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var clientOpts []ollama.Option
	if opts.format != "" {
		clientOpts = append(clientOpts, ollama.WithFormat(opts.format))
	}
	generator := ollama.NewClient(&http.Client{}, opts.baseURL, opts.model, logger, clientOpts...)
	client := app.NewReportClient(generator, opts.model, logger)

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	report, err := client.GenerateReport(ctx, opts.req)
	if err != nil {
		var rerr *domain.ReportError
		if errors.As(err, &rerr) {
			fmt.Fprintf(stderr, "error [%s]: %v\n", rerr.KindName(), err)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return err
	}

	if opts.output == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return renderText(stdout, report)
}

func renderText(w io.Writer, r domain.ReportResult) error {
	for i, key := range domain.ReportFields {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s:\n%s\n", domain.Labels[key], r.Field(key)); err != nil {
			return err
		}
	}
	return nil
}
