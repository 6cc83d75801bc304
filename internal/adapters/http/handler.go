package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/cropreport-go/internal/domain"
	"github.com/randomtoy/cropreport-go/internal/ports"
)

// ReportGenerator is the application port the handler drives.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, req domain.ReportRequest) (domain.ReportResult, error)
	Model() string
}

type Handler struct {
	reports ReportGenerator
	catalog ports.CatalogStore
	timeout time.Duration
	logger  *slog.Logger
}

// NewHandler wires the report and catalog endpoints. A positive timeout bounds
// each report generation.
func NewHandler(reports ReportGenerator, catalog ports.CatalogStore, timeout time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		reports: reports,
		catalog: catalog,
		timeout: timeout,
		logger:  logger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/catalog", h.GetCatalog)
	e.POST("/v1/reports", h.CreateReport)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetCatalog(c echo.Context) error {
	cat, err := h.catalog.GetCatalog(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) CreateReport(c echo.Context) error {
	var body ReportRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must be a JSON object"})
	}

	ctx := c.Request().Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	report, err := h.reports.GenerateReport(ctx, body.toDomain())
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return h.mapError(c, err)
	}

	requestID, _ := c.Get(requestIDKey).(string)

	return c.JSON(http.StatusOK, ReportResponse{
		Report: report,
		Meta: MetaResp{
			Model:     h.reports.Model(),
			RequestID: requestID,
			LatencyMS: latency,
		},
	})
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get(requestIDKey).(string)

	var rerr *domain.ReportError
	if !errors.As(err, &rerr) {
		h.logger.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	resp := ErrorResponse{Error: rerr.Error(), Kind: rerr.KindName(), Fields: rerr.Fields}

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrTransport) && isTimeout(err):
		h.logger.Error("inference endpoint timed out", "request_id", requestID, "error", err)
		return c.JSON(http.StatusGatewayTimeout, resp)
	case errors.Is(err, domain.ErrTransport),
		errors.Is(err, domain.ErrMalformedEnvelope),
		errors.Is(err, domain.ErrMalformedReport),
		errors.Is(err, domain.ErrIncompleteReport):
		h.logger.Error("upstream inference failure", "request_id", requestID, "kind", resp.Kind, "error", err)
		return c.JSON(http.StatusBadGateway, resp)
	default:
		h.logger.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
