package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/geozarr/toolkit/store"
	"github.com/geozarr/toolkit/validate"
)

// instrumentationName identifies this package to the otel providers.
const instrumentationName = "github.com/geozarr/toolkit/serve"

// openGroup opens a group for validation. Swapped in tests to avoid
// touching real stores.
type openGroup func(ctx context.Context, url, groupPath string) (store.Group, error)

// Server handles validation requests.
type Server struct {
	validator    *validate.Validator
	logger       *slog.Logger
	storeTimeout time.Duration
	open         openGroup

	tracer      trace.Tracer
	validations metric.Int64Counter
}

// NewServer creates a Server with the given options.
func NewServer(opts ...Option) *Server {
	s := &Server{
		validator:    validate.New(),
		logger:       slog.Default(),
		storeTimeout: 30 * time.Second,
		open:         store.Open,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tracer = otel.Tracer(instrumentationName)
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"geozarr.validations",
		metric.WithDescription("Number of validation requests handled"),
	)
	if err != nil {
		s.logger.Warn("failed to create validation counter", "error", err)
	}
	s.validations = counter
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the API server at addr until the context is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("geozarr API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("malformed request body: %v", err),
		})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	ctx, span := s.tracer.Start(r.Context(), "validate",
		trace.WithAttributes(
			attribute.Bool("geozarr.inline", req.Attributes != nil),
			attribute.String("geozarr.url", req.URL),
		))
	defer span.End()

	var resp ValidateResponse
	if req.URL != "" {
		resp = s.validateURL(ctx, req.URL, req.Group)
	} else {
		resp = s.validateAttributes(ctx, req.Attributes)
	}

	span.SetAttributes(attribute.Bool("geozarr.valid", resp.Valid))
	if s.validations != nil {
		s.validations.Add(ctx, 1, metric.WithAttributes(
			attribute.Bool("valid", resp.Valid),
		))
	}
	writeJSON(w, http.StatusOK, resp)
}

// validateURL opens the referenced store and validates the group's
// attributes. Open and read failures become the response's top-level
// error rather than an HTTP failure.
func (s *Server) validateURL(ctx context.Context, url, groupPath string) ValidateResponse {
	resp := ValidateResponse{
		URL:         url,
		Group:       groupPath,
		Conventions: []string{},
		Results:     map[string]ConventionResult{},
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	grp, err := s.open(ctx, url, groupPath)
	if err != nil {
		s.logger.Error("failed to open Zarr store", "url", url, "group", groupPath, "error", err)
		resp.Error = openFailureMessage(url, groupPath, err)
		return resp
	}

	attrs, err := grp.Attrs(ctx)
	if err != nil {
		s.logger.Error("failed to read group attributes", "url", url, "group", groupPath, "error", err)
		resp.Error = openFailureMessage(url, groupPath, err)
		return resp
	}

	resp.Conventions = validate.Detect(attrs)
	resp.fill(s.validator.Attrs(ctx, attrs, resp.Conventions...))
	return resp
}

// validateAttributes validates an inline attribute mapping.
func (s *Server) validateAttributes(ctx context.Context, attrs map[string]any) ValidateResponse {
	resp := ValidateResponse{
		Conventions: validate.Detect(attrs),
		Results:     map[string]ConventionResult{},
	}
	resp.fill(s.validator.Attrs(ctx, attrs, resp.Conventions...))
	return resp
}

// openFailureMessage renders a store failure for the response. Scheme
// errors keep their own wording: they describe a missing capability, not
// a broken store.
func openFailureMessage(url, groupPath string, err error) string {
	if errors.Is(err, store.ErrUnsupportedScheme) {
		return err.Error()
	}
	msg := fmt.Sprintf("failed to open Zarr store at '%s'", url)
	if groupPath != "" {
		msg += fmt.Sprintf(" (group: '%s')", groupPath)
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
