package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/fuel-blend/internal/blend"
	"github.com/iwvelando/fuel-blend/internal/config"
	"github.com/iwvelando/fuel-blend/pkg/constants"
	"github.com/iwvelando/fuel-blend/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const shutdownTimeout = 5 * time.Second

type handler struct {
	logger        *zap.Logger
	solver        *blend.Solver
	maxUploadSize int64
	currency      string
	parityRatio   float64
	version       string
}

// NewHandler constructs the HTTP handler that serves the blend API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &Config{}
		_ = cfg.normalize()
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		solver:        blend.NewSolver(logger),
		maxUploadSize: maxUploadSize,
		currency:      cfg.Currency,
		parityRatio:   cfg.ParityRatio,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/blend", h.handleBlend)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

// Run serves the API on cfg.Address until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, logger *zap.Logger, cfg *Config, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           NewHandler(logger, cfg, version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "server.Run"),
			zap.String("address", cfg.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logger.Info("server stopped", zap.String("op", "server.Run"))
	return nil
}

// blendPayload is the body accepted by /api/blend, as JSON or YAML.
type blendPayload struct {
	Mode             string  `json:"mode" yaml:"mode"`
	Total            float64 `json:"total" yaml:"total"`
	PriceA           float64 `json:"priceA" yaml:"priceA"`
	PriceB           float64 `json:"priceB" yaml:"priceB"`
	DilutionFraction float64 `json:"dilutionFraction" yaml:"dilutionFraction"`
	TargetPurity     float64 `json:"targetPurity" yaml:"targetPurity"`
	Tolerance        float64 `json:"tolerance" yaml:"tolerance"`
	MaxIterations    int     `json:"maxIterations" yaml:"maxIterations"`
	FluidA           string  `json:"fluidA" yaml:"fluidA"`
	FluidB           string  `json:"fluidB" yaml:"fluidB"`
	Currency         string  `json:"currency" yaml:"currency"`
}

// configuration maps the payload onto a Configuration so that the CLI and the
// API share defaults.
func (p blendPayload) configuration(currency string, parity float64) config.Configuration {
	conf := config.Configuration{
		Output: config.OutputConfig{Format: constants.OutputFormatJSON, Currency: currency},
		Blend: config.BlendConfig{
			Mode:          p.Mode,
			Total:         p.Total,
			TargetPurity:  p.TargetPurity,
			Tolerance:     p.Tolerance,
			MaxIterations: p.MaxIterations,
			ParityRatio:   parity,
		},
		FluidA: config.FluidConfig{Name: p.FluidA, Price: p.PriceA, DilutionFraction: p.DilutionFraction},
		FluidB: config.FluidConfig{Name: p.FluidB, Price: p.PriceB},
	}
	if strings.TrimSpace(p.Currency) != "" {
		conf.Output.Currency = p.Currency
	}
	conf.Normalize()
	return conf
}

type blendResponse struct {
	output.Report
	Duration string `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
	Hint  string `json:"hint,omitempty"`
}

func (h *handler) handleBlend(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBlend"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				errorResponse{Error: fmt.Sprintf("request body exceeds limit of %d bytes", h.maxUploadSize)}, op)
			return
		}
		h.respondError(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("failed to read request: %v", err)}, op)
		return
	}

	payload, err := decodePayload(r.Header.Get("Content-Type"), body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, errorResponse{Error: err.Error()}, op)
		return
	}

	conf := payload.configuration(h.currency, h.parityRatio)
	req, err := conf.Request()
	if err != nil {
		h.respondSolveError(w, err, op)
		return
	}

	result, err := h.solver.Solve(req)
	if err != nil {
		h.respondSolveError(w, err, op)
		return
	}

	report, err := output.NewReport(req, result, conf.FluidA.Name, conf.FluidB.Name, conf.Output.Currency, conf.Blend.ParityRatio)
	if err != nil {
		h.respondSolveError(w, err, op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("blend computed",
		zap.String("op", op),
		zap.String("mode", string(req.Mode)),
		zap.Int("iterations", result.Iterations),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, blendResponse{Report: report, Duration: elapsed.String()})
}

func decodePayload(contentType string, body []byte) (blendPayload, error) {
	var payload blendPayload
	if len(strings.TrimSpace(string(body))) == 0 {
		return payload, fmt.Errorf("request body is empty")
	}

	mediaType := ""
	if contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return payload, fmt.Errorf("invalid content type %q: %w", contentType, err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		if err := yaml.Unmarshal(body, &payload); err != nil {
			return payload, fmt.Errorf("failed to decode YAML request: %w", err)
		}
	case "", "application/json":
		decoder := json.NewDecoder(strings.NewReader(string(body)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			return payload, fmt.Errorf("failed to decode JSON request: %w", err)
		}
	default:
		return payload, fmt.Errorf("unsupported content type %q", mediaType)
	}
	return payload, nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondSolveError(w http.ResponseWriter, err error, op string) {
	resp := errorResponse{Error: err.Error()}
	var blendErr *blend.Error
	if errors.As(err, &blendErr) {
		resp.Kind = blendErr.Kind.String()
		resp.Field = blendErr.Field
		resp.Hint = blendErr.Hint
	}

	status := http.StatusInternalServerError
	switch blend.KindOf(err) {
	case blend.KindInvalidInput:
		status = http.StatusBadRequest
	case blend.KindInfeasible:
		status = http.StatusUnprocessableEntity
	}
	h.respondError(w, status, resp, op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, resp errorResponse, op string) {
	h.logger.Error("blend request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", resp.Error),
	)

	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
