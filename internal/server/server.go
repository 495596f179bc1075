// Package server serves the amortization API and the embedded web page.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-amortization/internal/cache"
	"github.com/iwvelando/loan-amortization/internal/config"
	"github.com/iwvelando/loan-amortization/internal/metrics"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/output"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed static/*
var staticFiles embed.FS

// RequestIDHeader carries the identifier assigned to each API request.
const RequestIDHeader = "X-Request-ID"

// Options configures the handler. Zero values select defaults.
type Options struct {
	MaxBodySize int64
	Version     string
	Cache       cache.Cache
	Recorder    *metrics.Recorder
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	cache       cache.Cache
	recorder    *metrics.Recorder
	generator   *amortization.ScheduleGenerator
}

// NewHandler constructs the HTTP handler that serves the web UI and schedule API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NopRecorder()
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: opts.MaxBodySize,
		version:     version,
		cache:       opts.Cache,
		recorder:    opts.Recorder,
		generator:   amortization.NewScheduleGenerator(logger),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule", h.handleSchedule)
	mux.HandleFunc("/api/frequencies", h.handleFrequencies)
	mux.HandleFunc("/api/version", h.handleVersion)

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

type scheduleRequest struct {
	Principal            float64 `json:"principal"`
	Rate                 float64 `json:"rate"` // percent
	DurationYears        int     `json:"durationYears"`
	Frequency            string  `json:"frequency"`
	ConstantAmortization bool    `json:"constantAmortization"`
	Locale               string  `json:"locale,omitempty"`
}

type scheduleResponse struct {
	RequestID string       `json:"requestId"`
	Request   requestView  `json:"request"`
	Periods   []periodView `json:"periods"`
	Summary   summaryView  `json:"summary"`
	CSV       string       `json:"csv"`
	Locale    string       `json:"locale"`
	Duration  string       `json:"duration"`
	Cached    bool         `json:"cached"`
}

type requestView struct {
	amortization.LoanRequest
	PolicyName string `json:"policy"`
}

type periodView struct {
	amortization.PeriodRecord
	Formatted formattedPeriod `json:"formatted"`
}

type formattedPeriod struct {
	Installment      string `json:"installment"`
	Interest         string `json:"interest"`
	PrincipalRepaid  string `json:"principalRepaid"`
	RemainingBalance string `json:"remainingBalance"`
}

type summaryView struct {
	amortization.ScheduleSummary
	Formatted formattedSummary `json:"formatted"`
}

type formattedSummary struct {
	TotalCost          string `json:"totalCost"`
	TotalInterest      string `json:"totalInterest"`
	PrincipalBorrowed  string `json:"principalBorrowed"`
	AverageInstallment string `json:"averageInstallment"`
}

type errorResponse struct {
	RequestID  string `json:"requestId,omitempty"`
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

type frequencyView struct {
	Name           string `json:"name"`
	PeriodsPerYear int    `json:"periodsPerYear"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	requestID := uuid.NewString()
	w.Header().Set(RequestIDHeader, requestID)
	logger := h.logger.With(zap.String("requestId", requestID))

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	var payload scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, logger, http.StatusRequestEntityTooLarge, errorResponse{
				RequestID: requestID,
				Error:     fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize),
			}, op)
			return
		}
		h.respondError(w, logger, http.StatusBadRequest, errorResponse{
			RequestID: requestID,
			Error:     fmt.Sprintf("failed to decode request: %v", err),
		}, op)
		return
	}

	loan := config.LoanConfig{
		Principal:            payload.Principal,
		Rate:                 payload.Rate,
		DurationYears:        payload.DurationYears,
		Frequency:            payload.Frequency,
		ConstantAmortization: payload.ConstantAmortization,
	}
	req := loan.ToRequest()

	result, cached, err := h.schedule(r, logger, req)
	if err != nil {
		var inputErr *amortization.InvalidInputError
		if errors.As(err, &inputErr) {
			h.recorder.ValidationFailed(r.Context(), inputErr.Field)
			h.respondError(w, logger, http.StatusBadRequest, errorResponse{
				RequestID:  requestID,
				Error:      err.Error(),
				Field:      inputErr.Field,
				Constraint: inputErr.Constraint,
			}, op)
			return
		}
		h.respondError(w, logger, http.StatusInternalServerError, errorResponse{
			RequestID: requestID,
			Error:     fmt.Sprintf("failed to compute schedule: %v", err),
		}, op)
		return
	}

	locale := payload.Locale
	if locale == "" {
		locale = constants.DefaultLocale
	}
	loc := format.ResolveLocale(locale)
	if loc.Tag == language.French {
		result = amortization.Relabel(result, amortization.FrenchLabels)
	}

	elapsed := time.Since(start)
	response := buildResponse(result, loc)
	response.RequestID = requestID
	response.Locale = loc.Tag.String()
	response.Duration = elapsed.String()
	response.Cached = cached

	logger.Info("schedule computed",
		zap.String("op", op),
		zap.String("frequency", req.Frequency.String()),
		zap.String("policy", req.Policy()),
		zap.Int("periods", len(result.Periods)),
		zap.Bool("cached", cached),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// schedule returns the cached schedule for req or computes and caches it.
func (h *handler) schedule(r *http.Request, logger *zap.Logger, req amortization.LoanRequest) (*amortization.AmortizationResult, bool, error) {
	ctx := r.Context()
	key := cache.Key(req)
	if result, ok := h.cache.Get(ctx, key); ok {
		h.recorder.CacheHit(ctx)
		return result, true, nil
	}

	result, err := h.generator.Generate(req)
	if err != nil {
		return nil, false, err
	}
	h.recorder.ScheduleComputed(ctx, req, len(result.Periods))

	if err := h.cache.Set(ctx, key, result); err != nil {
		logger.Warn("failed to cache schedule",
			zap.String("op", "server.schedule"),
			zap.Error(err),
		)
	}
	return result, false, nil
}

func buildResponse(result *amortization.AmortizationResult, loc format.Locale) scheduleResponse {
	periods := make([]periodView, 0, len(result.Periods))
	for _, period := range result.Periods {
		periods = append(periods, periodView{
			PeriodRecord: period,
			Formatted: formattedPeriod{
				Installment:      loc.Currency(period.Installment),
				Interest:         loc.Currency(period.Interest),
				PrincipalRepaid:  loc.Currency(period.PrincipalRepaid),
				RemainingBalance: loc.Currency(period.RemainingBalance),
			},
		})
	}

	summary := result.Summary
	return scheduleResponse{
		Request: requestView{LoanRequest: result.Request, PolicyName: result.Request.Policy()},
		Periods: periods,
		Summary: summaryView{
			ScheduleSummary: summary,
			Formatted: formattedSummary{
				TotalCost:          loc.Currency(summary.TotalCost),
				TotalInterest:      loc.Currency(summary.TotalInterest),
				PrincipalBorrowed:  loc.Currency(summary.PrincipalBorrowed),
				AverageInstallment: loc.Currency(summary.AverageInstallment),
			},
		},
		CSV: output.CsvString(result),
	}
}

func (h *handler) handleFrequencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	frequencies := make([]frequencyView, 0, 4)
	for _, f := range amortization.Frequencies() {
		n, _ := f.PeriodsPerYear()
		frequencies = append(frequencies, frequencyView{Name: f.String(), PeriodsPerYear: n})
	}
	h.writeJSON(w, http.StatusOK, frequencies)
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

func (h *handler) respondError(w http.ResponseWriter, logger *zap.Logger, status int, resp errorResponse, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", resp.Error),
	}
	if resp.Field != "" {
		fields = append(fields, zap.String("field", resp.Field), zap.String("constraint", resp.Constraint))
	}
	if status >= http.StatusInternalServerError {
		logger.Error("schedule request failed", fields...)
	} else {
		logger.Warn("schedule request rejected", fields...)
	}

	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
