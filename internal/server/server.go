// Package server exposes the amortization engine and the number helpers over
// HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortization/internal/certificate"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/datetime"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/output"
	"github.com/iwvelando/loan-amortization/pkg/validation"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the HTTP handler.
type Options struct {
	// MaxRequestSize caps request bodies; zero means the default.
	MaxRequestSize int64
	// RateLimit and Burst bound the request rate; a zero RateLimit disables limiting.
	RateLimit rate.Limit
	Burst     int
	// CacheTTL is how long computed schedules are memoized; zero disables the cache.
	CacheTTL time.Duration
	Version  string
}

type handler struct {
	logger         *zap.Logger
	generator      *amortization.ScheduleGenerator
	schedules      *cache.Cache
	maxRequestSize int64
	version        string
	now            func() time.Time
}

// NewHandler constructs the HTTP handler that serves the schedule API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	h := newHandler(logger, opts)

	mux := http.NewServeMux()

	// Schedule computation, optionally with a certificate
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Amount in words and grouped digits
	mux.HandleFunc("/api/words", h.handleWords)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	if opts.RateLimit == 0 || opts.RateLimit == rate.Inf {
		return mux
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}
	return h.rateLimit(rate.NewLimiter(opts.RateLimit, burst), mux)
}

func newHandler(logger *zap.Logger, opts Options) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxRequestSize := opts.MaxRequestSize
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		generator:      amortization.NewScheduleGenerator(logger),
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		now:            time.Now,
	}
	if opts.CacheTTL > 0 {
		h.schedules = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return h
}

func (h *handler) rateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			h.logger.Warn("rate limit exceeded",
				zap.String("op", "server.rateLimit"),
				zap.String("path", r.URL.Path),
			)
			h.writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": http.StatusText(http.StatusTooManyRequests),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type scheduleRequest struct {
	Principal         float64             `json:"principal"`
	AnnualRatePercent float64             `json:"annualRatePercent"`
	TermYears         int                 `json:"termYears"`
	StartDate         string              `json:"startDate,omitempty"`
	Certificate       *certificateRequest `json:"certificate,omitempty"`
}

type certificateRequest struct {
	BorrowerName         string            `json:"borrowerName"`
	ReferenceNumber      string            `json:"referenceNumber,omitempty"`
	LenderName           string            `json:"lenderName,omitempty"`
	CurrencySymbol       string            `json:"currencySymbol,omitempty"`
	CurrencyWord         string            `json:"currencyWord,omitempty"`
	ProcessingFees       float64           `json:"processingFees,omitempty"`
	ProcessingFeePercent float64           `json:"processingFeePercent,omitempty"`
	Labels               map[string]string `json:"labels,omitempty"`
}

type scheduleResponse struct {
	output.Document
	CSV      string   `json:"csv"`
	Warnings []string `json:"warnings,omitempty"`
	Cached   bool     `json:"cached"`
	Duration string   `json:"duration"`
}

type wordsResponse struct {
	Amount  uint64 `json:"amount"`
	Words   string `json:"words"`
	Grouped string `json:"grouped"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var req scheduleRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	input, err := h.loanInput(req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	schedule, cached, err := h.schedule(input)
	if err != nil {
		var invalid *amortization.InvalidInputError
		var overflow *amortization.ComputationOverflowError
		switch {
		case errors.As(err, &invalid):
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
		case errors.As(err, &overflow):
			h.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
		default:
			h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		}
		return
	}

	if r.URL.Query().Get("format") == constants.OutputFormatCSV {
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		if err := output.CsvFormat(w, schedule); err != nil {
			h.logger.Error("failed to write CSV response", zap.String("op", op), zap.Error(err))
		}
		return
	}

	resp := scheduleResponse{
		Document: output.Document{Schedule: schedule},
		Cached:   cached,
	}

	validator := &validation.LoanValidator{Loan: validation.LoanConfig{
		Principal:   req.Principal,
		RatePercent: req.AnnualRatePercent,
		TermYears:   req.TermYears,
		StartDate:   req.StartDate,
	}}

	if req.Certificate != nil {
		cert, err := certificate.Build(schedule, certificate.Profile{
			BorrowerName:         req.Certificate.BorrowerName,
			ReferenceNumber:      req.Certificate.ReferenceNumber,
			LenderName:           req.Certificate.LenderName,
			CurrencySymbol:       req.Certificate.CurrencySymbol,
			CurrencyWord:         req.Certificate.CurrencyWord,
			ProcessingFees:       req.Certificate.ProcessingFees,
			ProcessingFeePercent: req.Certificate.ProcessingFeePercent,
			Labels:               req.Certificate.Labels,
		})
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		resp.Certificate = cert
		resp.Lines = cert.LabelledLines()
		validator.Loan.ProcessingFees = cert.ProcessingFees.InexactFloat64()
	}
	resp.Warnings = validator.ValidateAll()

	csvData, err := output.CsvString(schedule)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}
	resp.CSV = csvData
	resp.Duration = time.Since(start).String()

	h.logger.Info("schedule request completed",
		zap.String("op", op),
		zap.Int("payments", schedule.PaymentCount),
		zap.Bool("cached", cached),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) loanInput(req scheduleRequest) (amortization.LoanInput, error) {
	var start time.Time
	if strings.TrimSpace(req.StartDate) == "" {
		start = datetime.MustParseTime(datetime.DateLayout, h.now().Format(datetime.DateLayout))
	} else {
		var err error
		start, err = datetime.ParseDate(req.StartDate)
		if err != nil {
			return amortization.LoanInput{}, fmt.Errorf("invalid startDate %q, expected %s", req.StartDate, datetime.DateLayout)
		}
	}

	return amortization.LoanInput{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermYears:         req.TermYears,
		StartDate:         start,
	}, nil
}

// schedule returns the schedule for input, serving repeated inputs from the
// cache when one is configured.
func (h *handler) schedule(input amortization.LoanInput) (amortization.Schedule, bool, error) {
	key := scheduleCacheKey(input)
	if h.schedules != nil {
		if cached, found := h.schedules.Get(key); found {
			return cached.(amortization.Schedule), true, nil
		}
	}

	schedule, err := h.generator.Generate(input)
	if err != nil {
		return amortization.Schedule{}, false, err
	}

	if h.schedules != nil {
		h.schedules.Set(key, schedule, cache.DefaultExpiration)
	}
	return schedule, false, nil
}

func scheduleCacheKey(input amortization.LoanInput) string {
	return strings.Join([]string{
		strconv.FormatFloat(input.Principal, 'g', -1, 64),
		strconv.FormatFloat(input.AnnualRatePercent, 'g', -1, 64),
		strconv.Itoa(input.TermYears),
		input.StartDate.Format(datetime.DateLayout),
	}, "|")
}

func (h *handler) handleWords(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleWords"

	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("amount"))
	if raw == "" {
		h.respondError(w, http.StatusBadRequest, "missing amount", op)
		return
	}
	amount, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("amount must be a non-negative whole number, got %q", raw), op)
		return
	}

	word := constants.DefaultCurrencyWord
	if values, ok := r.URL.Query()["currency"]; ok {
		word = strings.TrimSpace(values[0])
	}

	h.writeJSON(w, http.StatusOK, wordsResponse{
		Amount:  amount,
		Words:   format.NumberToWordsWithCurrency(amount, word),
		Grouped: format.GroupedInteger(amount),
	})
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

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": http.StatusText(status)})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
