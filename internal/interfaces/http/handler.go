package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmanzanog/quote-session/internal/application"
	"github.com/jmanzanog/quote-session/internal/domain"
	"github.com/jmanzanog/quote-session/internal/infrastructure/persistence/memory"
)

// SessionService defines the session operations exposed over HTTP
type SessionService interface {
	RequestMarketData(ctx context.Context, id domain.RequestID, instrument domain.Instrument, fields []domain.FieldRequest) error
	RequestCustomData(ctx context.Context, id domain.RequestID, instruments []domain.Instrument, codes string, delay time.Duration) error
	RequestHistoricalData(ctx context.Context, id domain.RequestID, instrument domain.Instrument, start, end time.Time, period domain.Period) error
	RequestIntradayData(ctx context.Context, id domain.RequestID, instrument domain.Instrument) error
	RequestForexData(ctx context.Context, id domain.RequestID, from, to domain.Currency, delay time.Duration) error
	CancelRequest(ctx context.Context, id domain.RequestID) error
	ActiveRequests() []domain.RequestID
}

// SnapshotStore is where delivered values are read back from
type SnapshotStore interface {
	FindByID(ctx context.Context, id domain.RequestID) (memory.Snapshot, error)
	FindAll(ctx context.Context) ([]memory.Snapshot, error)
	Delete(ctx context.Context, id domain.RequestID) error
	TakeSeries(id domain.RequestID) memory.Series
}

type Handler struct {
	session SessionService
	store   SnapshotStore

	// seriesMu guards inFlight, the ids whose historical or intraday rows
	// are being collected in the store.
	seriesMu sync.Mutex
	inFlight map[domain.RequestID]struct{}
}

func NewHandler(session SessionService, store SnapshotStore) *Handler {
	return &Handler{
		session:  session,
		store:    store,
		inFlight: make(map[domain.RequestID]struct{}),
	}
}

type FieldRequestBody struct {
	Field string `json:"field" binding:"required"`
	Delay string `json:"delay"`
}

type MarketDataRequest struct {
	ID       *int               `json:"id" binding:"required"`
	Symbol   string             `json:"symbol" binding:"required"`
	Exchange string             `json:"exchange"`
	Fields   []FieldRequestBody `json:"fields" binding:"required,min=1"`
}

type CustomDataRequest struct {
	ID          *int     `json:"id" binding:"required"`
	Instruments []string `json:"instruments" binding:"required,min=1"`
	Fields      []string `json:"fields" binding:"required,min=1"`
	Delay       string   `json:"delay"`
}

type ForexDataRequest struct {
	ID    *int   `json:"id" binding:"required"`
	From  string `json:"from" binding:"required"`
	To    string `json:"to" binding:"required"`
	Delay string `json:"delay"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type AcceptedResponse struct {
	ID     domain.RequestID `json:"id"`
	Status string           `json:"status"`
}

func (h *Handler) RequestMarketData(c *gin.Context) {
	var req MarketDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.ErrorContext(c.Request.Context(), "Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	fields := make([]domain.FieldRequest, 0, len(req.Fields))
	for _, f := range req.Fields {
		field, ok := domain.FieldByName(f.Field)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown field %q", f.Field)})
			return
		}
		delay, err := parseDelay(f.Delay)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		fields = append(fields, domain.FieldRequest{Field: field, Delay: delay})
	}

	id := domain.RequestID(*req.ID)
	instrument := domain.NewInstrument(req.Exchange, req.Symbol)
	if err := h.session.RequestMarketData(c.Request.Context(), id, instrument, fields); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to request market data", "request_id", id, "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, AcceptedResponse{ID: id, Status: "scheduled"})
}

func (h *Handler) RequestCustomData(c *gin.Context) {
	var req CustomDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.ErrorContext(c.Request.Context(), "Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	instruments := make([]domain.Instrument, 0, len(req.Instruments))
	for _, code := range req.Instruments {
		instruments = append(instruments, domain.ParseInstrument(code))
	}

	fields := make([]domain.Field, 0, len(req.Fields))
	for _, name := range req.Fields {
		field, ok := domain.FieldByName(name)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown field %q", name)})
			return
		}
		fields = append(fields, field)
	}

	delay, err := parseDelay(req.Delay)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	id := domain.RequestID(*req.ID)
	if err := h.session.RequestCustomData(c.Request.Context(), id, instruments, domain.JoinCodes(fields...), delay); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to request custom data", "request_id", id, "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, AcceptedResponse{ID: id, Status: "scheduled"})
}

func (h *Handler) RequestForexData(c *gin.Context) {
	var req ForexDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.ErrorContext(c.Request.Context(), "Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	delay, err := parseDelay(req.Delay)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	id := domain.RequestID(*req.ID)
	from := domain.Currency(strings.ToUpper(req.From))
	to := domain.Currency(strings.ToUpper(req.To))
	if err := h.session.RequestForexData(c.Request.Context(), id, from, to, delay); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to request forex data", "request_id", id, "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, AcceptedResponse{ID: id, Status: "scheduled"})
}

func (h *Handler) CancelRequest(c *gin.Context) {
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	if err := h.session.CancelRequest(c.Request.Context(), id); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to cancel request", "request_id", id, "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, memory.ErrSnapshotNotFound) {
		slog.WarnContext(c.Request.Context(), "Failed to drop snapshot", "request_id", id, "error", err)
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	snapshot, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) ListRequests(c *gin.Context) {
	snapshots, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to list snapshots", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active":    h.session.ActiveRequests(),
		"snapshots": snapshots,
	})
}

func (h *Handler) GetHistorical(c *gin.Context) {
	id, ok := requestIDQuery(c)
	if !ok {
		return
	}

	start, err := time.Parse(time.DateOnly, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid start date: %v", err)})
		return
	}
	end, err := time.Parse(time.DateOnly, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid end date: %v", err)})
		return
	}
	period, ok := domain.ParsePeriod(c.Query("period"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid period %q", c.Query("period"))})
		return
	}

	instrument := domain.NewInstrument(c.Query("exchange"), c.Param("symbol"))
	if !h.beginSeries(c, id) {
		return
	}
	defer h.endSeries(id)

	if err := h.session.RequestHistoricalData(c.Request.Context(), id, instrument, start, end, period); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to fetch historical data", "request_id", id, "instrument", instrument.Code(), "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.TakeSeries(id).Historical)
}

func (h *Handler) GetIntraday(c *gin.Context) {
	id, ok := requestIDQuery(c)
	if !ok {
		return
	}

	instrument := domain.NewInstrument(c.Query("exchange"), c.Param("symbol"))
	if !h.beginSeries(c, id) {
		return
	}
	defer h.endSeries(id)

	if err := h.session.RequestIntradayData(c.Request.Context(), id, instrument); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to fetch intraday data", "request_id", id, "instrument", instrument.Code(), "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.TakeSeries(id).Intraday)
}

// beginSeries claims id for one historical or intraday call. A second call
// with the same id while the first is running gets 409.
func (h *Handler) beginSeries(c *gin.Context, id domain.RequestID) bool {
	h.seriesMu.Lock()
	defer h.seriesMu.Unlock()

	if _, busy := h.inFlight[id]; busy {
		c.JSON(http.StatusConflict, ErrorResponse{Error: fmt.Sprintf("request %d: series already in progress", id)})
		return false
	}
	h.inFlight[id] = struct{}{}
	h.store.TakeSeries(id)
	return true
}

// endSeries drops any rows left for id and releases it.
func (h *Handler) endSeries(id domain.RequestID) {
	h.seriesMu.Lock()
	defer h.seriesMu.Unlock()

	h.store.TakeSeries(id)
	delete(h.inFlight, id)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrDuplicateRequest):
		return http.StatusConflict
	case errors.Is(err, application.ErrUnknownRequest), errors.Is(err, memory.ErrSnapshotNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// parseDelay reads a Go duration; empty means one shot.
func parseDelay(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q: %w", s, err)
	}
	return d, nil
}

func requestIDParam(c *gin.Context) (domain.RequestID, bool) {
	return parseRequestID(c, c.Param("id"))
}

func requestIDQuery(c *gin.Context) (domain.RequestID, bool) {
	return parseRequestID(c, c.DefaultQuery("id", "0"))
}

func parseRequestID(c *gin.Context, raw string) (domain.RequestID, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request id %q", raw)})
		return 0, false
	}
	return domain.RequestID(n), true
}
