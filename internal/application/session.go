package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmanzanog/quote-session/internal/domain"
)

const defaultPoolSize = 1

type sessionOptions struct {
	poolSize int
	logger   *slog.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

// WithPoolSize bounds how many periodic fetches run at the same time.
func WithPoolSize(n int) Option {
	return func(o *sessionOptions) {
		o.poolSize = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// Session validates requests, turns them into fetch tasks and registers
// them with its scheduler. Decoded values go to the receiver.
type Session struct {
	id        uuid.UUID
	fetcher   *fetcher
	scheduler *Scheduler
	logger    *slog.Logger
}

func NewSession(receiver domain.Receiver, transport Transport, urls URLBuilder, opts ...Option) (*Session, error) {
	if receiver == nil || transport == nil || urls == nil {
		return nil, fmt.Errorf("receiver, transport and url builder are required: %w", ErrInvalidArgument)
	}

	o := sessionOptions{poolSize: defaultPoolSize, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.poolSize < 1 {
		return nil, fmt.Errorf("pool size %d: %w", o.poolSize, ErrInvalidArgument)
	}

	id := uuid.New()
	logger := o.logger.With("session_id", id.String())

	return &Session{
		id: id,
		fetcher: &fetcher{
			transport: transport,
			urls:      urls,
			receiver:  receiver,
			logger:    logger,
		},
		scheduler: NewScheduler(o.poolSize, logger),
		logger:    logger,
	}, nil
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// RequestMarketData schedules one task per field, each at its own delay.
// Field requests with a negative delay are logged and skipped.
func (s *Session) RequestMarketData(ctx context.Context, id domain.RequestID, instrument domain.Instrument, fields []domain.FieldRequest) error {
	if !instrument.IsValid() {
		return fmt.Errorf("instrument symbol is required: %w", ErrInvalidArgument)
	}
	if len(fields) == 0 {
		return fmt.Errorf("at least one field is required: %w", ErrInvalidArgument)
	}

	tasks := make([]Task, 0, len(fields))
	for _, req := range fields {
		if req.Delay < 0 {
			s.logger.WarnContext(ctx, "Skipping invalid field request", "request_id", id, "field", req.Field.String(), "delay", req.Delay)
			continue
		}
		tasks = append(tasks, s.fetcher.marketTask(id, instrument, req))
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no valid field requests: %w", ErrInvalidArgument)
	}

	if err := s.scheduler.Register(ctx, id, tasks); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Market data requested", "request_id", id, "instrument", instrument.Code(), "fields", len(tasks))
	return nil
}

// RequestCustomData fetches arbitrary field codes for several instruments.
// A one-shot request returns the transport error, if any.
func (s *Session) RequestCustomData(ctx context.Context, id domain.RequestID, instruments []domain.Instrument, codes string, delay time.Duration) error {
	if len(instruments) == 0 {
		return fmt.Errorf("at least one instrument is required: %w", ErrInvalidArgument)
	}
	for _, inst := range instruments {
		if !inst.IsValid() {
			return fmt.Errorf("instrument symbol is required: %w", ErrInvalidArgument)
		}
	}
	if strings.TrimSpace(codes) == "" {
		return fmt.Errorf("field codes are required: %w", ErrInvalidArgument)
	}
	if delay < 0 {
		return fmt.Errorf("delay %s: %w", delay, ErrInvalidArgument)
	}

	task := s.fetcher.customTask(id, instruments, codes, delay)
	if err := s.scheduler.Register(ctx, id, []Task{task}); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Custom data requested", "request_id", id, "instruments", domain.JoinInstruments(instruments...), "codes", codes)
	return nil
}

// RequestHistoricalData fetches bars between start and end inclusive on the
// calling goroutine. It is not registered and cannot be cancelled.
func (s *Session) RequestHistoricalData(ctx context.Context, id domain.RequestID, instrument domain.Instrument, start, end time.Time, period domain.Period) error {
	if !instrument.IsValid() {
		return fmt.Errorf("instrument symbol is required: %w", ErrInvalidArgument)
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("start and end dates are required: %w", ErrInvalidArgument)
	}
	if start.After(end) {
		return fmt.Errorf("start %s is after end %s: %w", start.Format(time.DateOnly), end.Format(time.DateOnly), ErrInvalidArgument)
	}
	if !period.IsValid() {
		return fmt.Errorf("period %d: %w", int(period), ErrInvalidArgument)
	}

	s.logger.InfoContext(ctx, "Historical data requested", "request_id", id, "instrument", instrument.Code(), "period", period.String())
	return s.fetcher.historical(ctx, id, instrument, start, end, period)
}

// RequestIntradayData fetches today's minute series on the calling goroutine.
func (s *Session) RequestIntradayData(ctx context.Context, id domain.RequestID, instrument domain.Instrument) error {
	if !instrument.IsValid() {
		return fmt.Errorf("instrument symbol is required: %w", ErrInvalidArgument)
	}

	s.logger.InfoContext(ctx, "Intraday data requested", "request_id", id, "instrument", instrument.Code())
	return s.fetcher.intraday(ctx, id, instrument)
}

// RequestForexData fetches the from/to exchange rate, once or periodically.
func (s *Session) RequestForexData(ctx context.Context, id domain.RequestID, from, to domain.Currency, delay time.Duration) error {
	if !from.IsValid() || !to.IsValid() {
		return fmt.Errorf("currency pair %q/%q: %w", from, to, ErrInvalidArgument)
	}
	if delay < 0 {
		return fmt.Errorf("delay %s: %w", delay, ErrInvalidArgument)
	}

	task := s.fetcher.forexTask(id, from, to, delay)
	if err := s.scheduler.Register(ctx, id, []Task{task}); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Forex data requested", "request_id", id, "pair", domain.PairCode(from, to))
	return nil
}

// CancelRequest stops all periodic deliveries for id.
func (s *Session) CancelRequest(ctx context.Context, id domain.RequestID) error {
	if err := s.scheduler.Cancel(id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Request cancelled", "request_id", id)
	return nil
}

// ActiveRequests lists the ids currently registered.
func (s *Session) ActiveRequests() []domain.RequestID {
	return s.scheduler.Active()
}

// Close cancels every request and waits for periodic loops to exit.
func (s *Session) Close(ctx context.Context) error {
	if err := s.scheduler.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	s.logger.InfoContext(ctx, "Session closed")
	return nil
}
