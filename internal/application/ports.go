package application

import (
	"context"
	"io"
	"time"

	"github.com/jmanzanog/quote-session/internal/domain"
)

// Transport performs the network calls. Implementations return an error when
// FetchLine receives more than one line.
//
//go:generate mockgen -package=application -destination=mock_transport_test.go -source=ports.go Transport
type Transport interface {
	FetchLine(ctx context.Context, url string) (string, error)
	FetchLines(ctx context.Context, url string) ([]string, error)
	OpenLineStream(ctx context.Context, url string) (io.ReadCloser, error)
}

// URLBuilder renders service addresses. It performs no I/O.
type URLBuilder interface {
	QuoteURL(instruments []domain.Instrument, codes string) string
	HistoricalURL(instrument domain.Instrument, start, end time.Time, period domain.Period) string
	IntradayURL(instrument domain.Instrument) string
	ForexURL(from, to domain.Currency) string
}
