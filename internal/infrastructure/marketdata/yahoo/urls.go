package yahoo

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmanzanog/quote-session/internal/application"
	"github.com/jmanzanog/quote-session/internal/domain"
)

const (
	DefaultQuoteURL      = "http://finance.yahoo.com/d/quotes.csv"
	DefaultHistoricalURL = "http://ichart.yahoo.com/table.csv"
	DefaultIntradayURL   = "http://chartapi.finance.yahoo.com/instrument/1.1"
)

// Endpoints renders the CSV service addresses. Query values are written
// verbatim: the service expects literal "+" between symbols and "=" in
// currency pair codes.
type Endpoints struct {
	QuoteBase      string
	HistoricalBase string
	IntradayBase   string
}

func NewEndpoints() Endpoints {
	return Endpoints{
		QuoteBase:      DefaultQuoteURL,
		HistoricalBase: DefaultHistoricalURL,
		IntradayBase:   DefaultIntradayURL,
	}
}

// QuoteURL builds ".../quotes.csv?s=GOOG+WD.L&f=ab".
func (e Endpoints) QuoteURL(instruments []domain.Instrument, codes string) string {
	return quoteAddress(e.QuoteBase, domain.JoinInstruments(instruments...), codes)
}

// HistoricalURL builds the price table address. Months are zero based on
// the wire.
func (e Endpoints) HistoricalURL(instrument domain.Instrument, start, end time.Time, period domain.Period) string {
	return fmt.Sprintf("%s?s=%s&a=%d&b=%d&c=%d&d=%d&e=%d&f=%d&g=%s&ignore=.csv",
		e.HistoricalBase, instrument.Code(),
		int(start.Month())-1, start.Day(), start.Year(),
		int(end.Month())-1, end.Day(), end.Year(),
		period.Code())
}

func (e Endpoints) IntradayURL(instrument domain.Instrument) string {
	return fmt.Sprintf("%s/%s/chartdata;type=quote;range=1d/csv", strings.TrimSuffix(e.IntradayBase, "/"), instrument.Code())
}

// ForexURL requests price, date and time of the last trade for the pair.
func (e Endpoints) ForexURL(from, to domain.Currency) string {
	codes := domain.JoinCodes(domain.FieldLastTradePrice, domain.FieldLastTradeDate, domain.FieldLastTradeTime)
	return quoteAddress(e.QuoteBase, domain.PairCode(from, to), codes)
}

func quoteAddress(base, instruments, codes string) string {
	return fmt.Sprintf("%s?s=%s&f=%s", base, instruments, codes)
}

var _ application.URLBuilder = Endpoints{}
