package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jmanzanog/quote-session/internal/domain"
	"github.com/jmanzanog/quote-session/internal/parse"
)

const (
	kindMarket     = "market"
	kindCustom     = "custom"
	kindForex      = "forex"
	kindHistorical = "historical"
	kindIntraday   = "intraday"

	elementSeparator = ","
	historicalDate   = "2006-01-02"
)

// deliverFunc decodes raw and hands the value to the matching callback.
type deliverFunc func(r domain.Receiver, id domain.RequestID, field domain.Field, raw string) error

var deliverers = map[domain.DecodeKind]deliverFunc{
	domain.KindString: func(r domain.Receiver, id domain.RequestID, field domain.Field, raw string) error {
		v, err := parse.String(raw)
		if err != nil {
			return err
		}
		r.OnString(id, field, v)
		return nil
	},
	domain.KindDouble: func(r domain.Receiver, id domain.RequestID, field domain.Field, raw string) error {
		v, err := parse.Double(raw)
		if err != nil {
			return err
		}
		r.OnDouble(id, field, v)
		return nil
	},
	domain.KindInteger: func(r domain.Receiver, id domain.RequestID, field domain.Field, raw string) error {
		v, err := parse.Integer(raw)
		if err != nil {
			return err
		}
		r.OnSize(id, field, v)
		return nil
	},
}

// fetcher builds fetch tasks bound to one receiver.
type fetcher struct {
	transport Transport
	urls      URLBuilder
	receiver  domain.Receiver
	logger    *slog.Logger
}

// marketTask fetches one scalar field. It never fails: transport and format
// problems are logged and the sample is dropped.
func (f *fetcher) marketTask(id domain.RequestID, instrument domain.Instrument, req domain.FieldRequest) Task {
	field := req.Field
	deliver := deliverers[field.Kind()]
	url := f.urls.QuoteURL([]domain.Instrument{instrument}, field.Code())
	logger := f.logger.With("request_id", id, "field", field.String(), "url", url)

	return Task{
		Name:  field.String(),
		Delay: req.Delay,
		Run: func(ctx context.Context) error {
			line, err := f.transport.FetchLine(ctx, url)
			if err != nil {
				logger.Warn("Failed to fetch field", "error", err)
				recordFetch(kindMarket, outcomeTransportError)
				return nil
			}
			if cancelled(ctx) {
				recordFetch(kindMarket, outcomeCancelled)
				return nil
			}
			if err := deliver(f.receiver, id, field, line); err != nil {
				if errors.Is(err, parse.ErrEmptyValue) {
					recordFetch(kindMarket, outcomeEmpty)
					return nil
				}
				logger.Warn("Failed to decode field", "error", err, "value", line)
				recordFetch(kindMarket, outcomeFormatError)
				return nil
			}
			recordFetch(kindMarket, outcomeDelivered)
			return nil
		},
	}
}

// customTask fetches arbitrary codes for several instruments and delivers
// the raw lines. Transport failures are returned.
func (f *fetcher) customTask(id domain.RequestID, instruments []domain.Instrument, codes string, delay time.Duration) Task {
	url := f.urls.QuoteURL(instruments, codes)

	return Task{
		Name:  "custom:" + codes,
		Delay: delay,
		Run: func(ctx context.Context) error {
			lines, err := f.transport.FetchLines(ctx, url)
			if err != nil {
				recordFetch(kindCustom, outcomeTransportError)
				return fmt.Errorf("failed to fetch custom data: %w", err)
			}
			if cancelled(ctx) {
				recordFetch(kindCustom, outcomeCancelled)
				return nil
			}
			f.receiver.OnCustom(id, lines)
			recordFetch(kindCustom, outcomeDelivered)
			return nil
		},
	}
}

// forexTask fetches `price,"date","time"` for a currency pair.
func (f *fetcher) forexTask(id domain.RequestID, from, to domain.Currency, delay time.Duration) Task {
	url := f.urls.ForexURL(from, to)
	logger := f.logger.With("request_id", id, "pair", domain.PairCode(from, to), "url", url)

	return Task{
		Name:  domain.PairCode(from, to),
		Delay: delay,
		Run: func(ctx context.Context) error {
			line, err := f.transport.FetchLine(ctx, url)
			if err != nil {
				logger.Warn("Failed to fetch forex rate", "error", err)
				recordFetch(kindForex, outcomeTransportError)
				return nil
			}
			tick, err := decodeForex(line)
			switch {
			case cancelled(ctx):
				recordFetch(kindForex, outcomeCancelled)
			case errors.Is(err, parse.ErrEmptyValue):
				recordFetch(kindForex, outcomeEmpty)
			case err != nil:
				logger.Warn("Failed to decode forex rate", "error", err, "value", line)
				recordFetch(kindForex, outcomeFormatError)
			default:
				f.receiver.OnForex(id, tick)
				recordFetch(kindForex, outcomeDelivered)
			}
			return nil
		},
	}
}

func decodeForex(line string) (domain.ForexTick, error) {
	elements := strings.Split(line, elementSeparator)
	for _, el := range elements {
		if !parse.IsParsable(el) {
			return domain.ForexTick{}, fmt.Errorf("forex element: %w", parse.ErrEmptyValue)
		}
	}
	if len(elements) != 3 {
		return domain.ForexTick{}, fmt.Errorf("forex line has %d elements: %w", len(elements), parse.ErrFormat)
	}
	price, err := parse.Double(elements[0])
	if err != nil {
		return domain.ForexTick{}, err
	}
	ts, err := parse.Timestamp(elements[1], elements[2])
	if err != nil {
		return domain.ForexTick{}, err
	}
	return domain.ForexTick{Timestamp: ts, Price: price}, nil
}

// historical streams the price table and delivers one bar per row. The
// first non-blank line is the column header.
func (f *fetcher) historical(ctx context.Context, id domain.RequestID, instrument domain.Instrument, start, end time.Time, period domain.Period) error {
	url := f.urls.HistoricalURL(instrument, start, end, period)
	header := true
	return f.stream(ctx, kindHistorical, url, func(_ int, line string) (bool, error) {
		if header {
			header = false
			return false, nil
		}
		bar, err := decodeHistoricalRow(line)
		if err != nil {
			return false, err
		}
		f.receiver.OnHistorical(id, bar)
		return true, nil
	})
}

// intraday streams today's minute series. The stream starts with a
// "key:value" metadata header that is skipped by content.
func (f *fetcher) intraday(ctx context.Context, id domain.RequestID, instrument domain.Instrument) error {
	url := f.urls.IntradayURL(instrument)
	inHeader := true
	return f.stream(ctx, kindIntraday, url, func(_ int, line string) (bool, error) {
		if inHeader && strings.Contains(line, ":") {
			return false, nil
		}
		inHeader = false
		bar, err := decodeIntradayRow(line)
		if err != nil {
			return false, err
		}
		f.receiver.OnIntraday(id, bar)
		return true, nil
	})
}

// stream opens url and feeds every non-blank line to handle in order. A
// handle error aborts the remaining rows.
func (f *fetcher) stream(ctx context.Context, kind, url string, handle func(lineNo int, line string) (bool, error)) error {
	body, err := f.transport.OpenLineStream(ctx, url)
	if err != nil {
		recordFetch(kind, outcomeTransportError)
		return fmt.Errorf("failed to open %s stream: %w", kind, err)
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			f.logger.Warn("failed to close stream", "error", closeErr, "url", url)
		}
	}()

	scanner := bufio.NewScanner(body)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		delivered, err := handle(lineNo, line)
		if err != nil {
			recordFetch(kind, outcomeFormatError)
			return fmt.Errorf("%s line %d: %w: %v", kind, lineNo, ErrCorruptStream, err)
		}
		if delivered {
			rowsDelivered.WithLabelValues(kind).Inc()
		}
	}
	if err := scanner.Err(); err != nil {
		recordFetch(kind, outcomeTransportError)
		return fmt.Errorf("failed to read %s stream: %w", kind, err)
	}
	recordFetch(kind, outcomeDelivered)
	return nil
}

// decodeHistoricalRow reads Date,Open,High,Low,Close,Volume,Adj Close.
func decodeHistoricalRow(line string) (domain.HistoricalBar, error) {
	el := strings.Split(line, elementSeparator)
	if len(el) != 7 {
		return domain.HistoricalBar{}, fmt.Errorf("expected 7 elements, got %d", len(el))
	}
	date, err := time.Parse(historicalDate, el[0])
	if err != nil {
		return domain.HistoricalBar{}, fmt.Errorf("invalid date: %w", err)
	}
	var bar domain.HistoricalBar
	bar.Date = date
	if err := parseFloats(el[1:5], &bar.Open, &bar.High, &bar.Low, &bar.Close); err != nil {
		return domain.HistoricalBar{}, err
	}
	if bar.Volume, err = strconv.ParseInt(el[5], 10, 64); err != nil {
		return domain.HistoricalBar{}, fmt.Errorf("invalid volume: %w", err)
	}
	if err := parseFloats(el[6:], &bar.AdjClose); err != nil {
		return domain.HistoricalBar{}, err
	}
	return bar, nil
}

// decodeIntradayRow reads Timestamp,close,high,low,open,volume.
func decodeIntradayRow(line string) (domain.IntradayBar, error) {
	el := strings.Split(line, elementSeparator)
	if len(el) != 6 {
		return domain.IntradayBar{}, fmt.Errorf("expected 6 elements, got %d", len(el))
	}
	var bar domain.IntradayBar
	var err error
	if bar.Timestamp, err = strconv.ParseInt(el[0], 10, 64); err != nil {
		return domain.IntradayBar{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	if err := parseFloats(el[1:5], &bar.Close, &bar.High, &bar.Low, &bar.Open); err != nil {
		return domain.IntradayBar{}, err
	}
	if bar.Volume, err = strconv.ParseInt(el[5], 10, 64); err != nil {
		return domain.IntradayBar{}, fmt.Errorf("invalid volume: %w", err)
	}
	return bar, nil
}

func parseFloats(values []string, dst ...*float64) error {
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", v, err)
		}
		*dst[i] = f
	}
	return nil
}
