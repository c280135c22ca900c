// Package parse decodes the loosely structured text values returned by the
// quote service. All functions are pure.
package parse

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmanzanog/quote-session/internal/domain"
)

var (
	// ErrEmptyValue reports a field without a current value ("", "N/A" or `""`).
	ErrEmptyValue = errors.New("empty value")
	// ErrFormat reports a present value that does not match the expected grammar.
	ErrFormat = errors.New("invalid format")
)

const (
	notAvailable = "N/A"
	emptyQuoted  = `""`
	pairSep      = " - "
	dateLayout   = "1/2/2006"
	timeLayout   = "3:04PM"
)

var (
	numberPattern    = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	percentPattern   = regexp.MustCompile(`^(-?\d+(\.\d+)?)%$`)
	boldPattern      = regexp.MustCompile(`^<b>(-?\d+(\.\d+)?)</b>$`)
	datePattern      = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	timePattern      = regexp.MustCompile(`^(1[0-2]|0?[1-9]):[0-5]\d[AP]M$`)
	integerPattern   = regexp.MustCompile(`^-?\d+$`)
	magnitudePattern = regexp.MustCompile(`^(-?\d*\.?\d+)([A-Za-z])$`)
)

var magnitudes = map[string]int64{
	"M": 1_000_000,
	"B": 1_000_000_000,
}

// Pair holds the two sides of an "A - B" value in the order they appear.
type Pair struct {
	First  float64 `json:"first"`
	Second float64 `json:"second"`
}

// TimeOfDay is a wall clock time without a date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On places the time on the given calendar day in UTC.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, time.UTC)
}

// IsParsable reports whether v carries a value at all.
func IsParsable(v string) bool {
	return v != "" && v != notAvailable && v != emptyQuoted
}

// TrimQuotes strips one leading and one trailing double quote.
func TrimQuotes(v string) string {
	v = strings.TrimPrefix(v, `"`)
	return strings.TrimSuffix(v, `"`)
}

func TrimPercent(v string) string {
	return strings.ReplaceAll(v, "%", "")
}

func TrimBold(v string) string {
	return strings.NewReplacer("<b>", "", "</b>", "").Replace(v)
}

// Split unquotes v and splits it on " - ".
func Split(v string) []string {
	return strings.Split(TrimQuotes(v), pairSep)
}

func emptyError(what string) error {
	return fmt.Errorf("%s: %w", what, ErrEmptyValue)
}

func formatError(what, v string) error {
	return fmt.Errorf("%s %q: %w", what, v, ErrFormat)
}

// String unquotes a present text value.
func String(v string) (string, error) {
	if !IsParsable(v) {
		return "", emptyError("string")
	}
	return TrimQuotes(v), nil
}

// Date decodes "5/25/2015", optionally quoted.
func Date(v string) (time.Time, error) {
	if !IsParsable(v) {
		return time.Time{}, emptyError("date")
	}
	s := TrimQuotes(v)
	if !datePattern.MatchString(s) {
		return time.Time{}, formatError("date", v)
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w: %v", v, ErrFormat, err)
	}
	return d, nil
}

// Time decodes "3:53pm" or "4:00AM", optionally quoted. 24-hour clock values fail.
func Time(v string) (TimeOfDay, error) {
	if !IsParsable(v) {
		return TimeOfDay{}, emptyError("time")
	}
	s := strings.ToUpper(TrimQuotes(v))
	if !timePattern.MatchString(s) {
		return TimeOfDay{}, formatError("time", v)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("time %q: %w: %v", v, ErrFormat, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// DateTime combines a date and a time value into a UTC instant.
func DateTime(date, clock string) (time.Time, error) {
	d, err := Date(date)
	if err != nil {
		return time.Time{}, err
	}
	t, err := Time(clock)
	if err != nil {
		return time.Time{}, err
	}
	return t.On(d), nil
}

// Timestamp is DateTime as UTC epoch milliseconds.
func Timestamp(date, clock string) (int64, error) {
	dt, err := DateTime(date, clock)
	if err != nil {
		return 0, err
	}
	return dt.UnixMilli(), nil
}

// ChangePercent decodes "-13.65 - -2.12%" into (money change, percent change).
func ChangePercent(v string) (Pair, error) {
	if !IsParsable(v) {
		return Pair{}, emptyError("change percent")
	}
	parts := Split(v)
	if len(parts) != 2 || !numberPattern.MatchString(parts[0]) {
		return Pair{}, formatError("change percent", v)
	}
	m := percentPattern.FindStringSubmatch(parts[1])
	if m == nil {
		return Pair{}, formatError("change percent", v)
	}
	return pairOf(v, "change percent", parts[0], m[1])
}

// TradeWithTime decodes "4:00pm - <b>629.25</b>" into the trade time and price.
func TradeWithTime(v string) (TimeOfDay, float64, error) {
	if !IsParsable(v) {
		return TimeOfDay{}, 0, emptyError("trade with time")
	}
	parts := Split(v)
	if len(parts) != 2 {
		return TimeOfDay{}, 0, formatError("trade with time", v)
	}
	m := boldPattern.FindStringSubmatch(parts[1])
	if m == nil {
		return TimeOfDay{}, 0, formatError("trade with time", v)
	}
	t, err := Time(parts[0])
	if err != nil {
		return TimeOfDay{}, 0, err
	}
	price, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return TimeOfDay{}, 0, fmt.Errorf("trade with time %q: %w: %v", v, ErrFormat, err)
	}
	return t, price, nil
}

// PriceRange decodes "627.02 - 640.00". The sides are returned as given; no
// ordering between them is assumed.
func PriceRange(v string) (Pair, error) {
	if !IsParsable(v) {
		return Pair{}, emptyError("price range")
	}
	parts := Split(v)
	if len(parts) != 2 || !numberPattern.MatchString(parts[0]) || !numberPattern.MatchString(parts[1]) {
		return Pair{}, formatError("price range", v)
	}
	return pairOf(v, "price range", parts[0], parts[1])
}

func pairOf(v, what, first, second string) (Pair, error) {
	a, err := strconv.ParseFloat(first, 64)
	if err != nil {
		return Pair{}, fmt.Errorf("%s %q: %w: %v", what, v, ErrFormat, err)
	}
	b, err := strconv.ParseFloat(second, 64)
	if err != nil {
		return Pair{}, fmt.Errorf("%s %q: %w: %v", what, v, ErrFormat, err)
	}
	return Pair{First: a, Second: b}, nil
}

// BigNumber decodes a plain integer or a decimal suffixed with M (10^6) or
// B (10^9). Scaled values are computed exactly and truncated toward zero.
func BigNumber(v string) (int64, error) {
	if !IsParsable(v) {
		return 0, emptyError("big number")
	}
	s := TrimQuotes(v)
	if integerPattern.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("big number %q: %w: %v", v, ErrFormat, err)
		}
		return n, nil
	}

	m := magnitudePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, formatError("big number", v)
	}
	scale, ok := magnitudes[m[2]]
	if !ok {
		return 0, fmt.Errorf("big number %q: unknown suffix %s: %w", v, m[2], ErrFormat)
	}

	d, err := domain.NewDecimalFromString(m[1])
	if err != nil {
		return 0, fmt.Errorf("big number %q: %w: %v", v, ErrFormat, err)
	}
	scaled, err := d.Mul(domain.NewDecimalFromInt(scale))
	if err != nil {
		return 0, fmt.Errorf("big number %q: %w", v, err)
	}
	n, err := scaled.Int64()
	if err != nil {
		return 0, fmt.Errorf("big number %q: %w: %v", v, ErrFormat, err)
	}
	return n, nil
}

// PercentToFloat decodes "3.45%" to 3.45 (the percentage scale is kept).
func PercentToFloat(v string) (float64, error) {
	if !IsParsable(v) {
		return 0, emptyError("percent")
	}
	return parseFloat(v, "percent", TrimPercent(TrimQuotes(v)))
}

// Double decodes a plain, optionally quoted, number.
func Double(v string) (float64, error) {
	if !IsParsable(v) {
		return 0, emptyError("double")
	}
	return parseFloat(v, "double", TrimQuotes(v))
}

// Integer decodes integer fields. Volumes and share counts may carry a
// magnitude suffix, so this accepts everything BigNumber does.
func Integer(v string) (int64, error) {
	return BigNumber(v)
}

func parseFloat(v, what, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w: %v", what, v, ErrFormat, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, formatError(what, v)
	}
	return f, nil
}
