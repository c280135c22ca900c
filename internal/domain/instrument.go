package domain

import (
	"regexp"
	"strings"
)

// RequestID is the caller-chosen identity of a request. It only has to be
// unique among the requests that are currently active.
type RequestID int

// Instrument identifies a tradable security on the quote service: the
// exchange suffix (".L", ".DE", or empty for US venues) and the symbol.
type Instrument struct {
	Exchange string `json:"exchange"`
	Symbol   string `json:"symbol"`
}

func NewInstrument(exchange, symbol string) Instrument {
	return Instrument{
		Exchange: exchange,
		Symbol:   symbol,
	}
}

// ParseInstrument splits "WD.L" into symbol "WD" and suffix ".L".
// Symbols without a suffix map to the empty (US) exchange.
func ParseInstrument(code string) Instrument {
	code = strings.TrimSpace(code)
	if i := strings.LastIndex(code, "."); i > 0 {
		return NewInstrument(code[i:], code[:i])
	}
	return NewInstrument("", code)
}

func (i Instrument) IsValid() bool {
	return strings.TrimSpace(i.Symbol) != ""
}

// Code is the instrument as the quote service expects it, e.g. "GOOG" or "WD.L".
func (i Instrument) Code() string {
	return i.Symbol + i.Exchange
}

// JoinInstruments renders several instruments as one "s=" parameter value.
func JoinInstruments(instruments ...Instrument) string {
	codes := make([]string, len(instruments))
	for n, inst := range instruments {
		codes[n] = inst.Code()
	}
	return strings.Join(codes, "+")
}

// Currency is an ISO-style three letter currency code (XAU and XAG included).
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CHF Currency = "CHF"
	PLN Currency = "PLN"
	XAU Currency = "XAU"
	XAG Currency = "XAG"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

func (c Currency) IsValid() bool {
	return currencyPattern.MatchString(string(c))
}

// PairCode returns the forex instrument code, e.g. "USDGBP=X".
func PairCode(from, to Currency) string {
	return string(from) + string(to) + "=X"
}

// Period is the bar interval of a historical request. The zero value is Daily.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
)

var periodCodes = [...]string{
	Daily:   "d",
	Weekly:  "w",
	Monthly: "m",
}

var periodNames = [...]string{
	Daily:   "daily",
	Weekly:  "weekly",
	Monthly: "monthly",
}

func (p Period) IsValid() bool {
	return p >= Daily && p <= Monthly
}

// Code is the wire value of the "g" parameter.
func (p Period) Code() string {
	if !p.IsValid() {
		return ""
	}
	return periodCodes[p]
}

func (p Period) String() string {
	if !p.IsValid() {
		return "unknown"
	}
	return periodNames[p]
}

// ParsePeriod accepts "daily"/"weekly"/"monthly" or the wire codes; empty means Daily.
func ParsePeriod(s string) (Period, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "d", "daily":
		return Daily, true
	case "w", "weekly":
		return Weekly, true
	case "m", "monthly":
		return Monthly, true
	default:
		return Daily, false
	}
}
