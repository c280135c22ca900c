package domain

import (
	"fmt"
	"strings"
	"time"
)

// DecodeKind selects the decoder and the receiver callback used for a field.
type DecodeKind int

const (
	KindString DecodeKind = iota + 1
	KindDouble
	KindInteger
)

func (k DecodeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDouble:
		return "double"
	case KindInteger:
		return "integer"
	default:
		return fmt.Sprintf("DecodeKind(%d)", int(k))
	}
}

// Field is a quantity obtainable from the quote service.
type Field int

const (
	FieldAsk Field = iota
	FieldBid
	FieldAskRt
	FieldBidRt
	FieldPreviousClose
	FieldOpen
	FieldDividendYield
	FieldDividendPerShare
	FieldDividendPayDate
	FieldExDividendDate
	FieldChange
	FieldChangePercent
	FieldChangeRt
	FieldChangePercentRt
	FieldChangeInPercent
	FieldLastTradeDate
	FieldTradeDate
	FieldLastTradeTime
	FieldAfterHoursChangeRt
	FieldCommission
	FieldDaysLow
	FieldDaysHigh
	FieldLastTradeWithTimeRt
	FieldLastTradeWithTime
	FieldLastTradePrice
	FieldTargetPrice1Y
	FieldChange200DayMa
	FieldChangePercent200DayMa
	FieldChange50DayMa
	FieldChangePercent50DayMa
	FieldMa50Day
	FieldMa200Day
	FieldDaysValueChange
	FieldDaysValueChangeRt
	FieldPricePaid
	FieldDaysRange
	FieldDaysRangeRt
	FieldHoldingsGainPercent
	FieldAnnualizedGain
	FieldHoldingsGain
	FieldHoldingsGainPercentRt
	FieldHoldingsGainRt
	FieldWeek52High
	FieldWeek52Low
	FieldChangeWeek52Low
	FieldChangeWeek52High
	FieldChangePercentWeek52Low
	FieldChangePercentWeek52High
	FieldWeek52Range
	FieldSymbolInfo
	FieldMarketCapitalization
	FieldMarketCapRt
	FieldFloatShares
	FieldCurrency
	FieldName
	FieldNotes
	FieldSymbol
	FieldSharesOwned
	FieldStockExchange
	FieldSharesOutstanding
	FieldVolume
	FieldAskSize
	FieldBidSize
	FieldLastTradeSize
	FieldAverageDailyVolume
	FieldTickerTrend
	FieldTradeLinks
	FieldOrderBookRt
	FieldHighLimit
	FieldLowLimit
	FieldHoldingsValue
	FieldHoldingsValueRt
	FieldRevenue
	FieldEarningsPerShare
	FieldEpsEstimateCurrentYear
	FieldEpsEstimateNextYear
	FieldEpsEstimateNextQuarter
	FieldBookValue
	FieldEbitda
	FieldPriceSales
	FieldPriceBook
	FieldPeRatio
	FieldPeRatioRt
	FieldPegRatio
	FieldPriceEpsEstimateCurrentYear
	FieldPriceEpsEstimateNextYear
	FieldShortRatio

	fieldCount
)

type fieldInfo struct {
	name string
	code string
	kind DecodeKind
}

// fields is the authoritative field table. Wire codes are not unique
// ("v" is both symbol_info and volume), so fields are keyed by identity.
var fields = [fieldCount]fieldInfo{
	FieldAsk:                         {"ask", "a", KindDouble},
	FieldBid:                         {"bid", "b", KindDouble},
	FieldAskRt:                       {"ask_rt", "b2", KindDouble},
	FieldBidRt:                       {"bid_rt", "b3", KindDouble},
	FieldPreviousClose:               {"previous_close", "p", KindDouble},
	FieldOpen:                        {"open", "o", KindDouble},
	FieldDividendYield:               {"dividend_yield", "y", KindDouble},
	FieldDividendPerShare:            {"dividend_per_share", "d", KindDouble},
	FieldDividendPayDate:             {"dividend_pay_date", "r1", KindString},
	FieldExDividendDate:              {"ex_dividend_date", "q", KindString},
	FieldChange:                      {"change", "c1", KindDouble},
	FieldChangePercent:               {"change_percent", "c", KindString},
	FieldChangeRt:                    {"change_rt", "c6", KindDouble},
	FieldChangePercentRt:             {"change_percent_rt", "k2", KindString},
	FieldChangeInPercent:             {"change_in_percent", "p2", KindString},
	FieldLastTradeDate:               {"last_trade_date", "d1", KindString},
	FieldTradeDate:                   {"trade_date", "d2", KindString},
	FieldLastTradeTime:               {"last_trade_time", "t1", KindString},
	FieldAfterHoursChangeRt:          {"after_hours_change_rt", "c8", KindString},
	FieldCommission:                  {"commission", "c3", KindString},
	FieldDaysLow:                     {"days_low", "g", KindDouble},
	FieldDaysHigh:                    {"days_high", "h", KindDouble},
	FieldLastTradeWithTimeRt:         {"last_trade_with_time_rt", "k1", KindString},
	FieldLastTradeWithTime:           {"last_trade_with_time", "l", KindString},
	FieldLastTradePrice:              {"last_trade_price", "l1", KindDouble},
	FieldTargetPrice1Y:               {"target_price_1y", "t8", KindDouble},
	FieldChange200DayMa:              {"change_200_day_ma", "m5", KindDouble},
	FieldChangePercent200DayMa:       {"change_percent_200_day_ma", "m6", KindString},
	FieldChange50DayMa:               {"change_50_day_ma", "m7", KindDouble},
	FieldChangePercent50DayMa:        {"change_percent_50_day_ma", "m8", KindString},
	FieldMa50Day:                     {"ma_50_day", "m3", KindDouble},
	FieldMa200Day:                    {"ma_200_day", "m4", KindDouble},
	FieldDaysValueChange:             {"days_value_change", "w1", KindDouble},
	FieldDaysValueChangeRt:           {"days_value_change_rt", "w4", KindDouble},
	FieldPricePaid:                   {"price_paid", "p1", KindDouble},
	FieldDaysRange:                   {"days_range", "m", KindString},
	FieldDaysRangeRt:                 {"days_range_rt", "m2", KindString},
	FieldHoldingsGainPercent:         {"holdings_gain_percent", "g1", KindString},
	FieldAnnualizedGain:              {"annualized_gain", "g3", KindString},
	FieldHoldingsGain:                {"holdings_gain", "g4", KindString},
	FieldHoldingsGainPercentRt:       {"holdings_gain_percent_rt", "g5", KindString},
	FieldHoldingsGainRt:              {"holdings_gain_rt", "g6", KindString},
	FieldWeek52High:                  {"week_52_high", "k", KindDouble},
	FieldWeek52Low:                   {"week_52_low", "j", KindDouble},
	FieldChangeWeek52Low:             {"change_week_52_low", "j5", KindDouble},
	FieldChangeWeek52High:            {"change_week_52_high", "k4", KindDouble},
	FieldChangePercentWeek52Low:      {"change_percent_week_52_low", "j6", KindString},
	FieldChangePercentWeek52High:     {"change_percent_week_52_high", "k5", KindString},
	FieldWeek52Range:                 {"week_52_range", "w", KindString},
	FieldSymbolInfo:                  {"symbol_info", "v", KindString},
	FieldMarketCapitalization:        {"market_capitalization", "j1", KindString},
	FieldMarketCapRt:                 {"market_cap_rt", "j3", KindString},
	FieldFloatShares:                 {"float_shares", "f6", KindInteger},
	FieldCurrency:                    {"currency", "c4", KindString},
	FieldName:                        {"name", "n", KindString},
	FieldNotes:                       {"notes", "n4", KindString},
	FieldSymbol:                      {"symbol", "s", KindString},
	FieldSharesOwned:                 {"shares_owned", "s1", KindString},
	FieldStockExchange:               {"stock_exchange", "x", KindString},
	FieldSharesOutstanding:           {"shares_outstanding", "j2", KindInteger},
	FieldVolume:                      {"volume", "v", KindInteger},
	FieldAskSize:                     {"ask_size", "a5", KindInteger},
	FieldBidSize:                     {"bid_size", "b6", KindInteger},
	FieldLastTradeSize:               {"last_trade_size", "k3", KindInteger},
	FieldAverageDailyVolume:          {"average_daily_volume", "a2", KindInteger},
	FieldTickerTrend:                 {"ticker_trend", "t7", KindString},
	FieldTradeLinks:                  {"trade_links", "t6", KindString},
	FieldOrderBookRt:                 {"order_book_rt", "i5", KindString},
	FieldHighLimit:                   {"high_limit", "l2", KindInteger},
	FieldLowLimit:                    {"low_limit", "l3", KindInteger},
	FieldHoldingsValue:               {"holdings_value", "v1", KindString},
	FieldHoldingsValueRt:             {"holdings_value_rt", "v7", KindString},
	FieldRevenue:                     {"revenue", "s6", KindString},
	FieldEarningsPerShare:            {"earnings_per_share", "e", KindDouble},
	FieldEpsEstimateCurrentYear:      {"eps_estimate_current_year", "e7", KindDouble},
	FieldEpsEstimateNextYear:         {"eps_estimate_next_year", "e8", KindDouble},
	FieldEpsEstimateNextQuarter:      {"eps_estimate_next_quarter", "e9", KindDouble},
	FieldBookValue:                   {"book_value", "b4", KindDouble},
	FieldEbitda:                      {"ebitda", "j4", KindString},
	FieldPriceSales:                  {"price_sales", "p5", KindDouble},
	FieldPriceBook:                   {"price_book", "p6", KindDouble},
	FieldPeRatio:                     {"pe_ratio", "r", KindDouble},
	FieldPeRatioRt:                   {"pe_ratio_rt", "r2", KindDouble},
	FieldPegRatio:                    {"peg_ratio", "r5", KindDouble},
	FieldPriceEpsEstimateCurrentYear: {"price_eps_estimate_current_year", "r6", KindDouble},
	FieldPriceEpsEstimateNextYear:    {"price_eps_estimate_next_year", "r7", KindDouble},
	FieldShortRatio:                  {"short_ratio", "s7", KindDouble},
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		m[fields[f].name] = f
	}
	return m
}()

// info panics for values outside the table: requesting an unmapped field is
// a programming error, not a runtime condition.
func (f Field) info() fieldInfo {
	if f < 0 || f >= fieldCount || fields[f].code == "" {
		panic(fmt.Sprintf("domain: unmapped field %d", int(f)))
	}
	return fields[f]
}

// Code is the token sent in the "f=" parameter.
func (f Field) Code() string { return f.info().code }

func (f Field) Kind() DecodeKind { return f.info().kind }

func (f Field) String() string { return f.info().name }

func (f Field) IsValid() bool {
	return f >= 0 && f < fieldCount && fields[f].code != ""
}

func (f Field) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("unmapped field %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	parsed, ok := FieldByName(string(text))
	if !ok {
		return fmt.Errorf("unknown field %q", string(text))
	}
	*f = parsed
	return nil
}

// FieldByName resolves a snake_case field name such as "last_trade_price".
func FieldByName(name string) (Field, bool) {
	f, ok := fieldsByName[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// AllFields lists every field in table order.
func AllFields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// JoinCodes concatenates wire codes for a multi-field "f=" parameter.
func JoinCodes(fs ...Field) string {
	var b strings.Builder
	for _, f := range fs {
		b.WriteString(f.Code())
	}
	return b.String()
}

// FieldRequest pairs a field with its refresh period. Zero means fetch once.
type FieldRequest struct {
	Field Field
	Delay time.Duration
}
