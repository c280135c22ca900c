package domain

import "time"

// IntradayBar is one minute-level row of the intraday series.
// Timestamp is epoch seconds as reported by the chart service.
type IntradayBar struct {
	Timestamp int64   `json:"timestamp"`
	Close     float64 `json:"close"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Open      float64 `json:"open"`
	Volume    int64   `json:"volume"`
}

// HistoricalBar is one row of a daily, weekly or monthly price table.
type HistoricalBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	AdjClose float64   `json:"adj_close"`
}

// ForexTick is a currency pair rate sample. Timestamp is UTC epoch milliseconds.
type ForexTick struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// Receiver is the set of callbacks a session delivers decoded values to.
// Callbacks may be invoked concurrently from pool workers.
type Receiver interface {
	OnString(id RequestID, field Field, value string)
	OnDouble(id RequestID, field Field, value float64)
	OnSize(id RequestID, field Field, value int64)
	OnIntraday(id RequestID, bar IntradayBar)
	OnHistorical(id RequestID, bar HistoricalBar)
	OnCustom(id RequestID, lines []string)
	OnForex(id RequestID, tick ForexTick)
}

// ReceiverFuncs adapts plain functions to Receiver. Nil funcs drop the value.
type ReceiverFuncs struct {
	String     func(id RequestID, field Field, value string)
	Double     func(id RequestID, field Field, value float64)
	Size       func(id RequestID, field Field, value int64)
	Intraday   func(id RequestID, bar IntradayBar)
	Historical func(id RequestID, bar HistoricalBar)
	Custom     func(id RequestID, lines []string)
	Forex      func(id RequestID, tick ForexTick)
}

func (r ReceiverFuncs) OnString(id RequestID, field Field, value string) {
	if r.String != nil {
		r.String(id, field, value)
	}
}

func (r ReceiverFuncs) OnDouble(id RequestID, field Field, value float64) {
	if r.Double != nil {
		r.Double(id, field, value)
	}
}

func (r ReceiverFuncs) OnSize(id RequestID, field Field, value int64) {
	if r.Size != nil {
		r.Size(id, field, value)
	}
}

func (r ReceiverFuncs) OnIntraday(id RequestID, bar IntradayBar) {
	if r.Intraday != nil {
		r.Intraday(id, bar)
	}
}

func (r ReceiverFuncs) OnHistorical(id RequestID, bar HistoricalBar) {
	if r.Historical != nil {
		r.Historical(id, bar)
	}
}

func (r ReceiverFuncs) OnCustom(id RequestID, lines []string) {
	if r.Custom != nil {
		r.Custom(id, lines)
	}
}

func (r ReceiverFuncs) OnForex(id RequestID, tick ForexTick) {
	if r.Forex != nil {
		r.Forex(id, tick)
	}
}

var _ Receiver = ReceiverFuncs{}
