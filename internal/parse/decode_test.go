package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsParsable(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"34.3", true},
		{"GOOG", true},
		{`"x"`, true},
		{"N/A", false},
		{"", false},
		{`""`, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsParsable(tt.value), "value %q", tt.value)
	}
}

func TestTrimHelpers(t *testing.T) {
	assert.Equal(t, "34.3", TrimQuotes(`"34.3"`))
	assert.Equal(t, `a"b`, TrimQuotes(`"a"b"`))
	assert.Equal(t, "3.32", TrimPercent("3.32%"))
	assert.Equal(t, "23.3", TrimBold("<b>23.3</b>"))
	assert.Equal(t, []string{"345.34", "231.32"}, Split("345.34 - 231.32"))
	assert.Equal(t, []string{"345.34", "231.32"}, Split(`"345.34 - 231.32"`))
}

func TestEveryDecoderRejectsEmptyValues(t *testing.T) {
	decoders := map[string]func(string) error{
		"String":         func(v string) error { _, err := String(v); return err },
		"Date":           func(v string) error { _, err := Date(v); return err },
		"Time":           func(v string) error { _, err := Time(v); return err },
		"ChangePercent":  func(v string) error { _, err := ChangePercent(v); return err },
		"TradeWithTime":  func(v string) error { _, _, err := TradeWithTime(v); return err },
		"PriceRange":     func(v string) error { _, err := PriceRange(v); return err },
		"BigNumber":      func(v string) error { _, err := BigNumber(v); return err },
		"PercentToFloat": func(v string) error { _, err := PercentToFloat(v); return err },
		"Double":         func(v string) error { _, err := Double(v); return err },
		"Integer":        func(v string) error { _, err := Integer(v); return err },
	}

	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			for _, v := range []string{"", "N/A", `""`} {
				err := decode(v)
				assert.ErrorIs(t, err, ErrEmptyValue, "value %q", v)
				assert.NotErrorIs(t, err, ErrFormat, "value %q", v)
			}
		})
	}
}

func TestDate(t *testing.T) {
	expected := time.Date(2015, 5, 25, 0, 0, 0, 0, time.UTC)

	for _, v := range []string{"5/25/2015", `"5/25/2015"`, "05/25/2015"} {
		d, err := Date(v)
		require.NoError(t, err, v)
		assert.True(t, expected.Equal(d), "value %q decoded to %v", v, d)
	}

	for _, v := range []string{"asdas", "2015-05-25", "13/25/2015", "5/25/15"} {
		_, err := Date(v)
		assert.ErrorIs(t, err, ErrFormat, v)
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		value    string
		expected TimeOfDay
	}{
		{"3:53pm", TimeOfDay{15, 53}},
		{"3:53am", TimeOfDay{3, 53}},
		{`"3:53pm"`, TimeOfDay{15, 53}},
		{`"3:53am"`, TimeOfDay{3, 53}},
		{"4:00PM", TimeOfDay{16, 0}},
		{"12:05am", TimeOfDay{0, 5}},
		{"12:05pm", TimeOfDay{12, 5}},
	}

	for _, tt := range tests {
		got, err := Time(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expected, got, tt.value)
	}

	for _, v := range []string{"15:53", "3:53", `"13:35pm"`, `"3:35"`, "3:5pm", "noon"} {
		_, err := Time(v)
		assert.ErrorIs(t, err, ErrFormat, v)
	}

	assert.Equal(t, "09:07", TimeOfDay{9, 7}.String())
}

func TestDateTimeAndTimestamp(t *testing.T) {
	tests := []struct {
		date     string
		clock    string
		expected time.Time
	}{
		{"5/25/2015", "3:35pm", time.Date(2015, 5, 25, 15, 35, 0, 0, time.UTC)},
		{"5/25/2015", "3:35am", time.Date(2015, 5, 25, 3, 35, 0, 0, time.UTC)},
		{`"5/25/2015"`, `"3:35pm"`, time.Date(2015, 5, 25, 15, 35, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		dt, err := DateTime(tt.date, tt.clock)
		require.NoError(t, err)
		assert.True(t, tt.expected.Equal(dt))
		assert.Equal(t, time.UTC, dt.Location())

		ts, err := Timestamp(tt.date, tt.clock)
		require.NoError(t, err)
		assert.Equal(t, tt.expected.UnixMilli(), ts)
	}

	_, err := DateTime(`"5/25/2015"`, `"13:35pm"`)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Timestamp("N/A", "3:35pm")
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestChangePercent(t *testing.T) {
	tests := []struct {
		value    string
		expected Pair
	}{
		{`"-13.65 - -2.12%"`, Pair{-13.65, -2.12}},
		{`"13.65 - -2.12%"`, Pair{13.65, -2.12}},
		{`"13.65 - 2.12%"`, Pair{13.65, 2.12}},
		{"13.65 - 2.12%", Pair{13.65, 2.12}},
		{"-13.65 - -2.12%", Pair{-13.65, -2.12}},
		{"0 - 0%", Pair{0, 0}},
	}

	for _, tt := range tests {
		got, err := ChangePercent(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expected, got, tt.value)
	}

	for _, v := range []string{`"13.65 - 2.12"`, "13.65 -2.12%", "13.65 - 2.12% - 1", "+13.65 - 2.12%", "a - 2.12%"} {
		_, err := ChangePercent(v)
		assert.ErrorIs(t, err, ErrFormat, v)
	}
}

func TestTradeWithTime(t *testing.T) {
	tests := []struct {
		value         string
		expectedTime  TimeOfDay
		expectedPrice float64
	}{
		{`"4:00pm - <b>629.25</b>"`, TimeOfDay{16, 0}, 629.25},
		{`"4:00am - <b>629.25</b>"`, TimeOfDay{4, 0}, 629.25},
		{"4:00am - <b>629.25</b>", TimeOfDay{4, 0}, 629.25},
	}

	for _, tt := range tests {
		tm, price, err := TradeWithTime(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expectedTime, tm)
		assert.Equal(t, tt.expectedPrice, price)
	}

	t.Run("Quoting is idempotent", func(t *testing.T) {
		raw := "11:15am - <b>12.5</b>"
		t1, p1, err1 := TradeWithTime(raw)
		t2, p2, err2 := TradeWithTime(`"` + raw + `"`)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, t1, t2)
		assert.Equal(t, p1, p2)
	})

	for _, v := range []string{`"4:00pm - <b>629.25"`, "4:00pm - 629.25", "16:00 - <b>629.25</b>", "4:00pm<b>629.25</b>"} {
		_, _, err := TradeWithTime(v)
		assert.ErrorIs(t, err, ErrFormat, v)
	}
}

func TestPriceRange(t *testing.T) {
	tests := []struct {
		value    string
		expected Pair
	}{
		{"627.02 - 640.00", Pair{627.02, 640.00}},
		{`"627.02 - 640.00"`, Pair{627.02, 640.00}},
		{`"-627.02 - -640.00"`, Pair{-627.02, -640.00}},
		{"-627.02 - -640.00", Pair{-627.02, -640.00}},
		{"640.00 - 627.02", Pair{640.00, 627.02}},
	}

	for _, tt := range tests {
		got, err := PriceRange(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expected, got, tt.value)
	}

	for _, v := range []string{"a-627.02 - -640.00d", "627.02", "627.02 - 640.00%"} {
		_, err := PriceRange(v)
		assert.ErrorIs(t, err, ErrFormat, v)
	}
}

func TestBigNumber(t *testing.T) {
	tests := []struct {
		value    string
		expected int64
	}{
		{"345", 345},
		{"23123", 23123},
		{"1.2M", 1_200_000},
		{"1.34B", 1_340_000_000},
		{"1.15M", 1_150_000},
		{"367.5B", 367_500_000_000},
		{"-2.5M", -2_500_000},
		{`"12M"`, 12_000_000},
	}

	for _, tt := range tests {
		got, err := BigNumber(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expected, got, tt.value)
	}

	for _, v := range []string{"1.2G", "1.2m", "1.2", "M", "12MB", "99999999999999999999"} {
		_, err := BigNumber(v)
		assert.ErrorIs(t, err, ErrFormat, v)
	}
}

func TestPercentToFloat(t *testing.T) {
	got, err := PercentToFloat("3.45%")
	require.NoError(t, err)
	assert.Equal(t, 3.45, got)

	got, err = PercentToFloat(`"-0.5%"`)
	require.NoError(t, err)
	assert.Equal(t, -0.5, got)

	_, err = PercentToFloat("abc%")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestDoubleAndInteger(t *testing.T) {
	d, err := Double("629.25")
	require.NoError(t, err)
	assert.Equal(t, 629.25, d)

	d, err = Double(`"12.5"`)
	require.NoError(t, err)
	assert.Equal(t, 12.5, d)

	for _, v := range []string{"abc", "NaN", "Inf"} {
		_, err = Double(v)
		assert.ErrorIs(t, err, ErrFormat, v)
	}

	n, err := Integer("1.5M")
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), n)

	s, err := String(`"Alphabet Inc."`)
	require.NoError(t, err)
	assert.Equal(t, "Alphabet Inc.", s)
}
