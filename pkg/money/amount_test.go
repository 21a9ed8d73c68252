package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "100.50", "100.5"},
		{"grouped", "1,250,300.75", "1250300.75"},
		{"naira symbol", "₦1,250.00", "1250"},
		{"currency code prefix", "NGN 540.25", "540.25"},
		{"dollar", "$99.99", "99.99"},
		{"parenthesized negative", "(40.00)", "-40"},
		{"explicit negative", "-15.5", "-15.5"},
		{"integer", "42", "42"},
		{"empty", "", "0"},
		{"whitespace", "   ", "0"},
		{"garbage", "abc", "0"},
		{"mixed garbage", "12x.50", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			assert.True(t, got.Equal(want), "Parse(%q) = %s, want %s", tt.input, got, want)
		})
	}
}

func TestParseStrict(t *testing.T) {
	_, ok := ParseStrict("1,000.00")
	assert.True(t, ok)

	_, ok = ParseStrict("abc")
	assert.False(t, ok)

	_, ok = ParseStrict("")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1250", "1,250.00"},
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000000.5", "1,000,000.50"},
		{"-40", "-40.00"},
		{"-1234.56", "-1,234.56"},
		{"123456789.01", "123,456,789.01"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, Format(d))
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	d := Parse("1,234,567.89")
	assert.Equal(t, "1,234,567.89", Format(d))
}
