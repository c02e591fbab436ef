package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain number", "1500", "1500"},
		{"thousands separator", "1,500", "1500"},
		{"baht sign", "฿2,000", "2000"},
		{"dollar sign", "$30", "30"},
		{"decimal fraction", "970.50", "970.5"},
		{"surrounding spaces", "  120 ", "120"},
		{"empty", "", "0"},
		{"whitespace only", "   ", "0"},
		{"garbage", "abc", "0"},
		{"negative", "-250", "-250"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := decimal.RequireFromString(tc.want)
			assert.True(t, want.Equal(ParseCurrency(tc.in)), "ParseCurrency(%q)", tc.in)
		})
	}
}
