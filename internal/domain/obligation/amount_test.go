package obligation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"150", "150"},
		{"150.5", "150.5"},
		{"150,50", "150.5"},
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"R$ 90,00", "90"},
		{" 42 ", "42"},
		{"", "0"},
		{"abc", "0"},
		{"12x", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			got := ParseAmount(tt.in)
			assert.True(t, want.Equal(got), "got %s want %s", got, want)
		})
	}
}
