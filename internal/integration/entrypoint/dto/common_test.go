package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"amount": "150"}`, "150"},
		{"comma decimal", `{"amount": "150,50"}`, "150.5"},
		{"number", `{"amount": 99.5}`, "99.5"},
		{"null", `{"amount": null}`, "0"},
		{"garbage", `{"amount": "abc"}`, "0"},
		{"missing", `{}`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				Amount Amount `json:"amount"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(req.Amount.Decimal), "got %s", req.Amount)
		})
	}
}

func TestAmount_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Amount Amount `json:"amount"`
	}{NewAmount(decimal.RequireFromString("150.5"))})

	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": "150.50"}`, string(out))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("2024-06-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-06-10", FormatDate(*got))
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2024-06-12T15:30:00-03:00")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 6, 12, 18, 30, 0, 0, time.UTC).Equal(got))

	got, err = ParseTimestamp("2024-06-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), got)
}
