package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObligation_SettledVersusSuperseded(t *testing.T) {
	paidAt := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	outstanding := &Obligation{Active: true}
	paid := &Obligation{Active: false, PaidAt: &paidAt}
	replaced := &Obligation{Active: false}

	assert.False(t, outstanding.IsSettled())
	assert.False(t, outstanding.IsSuperseded())
	assert.True(t, paid.IsSettled())
	assert.False(t, paid.IsSuperseded())
	assert.False(t, replaced.IsSettled())
	assert.True(t, replaced.IsSuperseded())
}
