package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeForHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  BadgeLevel
	}{
		{0, BadgeBronze},
		{10.5, BadgeBronze},
		{49.99, BadgeBronze},
		{50, BadgeSilver},
		{55, BadgeSilver},
		{199.99, BadgeSilver},
		{200, BadgeGold},
		{245, BadgeGold},
		{1000, BadgeGold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeForHours(tt.hours), "hours=%v", tt.hours)
	}
}
