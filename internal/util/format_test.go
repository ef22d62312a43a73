package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{"zero", 0, "0"},
		{"small number", 42, "42"},
		{"hundreds", 999, "999"},
		{"exactly 1000", 1000, "1,000"},
		{"millions", 1234567, "1,234,567"},
		{"negative", -98765, "-98,765"},
		{"small negative", -7, "-7"},
		{"negative thousand", -1000, "-1,000"},
		{"max int64", math.MaxInt64, "9,223,372,036,854,775,807"},
		{"min int64", math.MinInt64, "-9,223,372,036,854,775,808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0.01, "0.01 USD"},
		{123.45, "123.45 USD"},
		{999.99, "999.99 USD"},
		{1234.56, "1,234.56 USD"},
		{9999.99, "9,999.99 USD"},
		{1234567.891, "1,234,567.89 USD"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUSD(tt.input))
		})
	}
}
