package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole amount", input: "12", want: 1200},
		{name: "two decimal places", input: "12.50", want: 1250},
		{name: "one decimal place", input: "0.5", want: 50},
		{name: "zero", input: "0", want: 0},
		{name: "large amount", input: "99999.99", want: 9999999},
		{name: "three decimal places", input: "12.345", wantErr: true},
		{name: "negative", input: "-5.00", wantErr: true},
		{name: "not a number", input: "dinner", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.50", FormatAmount(1250))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "100.00", FormatAmount(10000))
}

func TestParseFormatRoundTrip(t *testing.T) {
	minor, err := ParseAmount("42.07")
	require.NoError(t, err)
	assert.Equal(t, "42.07", FormatAmount(minor))
}
