package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"plain float", 4.5, ptr(4.5)},
		{"numeric string", "19.99", ptr(19.99)},
		{"thousands separators", "1,234.56", ptr(1234.56)},
		{"separator only", "4,500", ptr(4500.0)},
		{"integer string", "42", ptr(42.0)},
		{"garbage", "not a number", nil},
		{"empty string", "", nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestInteger(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *int64
	}{
		{"nil", nil, nil},
		{"json number truncates", 4.7, ptr(int64(4))},
		{"integer string", "42", ptr(int64(42))},
		{"negative string", "-7", ptr(int64(-7))},
		{"garbage", "many", nil},
		{"float string", "4.0", nil},
		// integers keep their separators and fail, unlike Number
		{"thousands separators", "4,500", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Integer(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *string
	}{
		{"nil", nil, nil},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"iso date", "2023-05-10", ptr("2023-05-10")},
		{"long form", "March 3, 2023", ptr("2023-03-03")},
		{"review phrasing", "Reviewed in India on March 3, 2023", ptr("2023-03-03")},
		{"slash format", "03/04/2022", ptr("2022-03-04")},
		{"unparseable falls back to input", "not a date at all", ptr("not a date at all")},
		{"unparseable after on", "Posted on someday soon", ptr("someday soon")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Date(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestDate_DependsOnlyOnRemainderAfterOn(t *testing.T) {
	a := Date("Reviewed in India on March 3, 2023")
	b := Date("Bought in Germany on March 3, 2023")

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, *a, *b)
	assert.Equal(t, "2023-03-03", *a)
}

func ptr[T any](v T) *T {
	return &v
}
