package helpers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{input: "99", expected: 99},
		{input: "  42\n", expected: 42},
		{input: "", expected: 0},
		{input: "   ", expected: 0},
		{input: "-3.5", expected: -3.5},
		{input: ".5", expected: 0.5},
		{input: "5.", expected: 5},
		{input: "1e3", expected: 1000},
		{input: "0x1F", expected: 31},
		{input: "0b101", expected: 5},
		{input: "0o17", expected: 15},
		{input: "Infinity", expected: math.Inf(1)},
		{input: "-Infinity", expected: math.Inf(-1)},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseNumber(tc.input))
		})
	}
}

func TestParseNumber_NaN(t *testing.T) {
	for _, input := range []string{"abc", "12abc", "0x", "0b102", "-0x10", "1_000", "inf", "1e", "--1"} {
		t.Run(input, func(t *testing.T) {
			assert.True(t, math.IsNaN(ParseNumber(input)), "expected NaN for %q", input)
		})
	}
}

func TestParseLeadingInt(t *testing.T) {
	testCases := []struct {
		input      string
		expected   int64
		expectedOK bool
	}{
		{input: "0", expected: 0, expectedOK: true},
		{input: "12", expected: 12, expectedOK: true},
		{input: "  7", expected: 7, expectedOK: true},
		{input: "3abc", expected: 3, expectedOK: true},
		{input: "1.9", expected: 1, expectedOK: true},
		{input: "-1", expected: -1, expectedOK: true},
		{input: "-0", expected: 0, expectedOK: true},
		{input: "+4", expected: 4, expectedOK: true},
		{input: "0x10", expected: 16, expectedOK: true},
		{input: "99999999999999999999999", expected: math.MaxInt64, expectedOK: true},
		{input: "", expectedOK: false},
		{input: "abc", expectedOK: false},
		{input: "-", expectedOK: false},
		{input: "0x", expectedOK: false},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			n, ok := ParseLeadingInt(tc.input)
			assert.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				assert.Equal(t, tc.expected, n)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{input: 45, expected: "45"},
		{input: 0.5, expected: "0.5"},
		{input: 15.2, expected: "15.2"},
		{input: -2, expected: "-2"},
		{input: 0, expected: "0"},
		{input: math.Copysign(0, -1), expected: "0"},
		{input: 1e20, expected: "100000000000000000000"},
		{input: 1e21, expected: "1e+21"},
		{input: 1.5e-7, expected: "1.5e-7"},
		{input: math.NaN(), expected: "NaN"},
		{input: math.Inf(1), expected: "Infinity"},
		{input: math.Inf(-1), expected: "-Infinity"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatNumber(tc.input))
		})
	}
}

func TestRequestID(t *testing.T) {
	const incoming = "5f0c6a7e-1c2b-4a3d-9e8f-0a1b2c3d4e5f"
	assert.Equal(t, incoming, RequestID(incoming))

	minted := RequestID("not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", minted)
	assert.Len(t, minted, 36)
	assert.NotEqual(t, RequestID(""), RequestID(""))
}
