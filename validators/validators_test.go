package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	type input struct {
		min   float64
		max   float64
		value any
	}

	type expected struct {
		value  any
		errMsg string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "accepts value inside bounds",
			input:    input{min: 18, max: 120, value: 42},
			expected: expected{value: float64(42)},
		},
		{
			name:     "bounds are inclusive at min",
			input:    input{min: 18, max: 120, value: 18},
			expected: expected{value: float64(18)},
		},
		{
			name:     "bounds are inclusive at max",
			input:    input{min: 18, max: 120, value: 120},
			expected: expected{value: float64(120)},
		},
		{
			name:     "parses numeric strings",
			input:    input{min: 0, max: 100, value: "37"},
			expected: expected{value: float64(37)},
		},
		{
			name:     "trims whitespace before parsing",
			input:    input{min: 0, max: 100, value: "  37 "},
			expected: expected{value: float64(37)},
		},
		{
			name:     "rejects value below min",
			input:    input{min: 18, max: 120, value: 17},
			expected: expected{errMsg: "value must be at least 18"},
		},
		{
			name:     "rejects value above max",
			input:    input{min: 18, max: 120, value: 121},
			expected: expected{errMsg: "value must be at most 120"},
		},
		{
			name:     "rejects non-numeric string",
			input:    input{min: 0, max: 10, value: "abc"},
			expected: expected{errMsg: "is not a number"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			validate := Range(tc.input.min, tc.input.max)

			value, err := validate(tc.input.value)

			if tc.expected.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expected.errMsg)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.value, value)
		})
	}
}

func TestLength(t *testing.T) {
	type input struct {
		min   int
		max   int
		value any
	}

	type expected struct {
		value  any
		errMsg string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "accepts string inside bounds and trims",
			input:    input{min: 2, max: 10, value: "  John  "},
			expected: expected{value: "John"},
		},
		{
			name:     "rejects too-short string",
			input:    input{min: 2, max: 10, value: "J"},
			expected: expected{errMsg: "at least 2 characters in length"},
		},
		{
			name:     "length is measured after trimming",
			input:    input{min: 2, max: 10, value: " J "},
			expected: expected{errMsg: "at least 2 characters in length"},
		},
		{
			name:     "rejects too-long string",
			input:    input{min: 0, max: 3, value: "John"},
			expected: expected{errMsg: "at most 3 characters in length"},
		},
		{
			name:     "zero max means unbounded",
			input:    input{min: 1, max: 0, value: "a very long value indeed"},
			expected: expected{value: "a very long value indeed"},
		},
		{
			name:     "rejects non-string",
			input:    input{min: 1, max: 10, value: 42},
			expected: expected{errMsg: "must be a string"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			validate := Length(tc.input.min, tc.input.max)

			value, err := validate(tc.input.value)

			if tc.expected.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expected.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.value, value)
		})
	}
}

func TestRegexp(t *testing.T) {
	validate := Regexp(`[A-Z]{2}[0-9]{4}`, "booking reference must look like AB1234")

	t.Run("accepts full match after trimming", func(t *testing.T) {
		value, err := validate(" AB1234 ")
		require.NoError(t, err)
		assert.Equal(t, "AB1234", value)
	})

	t.Run("rejects partial match", func(t *testing.T) {
		_, err := validate("xAB1234x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "booking reference must look like AB1234")
	})

	t.Run("rejects non-string", func(t *testing.T) {
		_, err := validate(1234)
		require.Error(t, err)
	})

	t.Run("default message names the pattern", func(t *testing.T) {
		_, err := Regexp(`[0-9]+`, "")("abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[0-9]+")
	})
}

func TestChoice(t *testing.T) {
	validate := Choice("basic", "pro", "enterprise")

	t.Run("accepts exact choice", func(t *testing.T) {
		value, err := validate("pro")
		require.NoError(t, err)
		assert.Equal(t, "pro", value)
	})

	t.Run("trims string input", func(t *testing.T) {
		value, err := validate("  pro ")
		require.NoError(t, err)
		assert.Equal(t, "pro", value)
	})

	t.Run("comparison is exact", func(t *testing.T) {
		_, err := validate("Pro")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "basic, pro, enterprise")
	})

	t.Run("supports non-string choices", func(t *testing.T) {
		value, err := Choice(1, 2, 3)(2)
		require.NoError(t, err)
		assert.Equal(t, 2, value)
	})
}

func TestEmail(t *testing.T) {
	validate := Email()

	type testCase struct {
		name   string
		value  any
		want   any
		errMsg string
	}

	tests := []testCase{
		{name: "accepts plain address", value: "john@company.com", want: "john@company.com"},
		{name: "trims whitespace", value: "  john@company.com ", want: "john@company.com"},
		{name: "accepts plus addressing", value: "john+tag@company.co.uk", want: "john+tag@company.co.uk"},
		{name: "rejects missing at sign", value: "john.company.com", errMsg: "invalid email format"},
		{name: "rejects missing tld", value: "john@company", errMsg: "invalid email format"},
		{name: "rejects non-string", value: 42, errMsg: "email must be a string"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, err := validate(tc.value)

			if tc.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, value)
		})
	}
}
