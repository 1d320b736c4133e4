package decompose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsviewer/internal/activity/models"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Action
	}{
		{
			name:     "empty string",
			input:    "",
			expected: models.Action{},
		},
		{
			name:  "actor and details",
			input: "Jane Doe, updated the syllabus",
			expected: models.Action{
				Actor:      "Jane Doe",
				ActionType: "updated",
				Details:    "updated the syllabus",
			},
		},
		{
			name:  "details keep action type prefix",
			input: "Fawzy, changed status active",
			expected: models.Action{
				Actor:      "Fawzy",
				ActionType: "changed",
				Details:    "changed status active",
			},
		},
		{
			name:     "no comma yields actor only",
			input:    "  system import  ",
			expected: models.Action{Actor: "system import"},
		},
		{
			name:  "only first comma splits",
			input: "Aya, added lessons 1, 2, and 3",
			expected: models.Action{
				Actor:      "Aya",
				ActionType: "added",
				Details:    "added lessons 1, 2, and 3",
			},
		},
		{
			name:     "trailing comma",
			input:    "Aml,",
			expected: models.Action{Actor: "Aml"},
		},
		{
			name:     "whitespace after comma",
			input:    "Aml,    ",
			expected: models.Action{Actor: "Aml"},
		},
		{
			name:  "leading comma",
			input: ", deleted course",
			expected: models.Action{
				ActionType: "deleted",
				Details:    "deleted course",
			},
		},
		{
			name:  "tab separated type token",
			input: "Lina, enrolled\tstudent 42",
			expected: models.Action{
				Actor:      "Lina",
				ActionType: "enrolled",
				Details:    "enrolled\tstudent 42",
			},
		},
		{
			name:  "single word details",
			input: "Sohir, logged_in",
			expected: models.Action{
				Actor:      "Sohir",
				ActionType: "logged_in",
				Details:    "logged_in",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decompose(tt.input))
		})
	}
}

func TestDecomposeDetailsBeginWithActionType(t *testing.T) {
	inputs := []string{
		"Jane Doe, updated the syllabus",
		"a,b",
		"x, y z",
		"no comma here",
		"",
	}
	for _, in := range inputs {
		got := Decompose(in)
		assert.True(t, len(got.Details) >= len(got.ActionType))
		assert.Equal(t, got.ActionType, got.Details[:len(got.ActionType)], "input %q", in)
	}
}

func TestCache(t *testing.T) {
	t.Run("rejects non-positive size", func(t *testing.T) {
		_, err := NewCache(0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("returns same result as Decompose", func(t *testing.T) {
		cache, err := NewCache(8)
		require.NoError(t, err)

		raw := "Jane Doe, updated the syllabus"
		assert.Equal(t, Decompose(raw), cache.Decompose(raw))
		assert.Equal(t, Decompose(raw), cache.Decompose(raw))
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("evicts beyond capacity", func(t *testing.T) {
		cache, err := NewCache(2)
		require.NoError(t, err)

		cache.Decompose("a, one")
		cache.Decompose("b, two")
		cache.Decompose("c, three")
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("satisfies Func", func(t *testing.T) {
		cache, err := NewCache(1)
		require.NoError(t, err)
		var fn Func = cache.Decompose
		assert.Equal(t, "x", fn("x, y").Actor)
	})
}
