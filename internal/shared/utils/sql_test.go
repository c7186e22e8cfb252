package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinWithAnd(t *testing.T) {
	assert.Equal(t, "a=1", JoinWithAnd([]string{"a=1"}))
	assert.Equal(t, "a=1 AND b=2 AND c=3", JoinWithAnd([]string{"a=1", "b=2", "c=3"}))
}

func TestJoinWithOr(t *testing.T) {
	assert.Equal(t, "a=1 OR b=2", JoinWithOr([]string{"a=1", "b=2"}))
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "twain", want: "twain"},
		{name: "percent escaped", input: "100% proof", want: `100\% proof`},
		{name: "underscore escaped", input: "snake_case", want: `snake\_case`},
		{name: "backslash escaped first", input: `back\slash`, want: `back\\slash`},
		{name: "mixed metacharacters", input: `a_b%c\d`, want: `a\_b\%c\\d`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLike(tt.input))
		})
	}
}
