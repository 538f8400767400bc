package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"OP1", "OP1", true},
		{"OP1", "OP10", false},
		{"*", "ANYTHING", true},
		{"OP*", "OP1", true},
		{"OP*", "GI1", false},
		{"*1", "OP1", true},
		{"*1", "OP12", false},
		{"OP?", "OP1", true},
		{"OP?", "OP", false},
		{"OP?", "OP12", false},
		{"?P*", "OP12", true},
		{"**2", "OP12", true},
		{"A*B*C", "AXXBYYC", true},
		{"A*B*C", "AXXCYYB", false},
		{"", "", true},
		{"", "OP1", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchPattern(tc.pattern, tc.name),
			"pattern %q against %q", tc.pattern, tc.name)
	}
}

func TestMatchNames_PreservesInsertionOrder(t *testing.T) {
	names := []string{"OP3", "GI1", "OP1", "OP2"}
	assert.Equal(t, []string{"OP3", "OP1", "OP2"}, matchNames("OP*", names))
	assert.Equal(t, []string{"GI1"}, matchNames("GI1", names))
	assert.Nil(t, matchNames("WI*", names))
}
