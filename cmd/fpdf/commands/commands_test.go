package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(userErrorf(errors.New("bad flag"))))
	assert.Equal(t, 2, exitCode(errors.New("boom")))
}

func TestUserErrorf_NilIsNil(t *testing.T) {
	assert.Nil(t, userErrorf(nil))
}

func TestParsePageRange(t *testing.T) {
	start, end, ok := parsePageRange("1-3")
	assert.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	start, end, ok = parsePageRange("5")
	assert.True(t, ok)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	_, _, ok = parsePageRange("not-a-range")
	assert.False(t, ok)
}

func TestDebugDump_NoPanicWithoutBootstrap(t *testing.T) {
	assert.NotPanics(t, func() {
		debugDump("label", struct{ X int }{X: 1})
	})
}

func TestRowsToStrings(t *testing.T) {
	type row struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	rows := []row{{Name: "alpha", Count: 2}, {Name: "beta", Count: 5}}

	out := rowsToStrings(rows, []string{"name", "count"})
	assert.Equal(t, [][]string{{"alpha", "2"}, {"beta", "5"}}, out)
}
