package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/selbench/internal/inputgen"
)

func TestGenerateReverseSorted(t *testing.T) {
	cmd := NewGenerateCommand(testRootOptions("text", nil))
	out, _, err := execute(cmd, "--size", "6", "--distribution", "reverse-sorted")
	require.NoError(t, err)
	assert.Equal(t, "6 5 4 3 2 1\n", out)
}

func TestGenerateMatchesGenerator(t *testing.T) {
	cmd := NewGenerateCommand(testRootOptions("json", nil))
	out, _, err := execute(cmd, "-n", "40", "-d", "nearly sorted", "--seed", "11")
	require.NoError(t, err)

	var resp struct {
		Data generateView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	want, err := inputgen.New(11).Generate(40, inputgen.NearlySorted)
	require.NoError(t, err)
	assert.Equal(t, inputgen.NearlySorted, resp.Data.Distribution)
	assert.Equal(t, uint64(11), resp.Data.Seed)
	assert.Equal(t, want, resp.Data.Sequence)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown distribution", []string{"--distribution", "zigzag"}, "zigzag"},
		{"negative size", []string{"--size", "-1"}, "negative size"},
		{"positional args", []string{"5"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewGenerateCommand(testRootOptions("text", nil))
			_, _, err := execute(cmd, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
