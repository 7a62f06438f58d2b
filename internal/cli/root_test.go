package cli

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/selbench/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "selbench", cmd.Use)
	assert.Contains(t, cmd.Long, "order-statistic selection")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"sort", "select", "generate", "bench", "report", "runs"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestSelectCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	selectCmd, _, err := cmd.Find([]string{"select"})
	require.NoError(t, err)

	kFlag := selectCmd.Flags().Lookup("k")
	require.NotNil(t, kFlag)
	assert.Equal(t, "k", kFlag.Shorthand)
	assert.Equal(t, "0", kFlag.DefValue)

	algFlag := selectCmd.Flags().Lookup("algorithm")
	require.NotNil(t, algFlag)
	assert.Equal(t, "selectlinear", algFlag.DefValue)
}

func TestBenchCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	benchCmd, _, err := cmd.Find([]string{"bench"})
	require.NoError(t, err)

	for _, name := range []string{"config", "db", "csv", "metrics-file", "fail-fast", "sizes",
		"distributions", "repeats", "rank", "seed", "category", "name", "verify", "progress"} {
		assert.NotNil(t, benchCmd.Flags().Lookup(name), "bench should have --%s", name)
	}
}

func TestReportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	reportCmd, _, err := cmd.Find([]string{"report"})
	require.NoError(t, err)

	dbFlag := reportCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is required, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)

	require.NotNil(t, reportCmd.Flags().Lookup("run"))
	require.NotNil(t, reportCmd.Flags().Lookup("csv"))
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "sort", "3", "1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootCommand_RunsSubcommand(t *testing.T) {
	opts := &RootOptions{Clock: testutil.NewStepClock(time.Millisecond)}
	cmd := newRootCommand(opts)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--format", "json", "select", "-a", "quickselect", "-k", "0", "9", "8", "7"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"value":7`)
}

// newGoldie returns a goldie instance reading testdata/golden/*.golden.
func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// testRootOptions returns options with a 1ms step clock. Logs are
// captured in logs, or dropped when logs is nil.
func testRootOptions(format string, logs *bytes.Buffer) *RootOptions {
	opts := &RootOptions{
		Format:    format,
		Clock:     testutil.NewStepClock(time.Millisecond),
		LogWriter: io.Discard,
	}
	if logs != nil {
		opts.LogWriter = logs
	}
	return opts
}

// execute runs cmd with args and returns stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
