package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(fs, &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunDumpsTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/main.c", []byte("int main(void) { return 0; }\n"), 0o644))

	stdout, stderr, err := execute(t, fs, "--no-color", "/src/main.c")
	require.NoError(t, err)

	assert.Contains(t, stdout, "/src/main.c\n")
	assert.Contains(t, stdout, "Program (1 children)")
	assert.Contains(t, stdout, "Function: main, Return Type: int")
	assert.NotContains(t, stderr, "Error")
}

func TestRunReportsDiagnosticsButSucceeds(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/bad.c", []byte("int ;\n"), 0o644))

	stdout, stderr, err := execute(t, fs, "--no-color", "/src/bad.c")
	require.NoError(t, err, "diagnostics must not fail the run")

	assert.Contains(t, stderr, "Error in /src/bad.c:1:5: Expected identifier after type specifier")
	assert.Contains(t, stdout, "Program (0 children)")
}

func TestRunMissingFile(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(), "/no/such.c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read /no/such.c")
}

func TestRunMissingArgument(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs())
	require.Error(t, err)
}

func TestRunVerboseTracesTokens(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/main.c", []byte("int x;\n"), 0o644))

	_, stderr, err := execute(t, fs, "--no-color", "--verbose", "/src/main.c")
	require.NoError(t, err)

	assert.Contains(t, stderr, "level=debug")
	assert.Contains(t, stderr, "SEMICOLON")
}
