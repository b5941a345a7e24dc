package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const motivationalYAML = `name: Motivational Times
direction: lower
levels: [B, BB, A, AA]
events:
  "500 Free":
    B: "7:04.39"
    BB: "6:28.19"
    A: "6:09.09"
    AA: "5:49.99"
  "50 Free":
    B: "33.19"
    BB: "30.39"
    A: "28.89"
    AA: "27.39"
`

// execute runs the command line in-process and captures its output.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func standardsFile(t *testing.T) string {
	return writeFile(t, "motivational.yaml", motivationalYAML)
}

func contains(t *testing.T, s string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		require.True(t, strings.Contains(s, p), "expected output to contain %q, got:\n%s", p, s)
	}
}
