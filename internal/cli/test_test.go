package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSL(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.csl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunTestCleanFilePrintsCheckmark(t *testing.T) {
	path := writeTempCSL(t, "config App {\n\tname: string;\n}\n")
	cmd := NewTestCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runTest(cmd, []string{path})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), path)
}

func TestRunTestSyntaxErrorReturnsError(t *testing.T) {
	path := writeTempCSL(t, "config App {\n\tname:\n}\n")
	cmd := NewTestCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runTest(cmd, []string{path})
	assert.Error(t, err)
}

func TestRunTestMissingFileReturnsError(t *testing.T) {
	cmd := NewTestCommand()
	err := runTest(cmd, []string{"/nonexistent/schema.csl"})
	assert.Error(t, err)
}
