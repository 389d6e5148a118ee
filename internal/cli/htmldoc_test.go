package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csl-lang/csl/internal/cslconfig"
)

func TestRunHTMLDocWritesFiles(t *testing.T) {
	schemaPath := writeTempCSL(t, "config App {\n\tname: string;\n\tport: number = 8080;\n}\n")
	outDir := filepath.Join(t.TempDir(), "docs")

	cmd := NewHTMLDocCommand()
	htmldocProjectName, htmldocDescription, htmldocVersion, htmldocBaseURL, htmldocMarkdown = "", "", "", "", false

	err := runHTMLDoc(cmd, []string{schemaPath, outDir})
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestRunHTMLDocSyntaxErrorReturnsError(t *testing.T) {
	schemaPath := writeTempCSL(t, "config App {\n\tname:\n}\n")
	outDir := filepath.Join(t.TempDir(), "docs")

	cmd := NewHTMLDocCommand()
	err := runHTMLDoc(cmd, []string{schemaPath, outDir})
	assert.Error(t, err)
}

func TestHTMLDocConfigFromPrefersFlagsOverProjectConfig(t *testing.T) {
	htmldocProjectName = "flag-name"
	defer func() { htmldocProjectName = "" }()

	projectCfg := &cslconfig.Config{ProjectName: "project-name"}
	cfg := htmldocConfigFrom(projectCfg, "schema.csl")
	assert.Equal(t, "flag-name", cfg.ProjectName)
}

func TestHTMLDocConfigFromFallsBackToFileName(t *testing.T) {
	htmldocProjectName = ""
	projectCfg := &cslconfig.Config{}
	cfg := htmldocConfigFrom(projectCfg, "schema.csl")
	assert.Equal(t, "schema.csl", cfg.ProjectName)
}
