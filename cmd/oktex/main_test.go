package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledgerwatch/log/v3"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEngines(t *testing.T) {
	out, err := run(t, "engines")
	require.NoError(t, err)
	require.Contains(t, out, "pdflatex")
	require.Contains(t, out, "LatexPDF")
	require.Equal(t, 7, strings.Count(out, "\n"))
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fig.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`
box: [0, 0, 100, 50]
ops:
  - label: {text: 'A', at: [50, 25]}
`), 0o644))
	config := filepath.Join(dir, "oktex.toml")
	require.NoError(t, os.WriteFile(config, []byte("tex = \"latex\"\npreamble = ['\\usepackage{amsmath}']\n"), 0o644))

	out, err := run(t, "render", script, "--config", config, "--tex", "pdflatex", "--verbosity", "error")
	require.NoError(t, err)
	texFile := filepath.Join(dir, "fig.tex")
	require.Equal(t, texFile+"\n", out)

	data, err := os.ReadFile(texFile)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, `\usepackage{amsmath}`)
	require.Contains(t, content, `\pdfpagewidth=100.000000bp`) // the flag wins over the file
	require.Contains(t, content, `{A}`)
}

func TestRenderInline(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fig.yaml")
	require.NoError(t, os.WriteFile(script, []byte("ops: [{raw: '\\hrule'}]\n"), 0o644))

	output := filepath.Join(dir, "out", "pic.tex")
	require.NoError(t, os.Mkdir(filepath.Dir(output), 0o755))
	_, err := run(t, "render", script, "-o", output, "--tex", "pdftex", "--inline")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "out", "pic_.pre"))
	require.NoError(t, err)
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fig.yaml")
	require.NoError(t, os.WriteFile(script, []byte("ops: []\n"), 0o644))

	_, err := run(t, "render", script, "--tex", "troff")
	require.Error(t, err)

	_, err = run(t, "render", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	_, err = run(t, "render", script, "--verbosity", "loud")
	require.Error(t, err)

	_, err = run(t, "render", script, "-o", filepath.Join(dir, "missing", "out.tex"))
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	lvl, err := logLevel("debug")
	require.NoError(t, err)
	require.Equal(t, log.LvlDebug, lvl)

	lvl, err = logLevel("1")
	require.NoError(t, err)
	require.Equal(t, log.LvlError, lvl)
}
