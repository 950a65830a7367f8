package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/scribe/config"
	"github.com/jonwraymond/scribe/jsbridge"
)

const mathScript = `
const math = scribe.wrap({
	add(a, b) { return a + b },
	multiply(a, b) { return a * b },
}, {objectName: "math"})
math.add(2, 3)
console.log("product", math.multiply(4, 5))
scribe.inspect(math).calls.length
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "math.js", mathScript)
	cfg := writeFile(t, dir, "scribe.yaml", "output: json\nlog:\n  level: error\n")

	stdout, _, err := execute(t, "run", "--config", cfg, script)
	require.NoError(t, err)

	var out struct {
		RunID    string   `json:"runId"`
		Value    float64  `json:"value"`
		Logs     []string `json:"logs"`
		Entities []struct {
			Name  string `json:"name"`
			Mode  string `json:"mode"`
			Calls []struct {
				Name        string `json:"name"`
				ReturnValue any    `json:"returnValue"`
				Status      string `json:"status"`
			} `json:"calls"`
		} `json:"entities"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, float64(2), out.Value)
	assert.Equal(t, []string{"product 20"}, out.Logs)
	require.Len(t, out.Entities, 1)
	assert.Equal(t, "math", out.Entities[0].Name)
	assert.Equal(t, "delegation", out.Entities[0].Mode)
	require.Len(t, out.Entities[0].Calls, 2)
	assert.Equal(t, "multiply", out.Entities[0].Calls[1].Name)
	assert.Equal(t, float64(20), out.Entities[0].Calls[1].ReturnValue)
	assert.Equal(t, "completed", out.Entities[0].Calls[1].Status)
}

func TestRun_TextWithFlags(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "math.js", mathScript)
	cfg := writeFile(t, dir, "scribe.yaml", "output: json\n")

	stdout, stderr, err := execute(t, "run", "--config", cfg, "--output", "text", "--mode", "mutative", "--metrics", "--log-level", "error", script)
	require.NoError(t, err)

	assert.Contains(t, stdout, "product 20\n")
	assert.Contains(t, stdout, "Math")
	assert.Contains(t, stdout, "mutative")
	assert.Contains(t, stdout, "multiply(4, 5) -> 20")
	assert.Contains(t, stderr, `scribe_method_calls_total{method="add",object="math"} 1`)
}

func TestRun_ScriptError(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "boom.js", `
		const o = scribe.wrap({boom() { throw new Error("kaput") }}, {objectName: "o"})
		o.boom()
	`)
	cfg := writeFile(t, dir, "scribe.yaml", "log:\n  level: error\n")

	stdout, _, err := execute(t, "run", "--config", cfg, script)
	require.ErrorIs(t, err, jsbridge.ErrScript)
	assert.Contains(t, stdout, "!! ")
	assert.Contains(t, stdout, "kaput")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "ok.js", `1`)

	_, _, err := execute(t, "run", "--config", filepath.Join(dir, "missing.yaml"), script)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg := writeFile(t, dir, "scribe.yaml", "log:\n  level: error\n")
	_, _, err = execute(t, "run", "--config", cfg, "--mode", "sideways", script)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "run", "--config", cfg, filepath.Join(dir, "missing.js"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "run", "--config", cfg)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "scribe ")
	assert.Contains(t, stdout, "commit ")
}
