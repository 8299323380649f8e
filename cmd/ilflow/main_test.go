package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ilflow/internal/ilfmt"
	"ilflow/internal/output"
)

// ldc.i4.1; brtrue.s IL_0004; nop; ret
const condHex = `# cond
0x16 0x17
2d,01
00 2a
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(args, "--no-color"))
	err := root.Execute()
	return buf.String(), err
}

func writeTemp(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestParseHex(t *testing.T) {
	data, err := parseHex(condHex)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x16, 0x17, 0x2d, 0x01, 0x00, 0x2a}, data)

	_, err = parseHex("zz")
	assert.Error(t, err)
}

func TestParse_Text(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "cond.hex", []byte(condHex))
	out, err := execute(t, "parse", "--hex", path)
	require.NoError(t, err)
	assert.Equal(t, `method [0,4)
  B0 [0,2) -> B2 B1
    IL_0000: ldc.i4.1
    IL_0001: brtrue.s IL_0004
  B1 [2,3) -> B2
    IL_0003: nop
  B2 [3,4)
    IL_0004: ret
`, out)
}

func TestParse_JSON(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "cond.bin", []byte{0x16, 0x17, 0x2d, 0x01, 0x00, 0x2a})
	out, err := execute(t, "parse", "-f", "json", path)
	require.NoError(t, err)

	var doc output.Method
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "cond", doc.Name)
	assert.Equal(t, 3, doc.Stats.Blocks)
	assert.Equal(t, "method", doc.Root.Kind)
}

func TestParse_DOTFormats(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "cond.hex", []byte(condHex))
	out, err := execute(t, "parse", "--hex", "--format", "dot", path)
	require.NoError(t, err)
	assert.Contains(t, out, "digraph cfg {")

	out, err = execute(t, "parse", "--hex", "--format", "lattice", path)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestParse_OutDir(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "cond.hex", []byte(condHex))
	out := filepath.Join(dir, "out")
	_, err := execute(t, "parse", "--hex", "--out", out, path)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "text", "cond.txt"))
}

func TestParse_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "cond.hex", []byte(condHex))

	_, err := execute(t, "parse", "--format", "yaml", path)
	assert.EqualError(t, err, "unknown output format: yaml")

	bad := writeTemp(t, dir, "bad.bin", []byte{0x01})
	_, err = execute(t, "parse", "--strict", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ilfmt.ErrBadHeader))

	_, err = execute(t, "parse", filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "cond.hex", []byte(condHex))
	writeTemp(t, dir, "bad.bin", []byte{0x01})
	writeTemp(t, dir, "notes.txt", []byte("ignored"))
	out := filepath.Join(t.TempDir(), "out")

	text, err := execute(t, "batch", "--workers", "2", "--out", out, dir)
	require.NoError(t, err)
	assert.Contains(t, text, "METHOD")
	assert.Contains(t, text, "cond")
	assert.NotContains(t, text, "notes")

	for _, rel := range []string{
		"index.html",
		"summary.json",
		filepath.Join("json", "cond.json"),
		filepath.Join("dot", "cond.dot"),
		filepath.Join("dot", "callgraph.dot"),
	} {
		assert.FileExists(t, filepath.Join(out, rel))
	}

	_, err = execute(t, "batch", "--strict", dir)
	assert.ErrorIs(t, err, ilfmt.ErrBadHeader)
}

func TestARM64(t *testing.T) {
	dir := t.TempDir()
	// bl +8; ret; ret
	path := writeTemp(t, dir, "f.hex", []byte("02 00 00 94\nc0 03 5f d6\nc0 03 5f d6\n"))

	out, err := execute(t, "arm64", "--hex", "--base", "0x1000", path)
	require.NoError(t, err)
	assert.Contains(t, out, "method [0,3)")
	assert.Contains(t, out, "B0 [0,2)")

	out, err = execute(t, "arm64", "--hex", "--base", "0x1000", "-f", "asm", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0x00001000")
	assert.Contains(t, out, "; call sub_1008")

	_, err = execute(t, "arm64", "--base", "nope", path)
	assert.Error(t, err)
}
