package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepdist/blobstore"
	"github.com/hupe1980/deepdist/codec"
)

func writeDoc(t *testing.T, dir, name string, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	var buf bytes.Buffer
	w, err := blobstore.Compress(blobstore.CompressionOf(name), &buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = run(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	left := writeDoc(t, dir, "left.json", `[0, 1, 2, 3, 4, 5, 6, 7, 8, 9]`)
	right := writeDoc(t, dir, "right.json.zst", `[0, 2, 2, 3, 4, 5, 6, 7, 8, 9]`)

	code, out, _ := runCmd(t, left, right)
	require.Equal(t, 0, code)

	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, d, 1e-12)
}

func TestRunCompressedInputs(t *testing.T) {
	dir := t.TempDir()
	doc := `{"a": {"b": [1, 2]}, "c": "x"}`
	for _, ext := range []string{".json", ".json.gz", ".json.lz4", ".json.zst"} {
		t.Run(ext, func(t *testing.T) {
			left := writeDoc(t, dir, "left"+ext, doc)
			right := writeDoc(t, dir, "right"+ext, doc)
			code, out, _ := runCmd(t, left, right)
			require.Equal(t, 0, code)
			assert.Equal(t, "0\n", out)
		})
	}
}

func TestRunNumericDocuments(t *testing.T) {
	dir := t.TempDir()
	left := writeDoc(t, dir, "l.json", `10`)
	right := writeDoc(t, dir, "r.json", `12`)

	code, out, _ := runCmd(t, "-cutoff", "1", left, right)
	require.Equal(t, 0, code)
	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/22, d, 1e-12)
}

func TestRunReport(t *testing.T) {
	dir := t.TempDir()
	left := writeDoc(t, dir, "l.json", `{"a": 1, "b": [1, 2]}`)
	right := writeDoc(t, dir, "r.json", `{"a": 1.5, "b": [1, 2, 3]}`)

	code, out, _ := runCmd(t, "-report", left, right)
	require.Equal(t, 0, code)

	v, err := codec.GoJSON{}.Document([]byte(out))
	require.NoError(t, err)
	got := v.(map[string]any)
	report := got["report"].(map[string]any)

	assert.Equal(t, map[string]any{"root['b'][2]": 3}, report["iterable_item_added"])
	assert.Equal(t, map[string]any{"root['a']": map[string]any{
		"old_type":  "int",
		"new_type":  "float64",
		"new_value": 1.5,
	}}, report["type_changes"])
	assert.Contains(t, got, "distance")
}

func TestRunIgnoreOrder(t *testing.T) {
	dir := t.TempDir()
	left := writeDoc(t, dir, "l.json", `[1, 2, 3]`)
	right := writeDoc(t, dir, "r.json", `[3, 1, 2]`)

	code, out, _ := runCmd(t, "-ignore-order", left, right)
	require.Equal(t, 0, code)
	assert.Equal(t, "0\n", out)
}

func TestRunMetricsFile(t *testing.T) {
	dir := t.TempDir()
	left := writeDoc(t, dir, "l.json", `{"a": 1}`)
	right := writeDoc(t, dir, "r.json", `{"a": 2}`)
	metrics := filepath.Join(dir, "deepdist.prom")

	code, _, _ := runCmd(t, "-metrics-file", metrics, left, right)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "deepdist_rough_distance_seconds")
	assert.Contains(t, string(data), "deepdist_length_lookups_total")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.json", `[1]`)
	bad := writeDoc(t, dir, "bad.json", `[1,`)

	t.Run("Usage", func(t *testing.T) {
		code, _, stderr := runCmd(t, good)
		assert.Equal(t, 2, code)
		assert.Contains(t, stderr, "two inputs")
	})

	t.Run("Missing", func(t *testing.T) {
		code, _, stderr := runCmd(t, good, filepath.Join(dir, "missing.json"))
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "missing.json")
	})

	t.Run("Malformed", func(t *testing.T) {
		code, _, _ := runCmd(t, good, bad)
		assert.Equal(t, 1, code)
	})

	t.Run("Help", func(t *testing.T) {
		code, _, stderr := runCmd(t, "-h")
		assert.Equal(t, 0, code)
		assert.Contains(t, stderr, "usage: deepdist")
	})
}
