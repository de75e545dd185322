package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePDFs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))
	}
	return dir
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestListPDFs(t *testing.T) {
	dir := writePDFs(t, "W2.pdf", "W1.pdf", "notes.txt", "W3.PDF")

	paths, err := listPDFs(dir, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"W1.pdf", "W2.pdf", "W3.PDF"}, baseNames(paths),
		"sorted, pdf only, case-insensitive extension")
}

func TestListPDFsOnly(t *testing.T) {
	dir := writePDFs(t, "W1.pdf", "W2.pdf", "W3.pdf")

	paths, err := listPDFs(dir, []string{"W2.pdf"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"W2.pdf"}, baseNames(paths))
}

func TestListPDFsLimit(t *testing.T) {
	dir := writePDFs(t, "W1.pdf", "W2.pdf", "W3.pdf")

	paths, err := listPDFs(dir, nil, 2)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestListPDFsMissingDir(t *testing.T) {
	_, err := listPDFs(filepath.Join(t.TempDir(), "absent"), nil, 0)
	assert.Error(t, err)
}
