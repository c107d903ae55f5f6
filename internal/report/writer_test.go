package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWritePDF(t *testing.T) {
	doc := fixtureDocument(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	require.NoError(t, NewWriter().WritePDF(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	// The temp file must be gone after the rename.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.pdf", entries[0].Name())
}

func TestWritePDFDeterministic(t *testing.T) {
	doc := fixtureDocument(t)
	dir := t.TempDir()

	first := filepath.Join(dir, "a.pdf")
	second := filepath.Join(dir, "b.pdf")
	require.NoError(t, NewWriter().WritePDF(doc, first))
	require.NoError(t, NewWriter().WritePDF(doc, second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestWritePDFFailureLeavesNoArtifact(t *testing.T) {
	doc := fixtureDocument(t)
	path := filepath.Join(t.TempDir(), "missing", "report.pdf")

	err := NewWriter().WritePDF(doc, path)
	require.Error(t, err)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, path, writeErr.Path)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestWritePDFNilDocument(t *testing.T) {
	err := NewWriter().WritePDF(nil, filepath.Join(t.TempDir(), "report.pdf"))
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
}

func TestRenderPaginates(t *testing.T) {
	doc := fixtureDocument(t)
	r := newRenderer(doc)
	r.render(doc)

	require.False(t, r.pdf.Err())
	assert.GreaterOrEqual(t, r.pdf.PageCount(), 6)
}

func TestWriteXLSX(t *testing.T) {
	doc := fixtureDocument(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, NewWriter().WriteXLSX(doc, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Overview",
		"Sales by Category",
		"Top Performing Products",
		"Regional Performance",
		"Monthly Sales Trend",
	}, f.GetSheetList())

	total, err := f.GetCellValue("Overview", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Total Sales", total)
	amount, err := f.GetCellValue("Overview", "B1")
	require.NoError(t, err)
	assert.Equal(t, "$55.00", amount)

	header, err := f.GetCellValue("Top Performing Products", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Product", header)
	leader, err := f.GetCellValue("Top Performing Products", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Product A", leader)

	share, err := f.GetCellValue("Regional Performance", "C2")
	require.NoError(t, err)
	assert.Equal(t, "54.5%", share)
}

func TestWriteXLSXFailureLeavesNoArtifact(t *testing.T) {
	doc := fixtureDocument(t)
	path := filepath.Join(t.TempDir(), "missing", "report.xlsx")

	err := NewWriter().WriteXLSX(doc, path)
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}
