package reports

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable(rows int) Table {
	t := Table{
		Title:   "Product Report",
		Heading: "Fuel Station",
		Columns: []string{"Name", "Category", "Quantity", "Price Per Unit"},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []string{fmt.Sprintf("Diesel %d", i), "fuel", "100", Money(365.5)})
	}
	return t
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleTable(120)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWritePDFEmptyWideTable(t *testing.T) {
	tbl := Table{Title: "Sales", Columns: []string{"a", "b", "c", "d", "e", "f", "g"}}
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, tbl))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleTable(3)))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Name", "Category", "Quantity", "Price Per Unit"}, rows[0])
	assert.Equal(t, "Diesel 2", rows[3][0])
	assert.Equal(t, "365.50", rows[1][3])
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1500.00", Money(1500))
	assert.Equal(t, "-", OptionalMoney(nil))
	v := 12.346
	assert.Equal(t, "12.35", OptionalMoney(&v))
}
