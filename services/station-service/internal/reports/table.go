// Package reports renders tabular entity listings as PDF or XLSX downloads.
package reports

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", raw)
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

type Table struct {
	Title   string
	Heading string
	Columns []string
	Rows    [][]string
}

func (t Table) Write(w io.Writer, f Format) error {
	if f == FormatXLSX {
		return WriteXLSX(w, t)
	}
	return WritePDF(w, t)
}

func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func OptionalMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return Money(*v)
}
