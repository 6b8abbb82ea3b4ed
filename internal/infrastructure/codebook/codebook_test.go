package codebook

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "codebook.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoadAndLookup(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"분류번호", "품목명", "등급"},
		{"A07040.03", "전자혈압계", "2등급"},
		{"B12345.01", "카테터", "3"},
		{"소분류", "", ""},
	})

	book, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if book.Len() != 2 {
		t.Fatalf("Len() = %d", book.Len())
	}

	entry, ok := book.Lookup("A07040.03")
	if !ok || entry.Name != "전자혈압계" || entry.Grade != 2 {
		t.Fatalf("entry = %+v, ok = %v", entry, ok)
	}
	entry, ok = book.Lookup("B12345.01")
	if !ok || entry.Grade != 3 {
		t.Fatalf("entry = %+v, ok = %v", entry, ok)
	}
	if _, ok := book.Lookup("Z99999.99"); ok {
		t.Fatalf("unexpected hit for unknown code")
	}
}

func TestLookupTrimsWhitespace(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"A07040.03", "전자혈압계", "2"},
	})
	book, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := book.Lookup(" A07040.03 "); !ok {
		t.Fatalf("whitespace-padded lookup failed")
	}
}

func TestLookupNilSafe(t *testing.T) {
	var book *Codebook
	if _, ok := book.Lookup("A07040.03"); ok {
		t.Fatalf("nil codebook must miss")
	}
	if book.Len() != 0 {
		t.Fatalf("nil codebook Len() = %d", book.Len())
	}
}

func TestLoadRejectsEmptyWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"헤더만", "있는", "시트"},
	})
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for workbook without classification rows")
	}
}
