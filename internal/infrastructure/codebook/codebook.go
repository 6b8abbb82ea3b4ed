// Package codebook reads the 별표1 item-classification workbook so item codes
// can be resolved to names and grades without a remote call. The same
// workbook is part of the master reference data uploaded to the store.
package codebook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Entry struct {
	Code  string
	Name  string
	Grade int
}

type Codebook struct {
	entries map[string]Entry
}

// Load reads the first sheet. The expected layout is a header row followed by
// rows of classification number, item name and grade; rows that do not look
// like a classification number (e.g. section separators) are skipped.
func Load(path string) (*Codebook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open codebook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("codebook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read codebook rows: %w", err)
	}

	entries := make(map[string]Entry)
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		code := strings.TrimSpace(row[0])
		if !looksLikeCode(code) {
			continue
		}
		entry := Entry{Code: code, Name: strings.TrimSpace(row[1])}
		if len(row) > 2 {
			entry.Grade = parseGrade(row[2])
		}
		entries[code] = entry
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("codebook contains no classification rows")
	}
	return &Codebook{entries: entries}, nil
}

// Lookup is nil-safe so callers can run without a codebook configured.
func (c *Codebook) Lookup(code string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, ok := c.entries[strings.TrimSpace(code)]
	return entry, ok
}

func (c *Codebook) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// looksLikeCode matches classification numbers such as A07040.03.
func looksLikeCode(s string) bool {
	if len(s) < 2 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	rest := s[1:]
	digits := 0
	for _, r := range rest {
		if r >= '0' && r <= '9' {
			digits++
			continue
		}
		if r != '.' {
			return false
		}
	}
	return digits >= 4
}

// parseGrade accepts "2", "2등급" and similar cell formats.
func parseGrade(cell string) int {
	cell = strings.TrimSpace(cell)
	cell = strings.TrimSuffix(cell, "등급")
	grade, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil || grade < 1 || grade > 4 {
		return 0
	}
	return grade
}
