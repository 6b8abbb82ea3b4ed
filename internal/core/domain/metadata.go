package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// MetadataEntry is one key/typed-value pair attached to a store document at
// upload time. The remote API distinguishes string and numeric values.
type MetadataEntry struct {
	Key          string   `json:"key"`
	StringValue  string   `json:"stringValue,omitempty"`
	NumericValue *float64 `json:"numericValue,omitempty"`
}

func stringEntry(key, value string) MetadataEntry {
	return MetadataEntry{Key: key, StringValue: value}
}

func numericEntry(key string, value float64) MetadataEntry {
	return MetadataEntry{Key: key, NumericValue: &value}
}

var (
	gradeDirPattern = regexp.MustCompile(`^class(\d+)`)
	classDirPattern = regexp.MustCompile(`^\d+등급_([A-Z0-9.]+)`)
)

// ExtractPathMetadata derives document metadata from the corpus layout
//
//	<baseDir>/class<GRADE>/<GRADE>등급_<CODE>/<COMPANY>_<APPROVAL>_<SECTION>.<ext>
//
// Malformed segments simply omit their keys; fewer than three segments yields
// an empty set. It never fails.
func ExtractPathMetadata(path, baseDir string) []MetadataEntry {
	relative, err := filepath.Rel(baseDir, path)
	if err != nil {
		return nil
	}
	parts := strings.Split(filepath.ToSlash(relative), "/")
	if len(parts) < 3 {
		return nil
	}

	var metadata []MetadataEntry
	if m := gradeDirPattern.FindStringSubmatch(parts[0]); m != nil {
		metadata = append(metadata, numericEntry("grade", float64(atoiDigits(m[1]))))
	}
	if m := classDirPattern.FindStringSubmatch(parts[1]); m != nil {
		metadata = append(metadata, stringEntry("classification_number", m[1]))
	}

	filename := parts[2]
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	// At most two splits: anything after the second underscore stays in the
	// section part.
	nameParts := strings.SplitN(filename, "_", 3)
	if len(nameParts) > 0 && nameParts[0] != "" {
		metadata = append(metadata, stringEntry("company_name", nameParts[0]))
	}
	if len(nameParts) > 1 && nameParts[1] != "" {
		metadata = append(metadata, stringEntry("approval_number", nameParts[1]))
	}
	if len(nameParts) > 2 && nameParts[2] != "" {
		metadata = append(metadata, stringEntry("document_section", nameParts[2]))
	}
	return metadata
}

// MasterMetadata types a master reference file by filename keyword. The
// codebook and regulation notices outrank general references during retrieval.
func MasterMetadata(filename string) []MetadataEntry {
	switch {
	case strings.Contains(filename, "별표") || strings.Contains(filename, "품목"):
		return []MetadataEntry{
			stringEntry("doc_type", "classification_master"),
			stringEntry("importance", "high"),
		}
	case strings.Contains(filename, "고시") || strings.Contains(filename, "규정") || strings.Contains(filename, "가이드라인"):
		return []MetadataEntry{
			stringEntry("doc_type", "regulation_rule"),
			stringEntry("importance", "high"),
		}
	default:
		return []MetadataEntry{stringEntry("doc_type", "general_reference")}
	}
}

func atoiDigits(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
