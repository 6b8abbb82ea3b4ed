package domain

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is one of the nine fixed technical-document sections of a
// manufacturing approval application.
type Category string

const (
	CategoryPrinciple   Category = "모양및구조-작용원리"
	CategoryAppearance  Category = "모양및구조-외형"
	CategoryDimensions  Category = "모양및구조-치수"
	CategoryProperties  Category = "모양및구조-특성"
	CategoryRawMaterial Category = "원재료"
	CategoryPurpose     Category = "사용목적"
	CategoryPerformance Category = "성능"
	CategoryUsage       Category = "사용방법"
	CategoryPrecautions Category = "사용시주의사항"
)

// Categories is the canonical order used for final draft assembly.
var Categories = []Category{
	CategoryPrinciple,
	CategoryAppearance,
	CategoryDimensions,
	CategoryProperties,
	CategoryRawMaterial,
	CategoryPurpose,
	CategoryPerformance,
	CategoryUsage,
	CategoryPrecautions,
}

var categoryTitles = map[Category]string{
	CategoryPrinciple:   "작용원리",
	CategoryAppearance:  "외형",
	CategoryDimensions:  "치수",
	CategoryProperties:  "특성",
	CategoryRawMaterial: "원재료",
	CategoryPurpose:     "사용목적",
	CategoryPerformance: "성능",
	CategoryUsage:       "사용방법",
	CategoryPrecautions: "사용 시 주의사항",
}

// Title returns the section heading used in generated drafts.
func (c Category) Title() string {
	if title, ok := categoryTitles[c]; ok {
		return title
	}
	return string(c)
}

// displayNames maps the labels shown in the web UI to canonical categories.
var displayNames = map[string]Category{
	"모양 및 구조(작용원리)": CategoryPrinciple,
	"모양 및 구조(외형)":   CategoryAppearance,
	"모양 및 구조(치수)":   CategoryDimensions,
	"모양 및 구조(특성)":   CategoryProperties,
	"원재료":           CategoryRawMaterial,
	"사용목적":          CategoryPurpose,
	"성능":            CategoryPerformance,
	"사용방법":          CategoryUsage,
	"사용 시 주의사항":     CategoryPrecautions,
}

// CategoryFromDisplayName resolves either a UI display label or an already
// canonical category value.
func CategoryFromDisplayName(name string) (Category, bool) {
	if c, ok := displayNames[name]; ok {
		return c, true
	}
	c := Category(name)
	if _, ok := categoryTitles[c]; ok {
		return c, true
	}
	return "", false
}

// KeywordTable maps categories to filename synonyms used for best-effort
// grouping of input files. A file matches at most one category; the first
// matching keyword in canonical category order wins.
type KeywordTable map[Category][]string

func DefaultKeywords() KeywordTable {
	return KeywordTable{
		CategoryPrinciple:   {"작용원리", "작동원리", "동작원리"},
		CategoryAppearance:  {"외형", "외관", "형상"},
		CategoryDimensions:  {"치수", "크기", "규격", "사이즈"},
		CategoryProperties:  {"특성", "특징"},
		CategoryRawMaterial: {"원재료", "재질", "소재", "material"},
		CategoryPurpose:     {"사용목적", "용도", "목적"},
		CategoryPerformance: {"성능", "기능", "사양"},
		CategoryUsage:       {"사용방법", "사용법", "사용절차"},
		CategoryPrecautions: {"주의사항", "경고", "주의", "금기사항"},
	}
}

// LoadKeywordOverrides merges a YAML synonym file over the defaults. Unknown
// category keys are rejected so typos do not silently drop sections.
func LoadKeywordOverrides(path string) (KeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword config: %w", err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse keyword config: %w", err)
	}

	table := DefaultKeywords()
	for key, keywords := range raw {
		category := Category(key)
		if _, ok := categoryTitles[category]; !ok {
			return nil, fmt.Errorf("unknown category %q in keyword config", key)
		}
		table[category] = keywords
	}
	return table, nil
}

// Match finds the category for a filename by substring match against the
// synonym table.
func (t KeywordTable) Match(filename string) (Category, bool) {
	for _, category := range Categories {
		for _, keyword := range t[category] {
			if strings.Contains(filename, keyword) {
				return category, true
			}
		}
	}
	return "", false
}

// GroupedFiles is the result of grouping input paths by category. Unclassified
// files are reported but excluded from per-category generation.
type GroupedFiles struct {
	Groups       map[Category][]string
	Unclassified []string
}

// OrderedCategories returns the non-empty groups in canonical order.
func (g GroupedFiles) OrderedCategories() []Category {
	var out []Category
	for _, category := range Categories {
		if len(g.Groups[category]) > 0 {
			out = append(out, category)
		}
	}
	return out
}

// GroupFilesByCategory assigns each path to at most one category by filename
// keyword. When the name alone does not match and peek is non-nil, a content
// excerpt is fetched and matched the same way before the file is declared
// unclassified.
func (t KeywordTable) GroupFilesByCategory(paths []string, peek func(path string) string) GroupedFiles {
	grouped := GroupedFiles{Groups: make(map[Category][]string)}
	for _, path := range paths {
		name := baseName(path)
		category, ok := t.Match(name)
		if !ok && peek != nil {
			if excerpt := peek(path); excerpt != "" {
				category, ok = t.Match(excerpt)
			}
		}
		if !ok {
			grouped.Unclassified = append(grouped.Unclassified, path)
			continue
		}
		grouped.Groups[category] = append(grouped.Groups[category], path)
	}
	return grouped
}

func baseName(path string) string {
	idx := strings.LastIndexAny(path, `/\`)
	return path[idx+1:]
}
