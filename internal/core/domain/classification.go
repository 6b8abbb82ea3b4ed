package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ClassificationResult is the stage-1 output. Fields are pointers because the
// model may fail to determine any of them; downstream stages treat nil as
// "no filter on this field".
type ClassificationResult struct {
	ClassificationCode *string `json:"classification_code"`
	Grade              *int    `json:"grade"`
	ItemName           *string `json:"item_name"`
	Reason             *string `json:"reason"`
}

func (r ClassificationResult) Code() string {
	if r.ClassificationCode == nil {
		return ""
	}
	return *r.ClassificationCode
}

func (r ClassificationResult) GradeValue() int {
	if r.Grade == nil {
		return 0
	}
	return *r.Grade
}

func (r ClassificationResult) Name() string {
	if r.ItemName == nil {
		return ""
	}
	return *r.ItemName
}

// OutcomeKind tells callers how much of the classification survived.
type OutcomeKind string

const (
	// OutcomeStructured means the model returned a parseable JSON result.
	OutcomeStructured OutcomeKind = "structured"
	// OutcomeDegraded means the result was recovered from the input file path.
	OutcomeDegraded OutcomeKind = "degraded"
	// OutcomeUnrecoverable means every field is nil; retrieval runs unfiltered.
	OutcomeUnrecoverable OutcomeKind = "unrecoverable"
)

type ClassificationOutcome struct {
	Kind   OutcomeKind
	Result ClassificationResult
}

// ParseClassificationResponse decodes the stage-1 model output, tolerating a
// fenced ```json code block around the object.
func ParseClassificationResponse(raw string) (ClassificationResult, error) {
	text := stripCodeFence(strings.TrimSpace(raw))

	var result ClassificationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return ClassificationResult{}, err
	}
	return result, nil
}

func stripCodeFence(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) >= 2 {
			body := lines[1:]
			if strings.HasPrefix(strings.TrimSpace(body[len(body)-1]), "```") {
				body = body[:len(body)-1]
			}
			return strings.TrimSpace(strings.Join(body, "\n"))
		}
	}
	return text
}

// pathClassPattern matches the corpus layout: class2/2등급_A07040.03/...
var pathClassPattern = regexp.MustCompile(`class(\d+)[/\\](\d+)등급_([A-Z]\d{5}\.\d{2})`)

// ClassificationFromPath recovers code and grade from the directory convention
// when the model response cannot be parsed.
func ClassificationFromPath(path string) (ClassificationResult, bool) {
	m := pathClassPattern.FindStringSubmatch(path)
	if m == nil {
		return ClassificationResult{}, false
	}
	grade, err := strconv.Atoi(m[2])
	if err != nil {
		return ClassificationResult{}, false
	}
	code := m[3]
	name := "추출된 품목"
	reason := "파일 경로에서 자동 추출"
	return ClassificationResult{
		ClassificationCode: &code,
		Grade:              &grade,
		ItemName:           &name,
		Reason:             &reason,
	}, true
}

// itemCategoryNames maps a classification code's leading letter to its broad
// category per the 별표1 numbering scheme.
var itemCategoryNames = map[byte]string{
	'A': "기구·기계",
	'B': "재료",
	'C': "치과재료",
	'D': "의료용품",
}

// FallbackItemName synthesizes a display name like "2등급 기구·기계 (A07040.03)"
// when the code has no codebook entry.
func FallbackItemName(code string, grade int) string {
	category := "의료기기"
	if code != "" {
		if name, ok := itemCategoryNames[code[0]]; ok {
			category = name
		}
	}
	return fmt.Sprintf("%d등급 %s (%s)", grade, category, code)
}

// BuildMetadataFilter renders the store filter expression from whatever fields
// are known. An empty string means unfiltered retrieval.
func BuildMetadataFilter(cls ClassificationResult, section Category) string {
	var conditions []string
	if code := cls.Code(); code != "" {
		conditions = append(conditions, `classification_number="`+code+`"`)
	}
	if grade := cls.GradeValue(); grade > 0 {
		conditions = append(conditions, "grade="+strconv.Itoa(grade))
	}
	if section != "" {
		conditions = append(conditions, `document_section:"`+string(section)+`"`)
	}
	return strings.Join(conditions, " AND ")
}
