package prompt

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("Truncate() = %q", got)
	}
	if got := Truncate("hello", 2); got != "he" {
		t.Fatalf("Truncate() = %q", got)
	}
	// Rune-safe: multi-byte characters are never split.
	if got := Truncate("가나다라", 2); got != "가나" {
		t.Fatalf("Truncate() = %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("Truncate() = %q", got)
	}
}

func TestClassificationPromptDemandsJSON(t *testing.T) {
	p := Classification()
	if !strings.Contains(p, "```json") {
		t.Fatalf("classification prompt must include the JSON example")
	}
	if !strings.Contains(p, "classification_code") || !strings.Contains(p, "grade") {
		t.Fatalf("classification prompt must name the output fields")
	}
}

func TestPrecedentSearchIncludesConstraintsAndFilter(t *testing.T) {
	cls := ClassificationInfo{Code: "A07040.03", Grade: 2, ItemName: "혈압계"}
	p := PrecedentSearch(cls, "사용목적", `classification_number="A07040.03"`)

	if !strings.Contains(p, "A07040.03") {
		t.Fatalf("prompt must carry the item code")
	}
	if !strings.Contains(p, "2등급") {
		t.Fatalf("prompt must carry the grade constraint")
	}
	if !strings.Contains(p, `적용된 메타데이터 필터: classification_number="A07040.03"`) {
		t.Fatalf("prompt must restate the metadata filter")
	}
}

func TestPrecedentSearchUnclassified(t *testing.T) {
	p := PrecedentSearch(ClassificationInfo{}, "", "")
	if !strings.Contains(p, "전체 문서를 대상으로 검색") {
		t.Fatalf("unclassified search must announce the unfiltered scope")
	}
	if !strings.Contains(p, "메타데이터 필터 없음") {
		t.Fatalf("unclassified search must state that no filter applies")
	}
}

func TestSectionDraftProfiles(t *testing.T) {
	cls := ClassificationInfo{Code: "A07040.03", Grade: 2, ItemName: "혈압계"}

	html := SectionDraft(cls, "사용목적", "사용목적", "요약", "", ProfileHTML)
	if !strings.Contains(html, "HTML 테이블") {
		t.Fatalf("HTML profile must demand HTML tables")
	}
	if strings.Contains(html, "Markdown 형식으로 작성") {
		t.Fatalf("HTML profile must not ask for markdown")
	}

	md := SectionDraft(cls, "사용목적", "사용목적", "요약", "", ProfileMarkdown)
	if !strings.Contains(md, "Markdown 형식") {
		t.Fatalf("markdown profile must ask for markdown")
	}
}

func TestSectionDraftCombinedMode(t *testing.T) {
	p := SectionDraft(ClassificationInfo{Code: "A07040.03"}, "", "", "", "", ProfileMarkdown)
	for _, section := range []string{"작용원리", "사용목적", "성능", "사용방법"} {
		if !strings.Contains(p, section) {
			t.Fatalf("combined draft must cover %q", section)
		}
	}
}

func TestSectionDraftTruncatesContext(t *testing.T) {
	long := strings.Repeat("가", ContextSnippetChars+500)
	p := SectionDraft(ClassificationInfo{}, "성능", "성능", long, "", ProfileHTML)
	if strings.Contains(p, long) {
		t.Fatalf("retrieved context must be truncated")
	}
	if !strings.Contains(p, Truncate(long, ContextSnippetChars)) {
		t.Fatalf("truncated context must still be embedded")
	}
}

func TestUserSectionDraftEmbedsUserContent(t *testing.T) {
	cls := ClassificationInfo{Code: "A07040.03", Grade: 2, ItemName: "혈압계"}
	p := UserSectionDraft(cls, "사용목적", "가정용 자동 전자 혈압계입니다.", `grade=2`)

	if !strings.Contains(p, "가정용 자동 전자 혈압계입니다.") {
		t.Fatalf("prompt must embed the user content")
	}
	if !strings.Contains(p, "적용된 메타데이터 필터: grade=2") {
		t.Fatalf("prompt must restate the filter")
	}
	if !strings.Contains(p, "혈압계") {
		t.Fatalf("prompt must name the item")
	}
}

func TestChatPrompt(t *testing.T) {
	p := Chat("사용목적 항목은 어떻게 작성하나요?", "")
	if !strings.Contains(p, "사용목적 항목은 어떻게 작성하나요?") {
		t.Fatalf("prompt must embed the question")
	}
	if !strings.Contains(p, "메타데이터 필터 없음") {
		t.Fatalf("prompt must state the unfiltered scope")
	}
}
