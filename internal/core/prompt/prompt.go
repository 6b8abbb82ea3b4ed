// Package prompt renders the fixed instruction templates sent to the
// generation backend. Builders are pure string construction: no I/O and no
// credentials ever appear in a template. Every template that applies a
// metadata filter restates it so a reviewer can audit the retrieval scope.
package prompt

import (
	"fmt"
	"strings"
)

// ContextSnippetChars caps how much retrieved-context text is embedded into a
// downstream prompt. Deliberate cost control, not a truncation bug.
const ContextSnippetChars = 1000

// DraftProfile selects the presentation of generated drafts. The API path
// needs HTML with real tables; the batch path writes markdown sections.
type DraftProfile int

const (
	ProfileHTML DraftProfile = iota
	ProfileMarkdown
)

// Truncate cuts s to at most limit characters, rune-safe.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// htmlTableRules is shared by every HTML-profile template. Markdown pipe
// tables break the downstream renderer, so they are explicitly forbidden.
const htmlTableRules = `**[출력 형식 - 매우 중요]**
1. HTML 형식으로 작성하세요. 제목은 제외하고 본문만 작성하세요.
2. 표가 필요한 경우 반드시 HTML 테이블 형식을 사용하세요:
   - <table border="1" cellpadding="5" cellspacing="0" style="border-collapse: collapse; width: 100%;"> 형식 사용
   - <thead>, <tbody>, <th>, <td> 태그 사용
3. 마크다운 테이블(| 기호 사용)은 절대 사용하지 마세요.
4. 일반 텍스트 형식의 표도 사용하지 마세요.
5. 구조화된 정보는 항상 HTML 테이블로 표현하세요.`

func filterAudit(filter string) string {
	if filter == "" {
		return "**[검색 범위]**\n메타데이터 필터 없음 (전체 문서 검색)"
	}
	return "**[검색 범위]**\n적용된 메타데이터 필터: " + filter
}

// Classification asks for a strictly structured stage-1 result.
func Classification() string {
	return `당신은 의료기기 인허가 전문가입니다.
제공된 사용자의 제품 설명서를 분석하고, File Search Store에 있는
의료기기 품목 분류 관련 문서를 참조하여 다음을 결정하세요.

**분석 항목:**
1. 이 제품에 가장 적합한 '품목명'과 '분류번호(예: A07040.03)'는 무엇입니까?
2. 이 제품의 '등급(1~4)'은 무엇입니까?
3. 판단 근거는 무엇입니까?

**중요: 반드시 아래 JSON 형식으로만 출력하세요. 다른 설명이나 텍스트를 추가하지 마세요.**

` + "```json" + `
{
  "classification_code": "A00000.00",
  "grade": 2,
  "item_name": "품목명",
  "reason": "판단 근거 요약"
}
` + "```"
}

// ClassificationInfo is the prior-stage state interpolated into stage-2/3
// templates. Empty strings and zero grade mean the field is unknown and the
// matching constraint is omitted.
type ClassificationInfo struct {
	Code     string
	Grade    int
	ItemName string
}

func (c ClassificationInfo) constraints(category string) string {
	var b strings.Builder
	b.WriteString("**중요: 다음 조건에 정확히 일치하는 문서만 검색하고, 일치하지 않는 문서는 참조하지 마세요:**\n")
	if c.Code != "" {
		fmt.Fprintf(&b, "- 품목코드: %s\n", c.Code)
	}
	if c.Grade > 0 {
		fmt.Fprintf(&b, "- 등급: %d등급\n", c.Grade)
	}
	if category != "" {
		fmt.Fprintf(&b, "- 항목: %s\n", category)
	}
	if c.Code == "" && c.Grade == 0 && category == "" {
		return "**참고: 품목 분류가 확정되지 않아 전체 문서를 대상으로 검색합니다.**\n"
	}
	return b.String()
}

// PrecedentSearch builds the stage-2 retrieval prompt. category may be empty
// for the combined, all-sections search.
func PrecedentSearch(cls ClassificationInfo, category string, filter string) string {
	scope := "유사한 기허가 문서"
	if category != "" {
		scope = fmt.Sprintf("'%s' 항목에 해당하는 유사한 기허가 문서", category)
	}

	return fmt.Sprintf(`제공된 제품 문서를 기반으로, File Search Store에서 %s를 찾아주세요.

%s
**찾아야 할 내용:**
1. 해당 품목의 기술문서 (작용원리, 사용목적, 성능, 사용방법)
2. 해당 항목에 대한 식약처 작성 가이드라인
3. 합격한 사례의 문서 구조와 표현 방식

%s

검색된 문서의 주요 내용을 요약해주세요.`, scope, cls.constraints(category), filterAudit(filter))
}

// SectionDraft builds the stage-3 generation prompt for one section, or for
// the combined four-section draft when category is empty. similar is the
// stage-2 summary, already expected to be truncated by the caller.
func SectionDraft(cls ClassificationInfo, category, sectionTitle, similar, filter string, profile DraftProfile) string {
	itemName := cls.ItemName
	if itemName == "" {
		itemName = "의료기기"
	}

	var task, format string
	if category != "" {
		task = fmt.Sprintf("사용자의 제품 파일을 바탕으로 '의료기기 제조 허가 신청서'의 '%s' 항목을 작성하세요.", sectionTitle)
		if profile == ProfileHTML {
			format = htmlTableRules
		} else {
			format = fmt.Sprintf("**[출력 형식]**\nMarkdown 형식으로 작성하세요.\n\n---\n\n## %s\n\n(작성 내용)\n\n---", sectionTitle)
		}
	} else {
		task = `사용자의 제품 파일을 바탕으로 '의료기기 제조 허가 신청서'의 다음 항목을 작성하세요:
1. **작용원리** (제품이 어떻게 작동하는지)
2. **사용목적** (제품의 의료적 용도)
3. **성능** (주요 기능 및 사양)
4. **사용방법** (사용 절차 및 주의사항)`
		if profile == ProfileHTML {
			format = htmlTableRules
		} else {
			format = `**[출력 형식]**
Markdown 형식으로 각 항목을 명확하게 구분하여 작성하세요.

---

# 의료기기 기술문서 초안

## 1. 작용원리
## 2. 사용목적
## 3. 성능
## 4. 사용방법

---`
		}
	}

	return fmt.Sprintf(`당신은 '도큐메딕(Documedix)' AI 솔루션입니다.

**[임무]**
%s

**[참조 지침]**
1. File Search를 통해 품목코드 '%s' (%s)에 해당하는 기존 합격 문서들의 스타일과 용어를 정확히 모방하세요.
2. 식약처 고시나 가이드라인 문서가 검색되면 해당 작성 지침을 반드시 준수하세요.
3. 기존 합격 사례의 문장 구조, 전문 용어, 표현 방식을 참고하세요.
4. 사용자가 제공한 제품 정보를 최대한 반영하되, 누락된 정보는 합격 사례를 참고하여 보완하세요.

%s

**[검색된 유사 문서 정보]**
%s

%s`, task, cls.Code, itemName, filterAudit(filter), Truncate(similar, ContextSnippetChars), format)
}

// UserSectionDraft builds the facade's single-call prompt: the user already
// selected the item code and grade, so classification is skipped and the
// user-provided text is embedded directly.
func UserSectionDraft(cls ClassificationInfo, sectionTitle, userContent, filter string) string {
	return fmt.Sprintf(`당신은 '도큐메딕(Documedix)' AI 솔루션입니다.

**[제품 정보]**
- 등급: %d등급
- 품목코드: %s
- 품목명: %s

**[임무]**
사용자가 제공한 제품 정보를 바탕으로 '의료기기 제조 허가 신청서'의 '%s' 항목을 작성하세요.

**[참조 지침]**
1. File Search를 통해 같은 품목코드 또는 유사한 품목코드(같은 대분류)의 승인 문서를 우선적으로 참조하세요.
2. 식약처 고시나 가이드라인 문서가 검색되면 해당 작성 지침을 반드시 준수하세요.
3. 기존 합격 사례의 문장 구조, 전문 용어, 표현 방식을 참고하세요.
4. 사용자가 제공한 제품 정보를 최대한 반영하되, 누락된 정보는 합격 사례를 참고하여 보완하세요.

%s

**[사용자 제공 정보]**
%s

%s`, cls.Grade, cls.Code, cls.ItemName, sectionTitle, filterAudit(filter), userContent, htmlTableRules)
}

// Chat builds the single-shot assistant prompt.
func Chat(message, filter string) string {
	return fmt.Sprintf(`당신은 의료기기 제조 허가 신청서 작성을 돕는 전문 AI 어시스턴트입니다.

**[역할]**
- 의료기기 제조 허가 신청서 작성에 대한 질문에 답변합니다.
- File Search를 통해 관련 규정, 가이드라인, 합격 사례를 참조합니다.
- 명확하고 실용적인 답변을 제공합니다.

%s

**[사용자 질문]**
%s

**[답변 지침]**
1. 간결하고 이해하기 쉽게 답변하세요.
2. 관련 규정이나 사례가 있으면 참조하세요.
3. 필요시 예시를 들어 설명하세요.
4. 답변은 HTML 형식으로 작성하되, 가독성 좋은 구조를 유지하세요.

%s`, filterAudit(filter), message, htmlTableRules)
}
