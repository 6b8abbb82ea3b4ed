package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/usecase"
)

type stubDrafts struct {
	draft string
	err   error
	last  usecase.DraftRequest
}

func (s *stubDrafts) GenerateSection(ctx context.Context, req usecase.DraftRequest) (string, error) {
	s.last = req
	return s.draft, s.err
}

type stubChat struct {
	reply string
	err   error
}

func (s *stubChat) Reply(ctx context.Context, message, category string) (string, error) {
	return s.reply, s.err
}

func newTestMux(drafts DraftGenerator, chat ChatResponder) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(drafts, chat, nil).Routes(mux)
	return mux
}

func postJSON(t *testing.T, mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGenerateDraftSuccess(t *testing.T) {
	drafts := &stubDrafts{draft: "<p>초안</p>"}
	mux := newTestMux(drafts, &stubChat{})

	rec := postJSON(t, mux, "/api/generate-draft",
		`{"category":"사용목적","textContent":"내용","grade":2,"itemCode":"A07040.03"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		Draft   string `json:"draft"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Draft != "<p>초안</p>" {
		t.Fatalf("response = %+v", resp)
	}
	// The envelope always carries both fields, null when unused.
	if !strings.Contains(rec.Body.String(), `"error":null`) {
		t.Fatalf("envelope missing explicit null error: %s", rec.Body.String())
	}
	if drafts.last.ItemCode != "A07040.03" || drafts.last.Grade != 2 {
		t.Fatalf("request not forwarded: %+v", drafts.last)
	}
}

func TestGenerateDraftValidationError(t *testing.T) {
	drafts := &stubDrafts{err: domain.Invalid("품목을 선택해주세요.")}
	mux := newTestMux(drafts, &stubChat{})

	rec := postJSON(t, mux, "/api/generate-draft", `{"category":"사용목적","textContent":"내용"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "품목을 선택해주세요.") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestGenerateDraftBackendError(t *testing.T) {
	drafts := &stubDrafts{err: errors.New("backend exploded")}
	mux := newTestMux(drafts, &stubChat{})

	rec := postJSON(t, mux, "/api/generate-draft", `{"category":"사용목적","textContent":"내용","itemCode":"A07040.03"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	// Internal details never leak to the client.
	if strings.Contains(rec.Body.String(), "backend exploded") {
		t.Fatalf("body leaks internals: %s", rec.Body.String())
	}
}

func TestGenerateDraftMalformedJSON(t *testing.T) {
	mux := newTestMux(&stubDrafts{}, &stubChat{})
	rec := postJSON(t, mux, "/api/generate-draft", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	mux := newTestMux(&stubDrafts{}, &stubChat{reply: "<p>답변</p>"})

	rec := postJSON(t, mux, "/api/chat", `{"message":"질문"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Reply   string `json:"reply"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Reply != "<p>답변</p>" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestChatValidationError(t *testing.T) {
	mux := newTestMux(&stubDrafts{}, &stubChat{err: domain.Invalid("메시지를 입력해주세요.")})

	rec := postJSON(t, mux, "/api/chat", `{"message":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "메시지를 입력해주세요.") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	mux := newTestMux(&stubDrafts{}, &stubChat{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
