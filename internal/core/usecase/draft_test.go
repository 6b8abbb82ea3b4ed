package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/documedix/documedix/internal/core/domain"
)

type fakeFileService struct {
	uploadErr error
	uploaded  []string
	deleted   []string
}

func (f *fakeFileService) UploadFile(ctx context.Context, localPath, displayName string) (domain.FileHandle, error) {
	if f.uploadErr != nil {
		return domain.FileHandle{}, f.uploadErr
	}
	f.uploaded = append(f.uploaded, displayName)
	return domain.FileHandle{Name: "files/abc", URI: "https://files/abc", DisplayName: displayName}, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

type fakeScratch struct {
	written []string
	removed []string
}

func (s *fakeScratch) CopyFile(src string) (string, error) {
	path := "/scratch/copy_" + src
	s.written = append(s.written, path)
	return path, nil
}

func (s *fakeScratch) WriteText(text, ext string) (string, error) {
	path := "/scratch/user_input" + ext
	s.written = append(s.written, path)
	return path, nil
}

func (s *fakeScratch) Remove(path string) {
	s.removed = append(s.removed, path)
}

func newDraftService(gen *fakeGenerator, files *fakeFileService, scratch *fakeScratch) *DraftService {
	return NewDraftService(files, gen, scratch, "fileSearchStores/test", nil, nil)
}

func TestGenerateSectionValidation(t *testing.T) {
	service := newDraftService(&fakeGenerator{}, &fakeFileService{}, &fakeScratch{})

	tests := []struct {
		name string
		req  DraftRequest
		want string
	}{
		{"missing category", DraftRequest{TextContent: "내용", ItemCode: "A07040.03"}, "카테고리를 선택해주세요."},
		{"missing content", DraftRequest{Category: "사용목적", ItemCode: "A07040.03"}, "내용을 입력해주세요."},
		{"missing item code", DraftRequest{Category: "사용목적", TextContent: "내용"}, "품목을 선택해주세요."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.GenerateSection(context.Background(), tt.req)
			if err == nil || !domain.IsKind(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid-input error, got %v", err)
			}
			if err.Error() != tt.want {
				t.Fatalf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestGenerateSectionHappyPath(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{"draft": "<p>사용목적 초안</p>"}}
	files := &fakeFileService{}
	scratch := &fakeScratch{}
	service := newDraftService(gen, files, scratch)

	draft, err := service.GenerateSection(context.Background(), DraftRequest{
		Category:    "사용목적",
		TextContent: "가정용 전자 혈압계",
		Grade:       2,
		ItemCode:    "A07040.03",
	})
	if err != nil {
		t.Fatalf("GenerateSection() error = %v", err)
	}
	if draft != "<p>사용목적 초안</p>" {
		t.Fatalf("draft = %q", draft)
	}

	if len(files.uploaded) != 1 || files.uploaded[0] != "사용목적_사용자입력.txt" {
		t.Fatalf("uploaded = %v", files.uploaded)
	}
	// Both the remote file and the local scratch copy are released.
	if len(files.deleted) != 1 || files.deleted[0] != "files/abc" {
		t.Fatalf("deleted = %v", files.deleted)
	}
	if len(scratch.removed) != 1 {
		t.Fatalf("scratch removed = %v", scratch.removed)
	}

	req := gen.requests[0]
	want := `classification_number="A07040.03" AND grade=2 AND document_section:"사용목적"`
	if req.MetadataFilter != want {
		t.Fatalf("filter = %q", req.MetadataFilter)
	}
	if len(req.Files) != 1 || req.Files[0].Name != "files/abc" {
		t.Fatalf("request files = %v", req.Files)
	}
	if !strings.Contains(req.Prompt, "가정용 전자 혈압계") {
		t.Fatalf("prompt must embed the user content")
	}
}

func TestGenerateSectionDefaultsGrade(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{"draft": "ok"}}
	service := newDraftService(gen, &fakeFileService{}, &fakeScratch{})

	if _, err := service.GenerateSection(context.Background(), DraftRequest{
		Category:    "성능",
		TextContent: "내용",
		ItemCode:    "B12345.01",
	}); err != nil {
		t.Fatalf("GenerateSection() error = %v", err)
	}
	if !strings.Contains(gen.requests[0].MetadataFilter, "grade=2") {
		t.Fatalf("filter = %q", gen.requests[0].MetadataFilter)
	}
}

func TestGenerateSectionCleansUpOnGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{failures: map[string]error{"draft": errors.New("backend down")}}
	files := &fakeFileService{}
	scratch := &fakeScratch{}
	service := newDraftService(gen, files, scratch)

	_, err := service.GenerateSection(context.Background(), DraftRequest{
		Category:    "사용목적",
		TextContent: "내용",
		ItemCode:    "A07040.03",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(files.deleted) != 1 {
		t.Fatalf("remote file must be deleted on failure, deleted = %v", files.deleted)
	}
	if len(scratch.removed) != 1 {
		t.Fatalf("scratch copy must be removed on failure")
	}
}

func TestGenerateSectionResolvesItemName(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{"draft": "ok"}}
	resolve := func(code string) (string, int, bool) { return "전자식 혈압계", 2, true }
	service := NewDraftService(&fakeFileService{}, gen, &fakeScratch{}, "fileSearchStores/test", resolve, nil)

	if _, err := service.GenerateSection(context.Background(), DraftRequest{
		Category:    "사용목적",
		TextContent: "내용",
		ItemCode:    "A07040.03",
	}); err != nil {
		t.Fatalf("GenerateSection() error = %v", err)
	}
	if !strings.Contains(gen.requests[0].Prompt, "전자식 혈압계") {
		t.Fatalf("prompt must carry the resolved item name")
	}
}

func TestGenerateSectionUnknownCategoryPassesThrough(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{"draft": "ok"}}
	service := newDraftService(gen, &fakeFileService{}, &fakeScratch{})

	if _, err := service.GenerateSection(context.Background(), DraftRequest{
		Category:    "새로운항목",
		TextContent: "내용",
		ItemCode:    "A07040.03",
	}); err != nil {
		t.Fatalf("GenerateSection() error = %v", err)
	}
	if strings.Contains(gen.requests[0].MetadataFilter, "document_section") {
		t.Fatalf("unknown category must not add a section filter, got %q", gen.requests[0].MetadataFilter)
	}
	if !strings.Contains(gen.requests[0].Prompt, "새로운항목") {
		t.Fatalf("prompt must still carry the raw section label")
	}
}
