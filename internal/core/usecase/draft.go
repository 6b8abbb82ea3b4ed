package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/ports"
	"github.com/documedix/documedix/internal/core/prompt"
)

// DraftService is the interactive single-section path: the user already chose
// the section and item code, so classification is skipped and one generation
// call produces an HTML draft from the typed-in product description.
type DraftService struct {
	files     ports.FileService
	gen       ports.Generator
	scratch   ports.ScratchStore
	storeName string
	resolve   ItemResolver
	logger    *slog.Logger
}

func NewDraftService(files ports.FileService, gen ports.Generator, scratch ports.ScratchStore, storeName string, resolve ItemResolver, logger *slog.Logger) *DraftService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftService{
		files:     files,
		gen:       gen,
		scratch:   scratch,
		storeName: storeName,
		resolve:   resolve,
		logger:    logger,
	}
}

// DraftRequest carries the form fields of one interactive draft request.
// Category accepts either a UI display label or a canonical category value.
type DraftRequest struct {
	Category    string
	TextContent string
	Grade       int
	ItemCode    string
}

// GenerateSection validates the request, registers the user text as a
// transient file and produces the HTML section draft. The transient file and
// its local scratch copy are always released, also on failure.
func (s *DraftService) GenerateSection(ctx context.Context, req DraftRequest) (string, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return "", domain.Invalid("카테고리를 선택해주세요.")
	}
	content := strings.TrimSpace(req.TextContent)
	if content == "" {
		return "", domain.Invalid("내용을 입력해주세요.")
	}
	code := strings.TrimSpace(req.ItemCode)
	if code == "" {
		return "", domain.Invalid("품목을 선택해주세요.")
	}

	grade := req.Grade
	if grade <= 0 {
		grade = 2
	}

	itemName := domain.FallbackItemName(code, grade)
	if s.resolve != nil {
		if name, _, ok := s.resolve(code); ok {
			itemName = name
		}
	}

	// Unknown labels pass through unchanged so a new UI section does not need
	// a server release to work, it just loses the section-scoped filter title.
	section, known := domain.CategoryFromDisplayName(category)
	sectionTitle := category
	if known {
		sectionTitle = section.Title()
	}

	scratchPath, err := s.scratch.WriteText(content, ".txt")
	if err != nil {
		return "", domain.WrapError(domain.ErrTemporary, "write user input", err)
	}
	defer s.scratch.Remove(scratchPath)

	handle, err := s.files.UploadFile(ctx, scratchPath, category+"_사용자입력.txt")
	if err != nil {
		return "", domain.WrapError(domain.ErrTemporary, "upload user input", err)
	}
	defer func() {
		if err := s.files.DeleteFile(context.WithoutCancel(ctx), handle.Name); err != nil {
			s.logger.Warn("transient_file_cleanup_failed", "file", handle.Name, "error", err)
		}
	}()

	cls := domain.ClassificationResult{ClassificationCode: &code, Grade: &grade}
	filter := domain.BuildMetadataFilter(cls, section)
	info := prompt.ClassificationInfo{Code: code, Grade: grade, ItemName: itemName}

	draft, err := s.gen.Generate(ctx, domain.GenerateRequest{
		Operation:      "draft",
		Prompt:         prompt.UserSectionDraft(info, sectionTitle, content, filter),
		Files:          []domain.FileHandle{handle},
		StoreName:      s.storeName,
		MetadataFilter: filter,
	})
	if err != nil {
		return "", err
	}
	return draft, nil
}
