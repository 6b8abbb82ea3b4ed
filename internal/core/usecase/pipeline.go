// Package usecase contains the application services: the three-stage draft
// pipeline, the single-call draft facade, the chat assistant and the corpus
// uploader.
package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/ports"
	"github.com/documedix/documedix/internal/core/prompt"
)

// ItemResolver resolves a classification code to its registered item name and
// grade, typically backed by the 별표1 workbook. May be nil.
type ItemResolver func(code string) (name string, grade int, ok bool)

// DraftPipeline runs the classify → retrieve → generate flow over uploaded
// product files. Each stage degrades independently: a failed classification
// falls back to path parsing, a failed retrieval continues with an empty
// precedent summary, and a failed section generation drops only that section.
type DraftPipeline struct {
	gen       ports.Generator
	storeName string
	resolve   ItemResolver
	logger    *slog.Logger
}

func NewDraftPipeline(gen ports.Generator, storeName string, resolve ItemResolver, logger *slog.Logger) *DraftPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftPipeline{gen: gen, storeName: storeName, resolve: resolve, logger: logger}
}

// Classify runs stage 1. pathHint is the original path of one input file and
// feeds the directory-convention fallback when the model response is not
// parseable JSON.
func (p *DraftPipeline) Classify(ctx context.Context, files []domain.FileHandle, pathHint string) domain.ClassificationOutcome {
	text, err := p.gen.Generate(ctx, domain.GenerateRequest{
		Operation: "classify",
		Prompt:    prompt.Classification(),
		Files:     files,
		StoreName: p.storeName,
		JSON:      true,
	})
	if err != nil {
		p.logger.Warn("classification_call_failed", "error", err)
		return p.classifyFallback(pathHint)
	}

	result, err := domain.ParseClassificationResponse(text)
	if err != nil {
		p.logger.Warn("classification_parse_failed", "error", err)
		return p.classifyFallback(pathHint)
	}
	return domain.ClassificationOutcome{Kind: domain.OutcomeStructured, Result: p.enrich(result)}
}

func (p *DraftPipeline) classifyFallback(pathHint string) domain.ClassificationOutcome {
	if result, ok := domain.ClassificationFromPath(pathHint); ok {
		p.logger.Info("classification_recovered_from_path", "path", pathHint, "code", result.Code())
		return domain.ClassificationOutcome{Kind: domain.OutcomeDegraded, Result: p.enrich(result)}
	}
	p.logger.Warn("classification_unrecoverable", "path", pathHint)
	return domain.ClassificationOutcome{Kind: domain.OutcomeUnrecoverable}
}

// enrich fills in the registered item name from the codebook when the model
// (or the path fallback) produced only a code.
func (p *DraftPipeline) enrich(result domain.ClassificationResult) domain.ClassificationResult {
	if p.resolve == nil || result.Code() == "" {
		return result
	}
	name, grade, ok := p.resolve(result.Code())
	if !ok {
		return result
	}
	if result.ItemName == nil || *result.ItemName == "" || *result.ItemName == "추출된 품목" {
		result.ItemName = &name
	}
	if result.Grade == nil && grade > 0 {
		result.Grade = &grade
	}
	return result
}

// Retrieve runs stage 2 for one section. category may be empty for the
// combined all-sections search.
func (p *DraftPipeline) Retrieve(ctx context.Context, files []domain.FileHandle, cls domain.ClassificationResult, category domain.Category) (string, error) {
	filter := domain.BuildMetadataFilter(cls, category)
	return p.gen.Generate(ctx, domain.GenerateRequest{
		Operation:      "search",
		Prompt:         prompt.PrecedentSearch(promptInfo(cls), string(category), filter),
		Files:          files,
		StoreName:      p.storeName,
		MetadataFilter: filter,
	})
}

// GenerateSection runs stage 3 for one section, or for the combined draft when
// category is empty.
func (p *DraftPipeline) GenerateSection(ctx context.Context, files []domain.FileHandle, cls domain.ClassificationResult, category domain.Category, similar string, profile prompt.DraftProfile) (string, error) {
	filter := domain.BuildMetadataFilter(cls, category)
	return p.gen.Generate(ctx, domain.GenerateRequest{
		Operation:      "draft",
		Prompt:         prompt.SectionDraft(promptInfo(cls), string(category), category.Title(), similar, filter, profile),
		Files:          files,
		StoreName:      p.storeName,
		MetadataFilter: filter,
	})
}

// RunInput describes one full pipeline run. When Categories is empty a single
// combined draft covering the four core sections is produced instead of
// per-section drafts.
type RunInput struct {
	Files      []domain.FileHandle
	PathHint   string
	Categories []domain.Category
	Profile    prompt.DraftProfile
}

type RunResult struct {
	Classification domain.ClassificationOutcome
	Drafts         map[domain.Category]string
	Combined       string
}

// Run executes the full pipeline. Per-section failures are logged and skipped;
// only context cancellation aborts the run.
func (p *DraftPipeline) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	outcome := p.Classify(ctx, in.Files, in.PathHint)
	cls := outcome.Result
	p.logger.Info("classification_done",
		"kind", string(outcome.Kind),
		"code", cls.Code(),
		"grade", cls.GradeValue(),
		"item_name", cls.Name(),
	)

	result := &RunResult{
		Classification: outcome,
		Drafts:         make(map[domain.Category]string),
	}

	if len(in.Categories) == 0 {
		draft, err := p.runSection(ctx, in.Files, cls, "", in.Profile)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger.Error("combined_draft_failed", "error", err)
			return result, nil
		}
		result.Combined = draft
		return result, nil
	}

	for _, category := range in.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		draft, err := p.runSection(ctx, in.Files, cls, category, in.Profile)
		if err != nil {
			p.logger.Error("section_draft_failed", "category", string(category), "error", err)
			continue
		}
		result.Drafts[category] = draft
	}
	return result, nil
}

func (p *DraftPipeline) runSection(ctx context.Context, files []domain.FileHandle, cls domain.ClassificationResult, category domain.Category, profile prompt.DraftProfile) (string, error) {
	similar, err := p.Retrieve(ctx, files, cls, category)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		p.logger.Warn("precedent_search_failed", "category", string(category), "error", err)
		similar = ""
	}
	return p.GenerateSection(ctx, files, cls, category, prompt.Truncate(similar, prompt.ContextSnippetChars), profile)
}

// AssembleMarkdown renders the batch output: a classification header followed
// by every produced section in canonical order.
func (r *RunResult) AssembleMarkdown() string {
	var b strings.Builder
	b.WriteString("# 의료기기 제조 허가 신청서 초안\n\n")
	b.WriteString("## 품목 분류\n\n")

	cls := r.Classification.Result
	writeClassificationLine(&b, "분류번호", cls.Code())
	grade := ""
	if g := cls.GradeValue(); g > 0 {
		grade = strconv.Itoa(g) + "등급"
	}
	writeClassificationLine(&b, "등급", grade)
	writeClassificationLine(&b, "품목명", cls.Name())
	if cls.Reason != nil && *cls.Reason != "" {
		writeClassificationLine(&b, "판단 근거", *cls.Reason)
	}
	b.WriteString("\n")

	if r.Combined != "" {
		b.WriteString(r.Combined)
		b.WriteString("\n")
		return b.String()
	}

	for _, category := range domain.Categories {
		draft, ok := r.Drafts[category]
		if !ok {
			continue
		}
		b.WriteString("## ")
		b.WriteString(category.Title())
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(draft))
		b.WriteString("\n\n")
	}
	return b.String()
}

func writeClassificationLine(b *strings.Builder, label, value string) {
	if value == "" {
		value = "미확정"
	}
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func promptInfo(cls domain.ClassificationResult) prompt.ClassificationInfo {
	return prompt.ClassificationInfo{
		Code:     cls.Code(),
		Grade:    cls.GradeValue(),
		ItemName: cls.Name(),
	}
}
