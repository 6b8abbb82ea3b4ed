// Command pipeline runs the full classify → retrieve → generate flow over a
// set of local product files and writes a markdown draft.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/documedix/documedix/internal/bootstrap"
	"github.com/documedix/documedix/internal/config"
	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/prompt"
	"github.com/documedix/documedix/internal/core/usecase"
	"github.com/documedix/documedix/internal/infrastructure/extractor/pdftext"
)

func main() {
	out := flag.String("out", "draft.md", "output markdown file")
	categoriesFlag := flag.String("categories", "", "comma-separated section names; empty groups input files by filename keywords")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatalf("usage: pipeline [-out draft.md] [-categories ...] <file> [file...]")
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, "pipeline", cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	categories, err := resolveCategories(app, *categoriesFlag, paths)
	if err != nil {
		log.Fatalf("%v", err)
	}

	handles := make([]domain.FileHandle, 0, len(paths))
	defer func() {
		cleanupCtx := context.WithoutCancel(ctx)
		for _, handle := range handles {
			if err := app.Files.DeleteFile(cleanupCtx, handle.Name); err != nil {
				app.Logger.Warn("transient_file_cleanup_failed", "file", handle.Name, "error", err)
			}
		}
	}()
	for _, path := range paths {
		handle, err := app.Files.UploadFile(ctx, path, filepath.Base(path))
		if err != nil {
			log.Fatalf("upload %s: %v", path, err)
		}
		handles = append(handles, handle)
	}

	result, err := app.Pipeline.Run(ctx, usecase.RunInput{
		Files:      handles,
		PathHint:   paths[0],
		Categories: categories,
		Profile:    prompt.ProfileMarkdown,
	})
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	if err := os.WriteFile(*out, []byte(result.AssembleMarkdown()), 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
	app.Logger.Info("draft_written",
		"out", *out,
		"sections", len(result.Drafts),
		"classification", string(result.Classification.Kind),
	)
}

// resolveCategories honors an explicit -categories list, otherwise groups the
// input files by filename keyword (peeking into PDF content as a second
// chance). No match at all falls back to the combined four-section draft.
func resolveCategories(app *bootstrap.App, flagValue string, paths []string) ([]domain.Category, error) {
	if flagValue != "" {
		var categories []domain.Category
		for _, name := range strings.Split(flagValue, ",") {
			category, ok := domain.CategoryFromDisplayName(strings.TrimSpace(name))
			if !ok {
				return nil, fmt.Errorf("unknown category %q", strings.TrimSpace(name))
			}
			categories = append(categories, category)
		}
		return categories, nil
	}

	grouped := app.Keywords.GroupFilesByCategory(paths, peekPDF)
	for _, path := range grouped.Unclassified {
		app.Logger.Warn("file_not_matched_to_category", "path", path)
	}
	return grouped.OrderedCategories(), nil
}

func peekPDF(path string) string {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ""
	}
	excerpt, err := pdftext.Peek(path)
	if err != nil {
		return ""
	}
	return excerpt
}
