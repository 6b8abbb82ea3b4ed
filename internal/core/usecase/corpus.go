package usecase

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/ports"
)

// corpusExtensions are the file types the store can index.
var corpusExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// CorpusUploader walks a local precedent tree and registers its documents in
// the managed file-search store with path-derived metadata. Uploads are
// idempotent: documents whose display name already exists are skipped.
type CorpusUploader struct {
	store       ports.FileSearchStore
	scratch     ports.ScratchStore
	displayName string
	logger      *slog.Logger
}

func NewCorpusUploader(store ports.FileSearchStore, scratch ports.ScratchStore, displayName string, logger *slog.Logger) *CorpusUploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CorpusUploader{
		store:       store,
		scratch:     scratch,
		displayName: displayName,
		logger:      logger,
	}
}

// EnsureStore returns the configured store, creating it on first use.
func (u *CorpusUploader) EnsureStore(ctx context.Context) (domain.StoreInfo, error) {
	info, err := u.store.FindByDisplayName(ctx, u.displayName)
	if err == nil {
		return info, nil
	}
	if !domain.IsKind(err, domain.ErrStoreNotFound) {
		return domain.StoreInfo{}, err
	}

	u.logger.Info("creating_store", "display_name", u.displayName)
	return u.store.Create(ctx, u.displayName)
}

type UploadSummary struct {
	Uploaded int
	Skipped  int
	Failed   int
}

// UploadTree uploads every supported file under root. Files whose path yields
// no metadata are skipped: without classification keys they would pollute
// filtered retrieval.
func (u *CorpusUploader) UploadTree(ctx context.Context, root string) (UploadSummary, error) {
	return u.upload(ctx, root, func(path, name string) []domain.MetadataEntry {
		return domain.ExtractPathMetadata(path, root)
	}, true)
}

// UploadMaster uploads the shared reference set (codebooks, 고시, guidelines).
// These carry document-type metadata instead of classification keys.
func (u *CorpusUploader) UploadMaster(ctx context.Context, dir string) (UploadSummary, error) {
	return u.upload(ctx, dir, func(path, name string) []domain.MetadataEntry {
		return domain.MasterMetadata(name)
	}, false)
}

func (u *CorpusUploader) upload(ctx context.Context, root string, metadataFor func(path, name string) []domain.MetadataEntry, requireMetadata bool) (UploadSummary, error) {
	var summary UploadSummary

	info, err := u.EnsureStore(ctx)
	if err != nil {
		return summary, err
	}

	existing := make(map[string]bool)
	documents, err := u.store.ListDocuments(ctx, info.Name)
	if err != nil {
		// Degrade to re-upload-everything rather than abort the batch.
		u.logger.Warn("list_documents_failed", "store", info.Name, "error", err)
	}
	for _, doc := range documents {
		existing[doc.DisplayName] = true
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !corpusExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		name := d.Name()
		if existing[name] {
			summary.Skipped++
			return nil
		}

		metadata := metadataFor(path, name)
		if requireMetadata && len(metadata) == 0 {
			u.logger.Warn("skipping_file_without_metadata", "path", path)
			summary.Skipped++
			return nil
		}

		if err := u.uploadOne(ctx, info.Name, path, name, metadata); err != nil {
			u.logger.Error("document_upload_failed", "path", path, "error", err)
			summary.Failed++
			return nil
		}
		existing[name] = true
		summary.Uploaded++
		u.logger.Info("document_uploaded", "name", name, "metadata_keys", len(metadata))
		return nil
	})
	if walkErr != nil {
		return summary, walkErr
	}
	return summary, nil
}

func (u *CorpusUploader) uploadOne(ctx context.Context, storeName, path, displayName string, metadata []domain.MetadataEntry) error {
	scratchPath, err := u.scratch.CopyFile(path)
	if err != nil {
		return err
	}
	defer u.scratch.Remove(scratchPath)

	return u.store.UploadDocument(ctx, storeName, scratchPath, displayName, metadata)
}
