package ports

import (
	"context"

	"github.com/documedix/documedix/internal/core/domain"
)

// FileService uploads and releases transient request-scoped files.
type FileService interface {
	UploadFile(ctx context.Context, localPath, displayName string) (domain.FileHandle, error)
	DeleteFile(ctx context.Context, name string) error
}

// FileSearchStore manages the remote managed corpus. UploadDocument blocks
// until the remote embedding operation finishes and reports its terminal error.
type FileSearchStore interface {
	Create(ctx context.Context, displayName string) (domain.StoreInfo, error)
	FindByDisplayName(ctx context.Context, displayName string) (domain.StoreInfo, error)
	Get(ctx context.Context, name string) (domain.StoreInfo, error)
	List(ctx context.Context) ([]domain.StoreInfo, error)
	Delete(ctx context.Context, name string, force bool) error
	ListDocuments(ctx context.Context, storeName string) ([]domain.StoreDocument, error)
	UploadDocument(ctx context.Context, storeName, localPath, displayName string, metadata []domain.MetadataEntry) error
}

// Generator performs one retrieval-augmented generation call.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (string, error)
}

// ScratchStore owns the local temp copies made for uploads. Remove is
// best-effort and never fails the surrounding operation.
type ScratchStore interface {
	CopyFile(src string) (string, error)
	WriteText(text, ext string) (string, error)
	Remove(path string)
}
