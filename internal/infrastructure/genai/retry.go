package genai

import (
	"context"

	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/ports"
	"github.com/documedix/documedix/internal/infrastructure/resilience"
)

// NewResilientStore wraps a FileSearchStore so document uploads retry
// transient failures behind a circuit breaker. Read and management calls pass
// through untouched.
func NewResilientStore(next ports.FileSearchStore, exec *resilience.Executor) ports.FileSearchStore {
	return &resilientStore{next: next, exec: exec}
}

type resilientStore struct {
	next ports.FileSearchStore
	exec *resilience.Executor
}

func (s *resilientStore) Create(ctx context.Context, displayName string) (domain.StoreInfo, error) {
	return s.next.Create(ctx, displayName)
}

func (s *resilientStore) FindByDisplayName(ctx context.Context, displayName string) (domain.StoreInfo, error) {
	return s.next.FindByDisplayName(ctx, displayName)
}

func (s *resilientStore) Get(ctx context.Context, name string) (domain.StoreInfo, error) {
	return s.next.Get(ctx, name)
}

func (s *resilientStore) List(ctx context.Context) ([]domain.StoreInfo, error) {
	return s.next.List(ctx)
}

func (s *resilientStore) Delete(ctx context.Context, name string, force bool) error {
	return s.next.Delete(ctx, name, force)
}

func (s *resilientStore) ListDocuments(ctx context.Context, storeName string) ([]domain.StoreDocument, error) {
	return s.next.ListDocuments(ctx, storeName)
}

func (s *resilientStore) UploadDocument(ctx context.Context, storeName, localPath, displayName string, metadata []domain.MetadataEntry) error {
	return s.exec.Execute(ctx, "store_upload", func(ctx context.Context) error {
		return s.next.UploadDocument(ctx, storeName, localPath, displayName, metadata)
	}, ClassifyError)
}

// NewResilientFileService retries transient-file uploads the same way.
func NewResilientFileService(next ports.FileService, exec *resilience.Executor) ports.FileService {
	return &resilientFileService{next: next, exec: exec}
}

type resilientFileService struct {
	next ports.FileService
	exec *resilience.Executor
}

func (s *resilientFileService) UploadFile(ctx context.Context, localPath, displayName string) (domain.FileHandle, error) {
	var handle domain.FileHandle
	err := s.exec.Execute(ctx, "file_upload", func(ctx context.Context) error {
		var err error
		handle, err = s.next.UploadFile(ctx, localPath, displayName)
		return err
	}, ClassifyError)
	return handle, err
}

func (s *resilientFileService) DeleteFile(ctx context.Context, name string) error {
	return s.next.DeleteFile(ctx, name)
}
