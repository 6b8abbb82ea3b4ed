package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/ports"
	"github.com/documedix/documedix/internal/core/prompt"
)

// ChatService answers free-form questions against the corpus. An optional
// category narrows retrieval to one document section.
type ChatService struct {
	gen       ports.Generator
	storeName string
	logger    *slog.Logger
}

func NewChatService(gen ports.Generator, storeName string, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{gen: gen, storeName: storeName, logger: logger}
}

func (s *ChatService) Reply(ctx context.Context, message, category string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.Invalid("메시지를 입력해주세요.")
	}

	filter := ""
	if section, ok := domain.CategoryFromDisplayName(strings.TrimSpace(category)); ok {
		filter = domain.BuildMetadataFilter(domain.ClassificationResult{}, section)
	}

	return s.gen.Generate(ctx, domain.GenerateRequest{
		Operation:      "chat",
		Prompt:         prompt.Chat(message, filter),
		StoreName:      s.storeName,
		MetadataFilter: filter,
	})
}
