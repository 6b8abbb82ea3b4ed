// Package genai is a REST client for the generative-language API: transient
// file uploads, file-search store management and retrieval-augmented
// generation. The service is treated as an opaque remote capability; observed
// generation latency ranges from sub-second to tens of seconds, so every call
// takes a context and nothing here assumes it returns quickly.
package genai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/documedix/documedix/internal/core/domain"
)

type Client struct {
	baseURL      string
	apiKey       string
	model        string
	pollInterval time.Duration
	httpClient   *http.Client
}

type Option func(*Client)

// WithPollInterval overrides how often pending upload operations are polled.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func New(baseURL, apiKey, model string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		model:        model,
		pollInterval: 10 * time.Second,
		httpClient:   &http.Client{Timeout: 180 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fileResource struct {
	Name        string `json:"name"`
	URI         string `json:"uri"`
	DisplayName string `json:"displayName"`
	MimeType    string `json:"mimeType"`
}

// UploadFile registers a transient file with the Files API. The returned
// handle must be deleted by the caller once the request that owns it is done.
func (c *Client) UploadFile(ctx context.Context, localPath, displayName string) (domain.FileHandle, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return domain.FileHandle{}, fmt.Errorf("open upload source: %w", err)
	}
	defer f.Close()

	metadata := map[string]any{
		"file": map[string]any{"displayName": displayName},
	}
	var resp struct {
		File fileResource `json:"file"`
	}
	err = c.uploadMultipart(ctx, "/upload/v1beta/files", metadata, f, mimeTypeFor(localPath), &resp, "file_upload")
	if err != nil {
		return domain.FileHandle{}, err
	}
	return domain.FileHandle{
		Name:        resp.File.Name,
		URI:         resp.File.URI,
		DisplayName: resp.File.DisplayName,
		MimeType:    resp.File.MimeType,
	}, nil
}

// DeleteFile removes a transient file. Callers treat failures as best-effort
// cleanup; this method just reports them.
func (c *Client) DeleteFile(ctx context.Context, name string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1beta/"+name, nil, nil, "file_delete")
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text     string    `json:"text,omitempty"`
	FileData *fileData `json:"fileData,omitempty"`
}

type fileData struct {
	FileURI  string `json:"fileUri"`
	MimeType string `json:"mimeType,omitempty"`
}

type tool struct {
	FileSearch *fileSearch `json:"fileSearch,omitempty"`
}

type fileSearch struct {
	FileSearchStoreNames []string `json:"fileSearchStoreNames"`
	MetadataFilter       string   `json:"metadataFilter,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

// Generate performs one generation call, optionally grounded on a file-search
// store and attached transient files. Not retried: a failure surfaces
// immediately as a stage-level error.
func (c *Client) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	parts := []part{{Text: req.Prompt}}
	for _, file := range req.Files {
		parts = append(parts, part{FileData: &fileData{FileURI: file.URI, MimeType: file.MimeType}})
	}

	body := generateContentRequest{Contents: []content{{Parts: parts}}}
	if req.StoreName != "" {
		body.Tools = []tool{{FileSearch: &fileSearch{
			FileSearchStoreNames: []string{req.StoreName},
			MetadataFilter:       req.MetadataFilter,
		}}}
	}
	if req.JSON {
		body.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	operation := req.Operation
	if operation == "" {
		operation = "generate"
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(c.model))
	if err := c.doJSON(ctx, http.MethodPost, path, body, &resp, operation); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("genai %s: empty candidate list", operation)
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
}

func mimeTypeFor(path string) string {
	if t, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return "application/octet-stream"
}
