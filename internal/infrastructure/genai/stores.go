package genai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/documedix/documedix/internal/core/domain"
)

type storeResource struct {
	Name                  string    `json:"name"`
	DisplayName           string    `json:"displayName"`
	ActiveDocumentsCount  string    `json:"activeDocumentsCount"`
	PendingDocumentsCount string    `json:"pendingDocumentsCount"`
	FailedDocumentsCount  string    `json:"failedDocumentsCount"`
	SizeBytes             string    `json:"sizeBytes"`
	CreateTime            time.Time `json:"createTime"`
	UpdateTime            time.Time `json:"updateTime"`
}

func (r storeResource) toDomain() domain.StoreInfo {
	return domain.StoreInfo{
		Name:             r.Name,
		DisplayName:      r.DisplayName,
		ActiveDocuments:  atoi(r.ActiveDocumentsCount),
		PendingDocuments: atoi(r.PendingDocumentsCount),
		FailedDocuments:  atoi(r.FailedDocumentsCount),
		SizeBytes:        int64(atoi(r.SizeBytes)),
		CreateTime:       r.CreateTime,
		UpdateTime:       r.UpdateTime,
	}
}

// The API returns int64 counters as JSON strings.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func (c *Client) Create(ctx context.Context, displayName string) (domain.StoreInfo, error) {
	var resp storeResource
	body := map[string]string{"displayName": displayName}
	if err := c.doJSON(ctx, http.MethodPost, "/v1beta/fileSearchStores", body, &resp, "store_create"); err != nil {
		return domain.StoreInfo{}, err
	}
	return resp.toDomain(), nil
}

func (c *Client) Get(ctx context.Context, name string) (domain.StoreInfo, error) {
	var resp storeResource
	if err := c.doJSON(ctx, http.MethodGet, "/v1beta/"+name, nil, &resp, "store_get"); err != nil {
		return domain.StoreInfo{}, err
	}
	return resp.toDomain(), nil
}

func (c *Client) List(ctx context.Context) ([]domain.StoreInfo, error) {
	var stores []domain.StoreInfo
	pageToken := ""
	for {
		path := "/v1beta/fileSearchStores"
		if pageToken != "" {
			path += "?pageToken=" + url.QueryEscape(pageToken)
		}
		var resp struct {
			FileSearchStores []storeResource `json:"fileSearchStores"`
			NextPageToken    string          `json:"nextPageToken"`
		}
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, "store_list"); err != nil {
			return nil, err
		}
		for _, store := range resp.FileSearchStores {
			stores = append(stores, store.toDomain())
		}
		if resp.NextPageToken == "" {
			return stores, nil
		}
		pageToken = resp.NextPageToken
	}
}

// FindByDisplayName scans the store list; the API only addresses stores by
// resource name.
func (c *Client) FindByDisplayName(ctx context.Context, displayName string) (domain.StoreInfo, error) {
	stores, err := c.List(ctx)
	if err != nil {
		return domain.StoreInfo{}, err
	}
	for _, store := range stores {
		if store.DisplayName == displayName {
			return store, nil
		}
	}
	return domain.StoreInfo{}, domain.WrapError(domain.ErrStoreNotFound, "store_find", fmt.Errorf("display name %q", displayName))
}

func (c *Client) Delete(ctx context.Context, name string, force bool) error {
	path := "/v1beta/" + name
	if force {
		path += "?force=true"
	}
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, "store_delete")
}

func (c *Client) ListDocuments(ctx context.Context, storeName string) ([]domain.StoreDocument, error) {
	var docs []domain.StoreDocument
	pageToken := ""
	for {
		path := "/v1beta/" + storeName + "/documents"
		if pageToken != "" {
			path += "?pageToken=" + url.QueryEscape(pageToken)
		}
		var resp struct {
			Documents []struct {
				Name        string `json:"name"`
				DisplayName string `json:"displayName"`
				SizeBytes   string `json:"sizeBytes"`
			} `json:"documents"`
			NextPageToken string `json:"nextPageToken"`
		}
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, "document_list"); err != nil {
			return nil, err
		}
		for _, doc := range resp.Documents {
			docs = append(docs, domain.StoreDocument{
				Name:        doc.Name,
				DisplayName: doc.DisplayName,
				SizeBytes:   int64(atoi(doc.SizeBytes)),
			})
		}
		if resp.NextPageToken == "" {
			return docs, nil
		}
		pageToken = resp.NextPageToken
	}
}

type operationResource struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// UploadDocument imports a local file into a store with its metadata and
// blocks until the remote embedding operation completes. A terminal operation
// error is reported, not retried here; the caller owns the retry policy.
func (c *Client) UploadDocument(ctx context.Context, storeName, localPath, displayName string, metadata []domain.MetadataEntry) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open upload source: %w", err)
	}
	defer f.Close()

	meta := map[string]any{"displayName": displayName}
	if len(metadata) > 0 {
		meta["customMetadata"] = metadata
	}

	var op operationResource
	path := "/upload/v1beta/" + storeName + ":uploadToFileSearchStore"
	if err := c.uploadMultipart(ctx, path, meta, f, mimeTypeFor(localPath), &op, "store_upload"); err != nil {
		return err
	}
	return c.waitOperation(ctx, op)
}

func (c *Client) waitOperation(ctx context.Context, op operationResource) error {
	for !op.Done {
		timer := time.NewTimer(c.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		var next operationResource
		if err := c.doJSON(ctx, http.MethodGet, "/v1beta/"+op.Name, nil, &next, "operation_get"); err != nil {
			return err
		}
		op = next
	}
	if op.Error != nil {
		return fmt.Errorf("store upload operation failed: %s (code %d)", op.Error.Message, op.Error.Code)
	}
	return nil
}
