package domain

import "time"

// FileHandle references a transient file registered with the remote service
// for the duration of one request. The owner must delete it after use;
// a leaked handle accumulates remote storage but never corrupts local state.
type FileHandle struct {
	Name        string `json:"name"`
	URI         string `json:"uri"`
	DisplayName string `json:"display_name"`
	MimeType    string `json:"mime_type"`
}

// StoreInfo describes a remote file-search store.
type StoreInfo struct {
	Name             string    `json:"name"`
	DisplayName      string    `json:"display_name"`
	ActiveDocuments  int       `json:"active_documents"`
	PendingDocuments int       `json:"pending_documents"`
	FailedDocuments  int       `json:"failed_documents"`
	SizeBytes        int64     `json:"size_bytes"`
	CreateTime       time.Time `json:"create_time"`
	UpdateTime       time.Time `json:"update_time"`
}

// StoreDocument is one document registered in a file-search store.
type StoreDocument struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	SizeBytes   int64  `json:"size_bytes"`
}

// GenerateRequest is a single retrieval-augmented generation call. StoreName
// scopes file search; MetadataFilter narrows it further. Latency is unbounded
// from the caller's point of view.
type GenerateRequest struct {
	Operation      string
	Prompt         string
	Files          []FileHandle
	StoreName      string
	MetadataFilter string
	JSON           bool
}
