package model

import "time"

// MediaFile records an uploaded object. The bytes themselves live in the
// object store; ObjectKey locates them there.
type MediaFile struct {
	ID          uint64    `json:"id"`           // media_files.id
	ObjectKey   string    `json:"object_key"`   // media_files.object_key (unique)
	FileName    string    `json:"file_name"`    // media_files.file_name (original name)
	ContentType string    `json:"content_type"` // media_files.content_type
	SizeBytes   int64     `json:"size_bytes"`   // media_files.size_bytes
	URL         string    `json:"url"`          // media_files.url (public URL)
	UploadedBy  uint64    `json:"uploaded_by"`  // media_files.uploaded_by (users.id)
	CreatedAt   time.Time `json:"created_at"`   // media_files.created_at
}
