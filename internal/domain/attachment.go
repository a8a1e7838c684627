// File: internal/domain/attachment.go
package domain

// Attachment is a file sent with a prompt. An attachment either references
// a file the backend already holds (UUID set) or carries raw bytes.
type Attachment struct {
	UUID     string `json:"uuid,omitempty"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Data     []byte `json:"-"`
}

// IsRaw reports whether the attachment still has to be uploaded.
func (a Attachment) IsRaw() bool {
	return a.UUID == "" && a.Data != nil
}

// HasRawAttachments reports whether any attachment forces a multipart upload.
func HasRawAttachments(list []Attachment) bool {
	for _, a := range list {
		if a.IsRaw() {
			return true
		}
	}
	return false
}
