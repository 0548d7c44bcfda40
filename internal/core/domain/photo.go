package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
)

// Photo is an inline binary image. It is received as a raw upload and
// rendered to clients as a Base64 string.
type Photo []byte

// MarshalJSON encodes the photo as a Base64 string, or null when absent.
func (p Photo) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(p))
}

// UnmarshalJSON accepts a Base64 string or null.
func (p *Photo) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	*p = raw
	return nil
}

// MimeType sniffs the image format from the leading magic bytes.
// Unknown content is reported as application/octet-stream.
func (p Photo) MimeType() string {
	if len(p) < 4 {
		return "application/octet-stream"
	}
	switch {
	case bytes.HasPrefix(p, []byte{0x89, 0x50, 0x4E, 0x47}):
		return "image/png"
	case bytes.HasPrefix(p, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg"
	case bytes.HasPrefix(p, []byte("GIF8")):
		return "image/gif"
	}
	return "application/octet-stream"
}
