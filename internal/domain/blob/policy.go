package blob

import (
	"fmt"
	"path"
	"strings"

	"medrecords/internal/shared/errors"
)

// UploadPolicy holds the upload rules. A file must fit the size cap and
// match both the content-type and the extension allow-list.
type UploadPolicy struct {
	maxSize      int64
	extensions   map[string]struct{}
	contentTypes map[string]struct{}
}

func NewUploadPolicy(maxSize int64, extensions, contentTypes []string) *UploadPolicy {
	p := &UploadPolicy{
		maxSize:      maxSize,
		extensions:   make(map[string]struct{}, len(extensions)),
		contentTypes: make(map[string]struct{}, len(contentTypes)),
	}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		p.extensions[ext] = struct{}{}
	}
	for _, ct := range contentTypes {
		p.contentTypes[NormalizeContentType(ct)] = struct{}{}
	}
	return p
}

func (p *UploadPolicy) MaxSize() int64 {
	return p.maxSize
}

// Validate checks a declared upload before any byte is stored.
func (p *UploadPolicy) Validate(fileName, contentType string, size int64) error {
	if err := p.ValidateSize(size); err != nil {
		return err
	}
	if _, ok := p.contentTypes[NormalizeContentType(contentType)]; !ok {
		return errors.NewValidationError("File type not allowed",
			fmt.Sprintf("content type %q is not accepted", contentType))
	}
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(fileName, `\`, "/")))
	if _, ok := p.extensions[ext]; !ok || ext == "" {
		return errors.NewValidationError("File extension not allowed",
			fmt.Sprintf("extension %q is not accepted", ext))
	}
	return nil
}

// ValidateSize also applies to the byte count actually received, which may
// differ from what the client declared.
func (p *UploadPolicy) ValidateSize(size int64) error {
	if size <= 0 {
		return errors.NewValidationError("File is empty")
	}
	if size > p.maxSize {
		return errors.NewValidationError("File too large",
			fmt.Sprintf("maximum size is %d bytes", p.maxSize))
	}
	return nil
}

// NormalizeContentType lowercases a media type and drops its parameters.
func NormalizeContentType(ct string) string {
	mediaType, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}
