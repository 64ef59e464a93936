package validation

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

var (
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrInvalidMimeType = errors.New("invalid MIME type")
	// no file under the expected form field
	ErrMissingFile = errors.New("missing file")
)

// formOverhead covers boundaries and part headers around the file.
const formOverhead int64 = 64 << 10

// UploadLimits bound a single-file multipart upload.
type UploadLimits struct {
	MaxFileSize      int64
	AllowedMimeTypes []string
}

// RequestLimit is the most the server reads of the request body.
func (l UploadLimits) RequestLimit() int64 {
	return l.MaxFileSize + formOverhead
}

// Describe renders MaxFileSize for error messages.
func (l UploadLimits) Describe() string {
	switch {
	case l.MaxFileSize >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(l.MaxFileSize)/(1<<20))
	case l.MaxFileSize >= 1<<10:
		return fmt.Sprintf("%d KB", l.MaxFileSize>>10)
	default:
		return fmt.Sprintf("%d bytes", l.MaxFileSize)
	}
}

// Parse reads the multipart form under RequestLimit. Once the limit is hit the
// server stops reading, so browsers may see a connection reset instead of the error.
func (l UploadLimits) Parse(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, l.RequestLimit())
	if err := r.ParseMultipartForm(l.RequestLimit()); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadTooLarge, err)
	}
	return nil
}

// Upload is a single validated file taken from a parsed multipart form.
type Upload struct {
	File      multipart.File
	Filename  string
	MimeType  string
	SizeBytes int64
}

// FormFile takes the file under field and checks its type and size.
// The caller closes Upload.File.
func (l UploadLimits) FormFile(r *http.Request, field string) (*Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, field)
		}
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	fail := func(err error) (*Upload, error) {
		file.Close()
		return nil, err
	}
	if l.MaxFileSize > 0 && header.Size > l.MaxFileSize {
		return fail(fmt.Errorf("%w: %s is %d bytes", ErrPayloadTooLarge, header.Filename, header.Size))
	}
	mimeType, err := DetectMimeType(header)
	if err != nil {
		return fail(err)
	}
	if !slices.Contains(l.AllowedMimeTypes, mimeType) {
		return fail(fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, header.Filename))
	}

	return &Upload{
		File:      file,
		Filename:  header.Filename,
		MimeType:  mimeType,
		SizeBytes: header.Size,
	}, nil
}

// DetectMimeType trusts the part's Content-Type and falls back to the extension.
func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		if detected := mime.TypeByExtension(filepath.Ext(fileHeader.Filename)); detected != "" {
			mimeType = detected
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}

	// drop parameters such as "; charset=binary"
	if base, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = base
	}
	return strings.ToLower(mimeType), nil
}
