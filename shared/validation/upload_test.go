package validation

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestFormFile(t *testing.T) {
	limits := UploadLimits{MaxFileSize: 1 << 20, AllowedMimeTypes: []string{"image/png", "image/jpeg"}}

	t.Run("accepts allowed type", func(t *testing.T) {
		req := multipartRequest(t, "file", "a.png", "image/png", []byte("data"))
		require.NoError(t, limits.Parse(httptest.NewRecorder(), req))

		upload, err := limits.FormFile(req, "file")
		require.NoError(t, err)
		defer upload.File.Close()
		assert.Equal(t, "image/png", upload.MimeType)
		assert.Equal(t, "a.png", upload.Filename)
		assert.EqualValues(t, 4, upload.SizeBytes)
	})

	t.Run("falls back to extension", func(t *testing.T) {
		req := multipartRequest(t, "file", "photo.jpg", "application/octet-stream", []byte("data"))
		require.NoError(t, limits.Parse(httptest.NewRecorder(), req))

		upload, err := limits.FormFile(req, "file")
		require.NoError(t, err)
		defer upload.File.Close()
		assert.Equal(t, "image/jpeg", upload.MimeType)
	})

	t.Run("rejects other types", func(t *testing.T) {
		req := multipartRequest(t, "file", "notes.txt", "text/plain", []byte("data"))
		require.NoError(t, limits.Parse(httptest.NewRecorder(), req))

		_, err := limits.FormFile(req, "file")
		assert.True(t, errors.Is(err, ErrInvalidMimeType))
	})

	t.Run("missing field", func(t *testing.T) {
		req := multipartRequest(t, "other", "a.png", "image/png", []byte("data"))
		require.NoError(t, limits.Parse(httptest.NewRecorder(), req))

		_, err := limits.FormFile(req, "file")
		assert.True(t, errors.Is(err, ErrMissingFile))
	})
}

func TestUploadLimits(t *testing.T) {
	t.Run("body over the request limit", func(t *testing.T) {
		limits := UploadLimits{MaxFileSize: 512}
		req := multipartRequest(t, "file", "a.png", "image/png", []byte(strings.Repeat("x", int(limits.RequestLimit())+1)))

		err := limits.Parse(httptest.NewRecorder(), req)
		assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	})

	t.Run("file over the size limit within the overhead", func(t *testing.T) {
		limits := UploadLimits{MaxFileSize: 512, AllowedMimeTypes: []string{"image/png"}}
		req := multipartRequest(t, "file", "a.png", "image/png", []byte(strings.Repeat("x", 4096)))
		require.NoError(t, limits.Parse(httptest.NewRecorder(), req))

		_, err := limits.FormFile(req, "file")
		assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	})

	t.Run("describe", func(t *testing.T) {
		assert.Equal(t, "5.0 MB", UploadLimits{MaxFileSize: 5 << 20}.Describe())
		assert.Equal(t, "64 KB", UploadLimits{MaxFileSize: 64 << 10}.Describe())
		assert.Equal(t, "100 bytes", UploadLimits{MaxFileSize: 100}.Describe())
	})
}
