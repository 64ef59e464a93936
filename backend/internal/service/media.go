package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"slices"

	_ "image/gif"

	"github.com/folio-cms/folio/shared/config"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const MediaURLPrefix = "/media/"

type MediaService interface {
	Upload(ctx context.Context, data io.Reader, mimeType string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}

type BlobStorage interface {
	Save(name string, data io.Reader) (domain.Blob, error)
	Open(name string) (io.ReadCloser, error)
	Delete(name string) error
}

type Media struct {
	storage BlobStorage
	cfg     config.Media
}

func NewMedia(storage BlobStorage, cfg config.Media) *Media {
	return &Media{storage: storage, cfg: cfg}
}

// Upload decodes the image, scales it down to the configured width and stores a
// re-encoded copy. Metadata such as EXIF does not survive the round trip.
func (m *Media) Upload(ctx context.Context, data io.Reader, mimeType string) (string, error) {
	if !slices.Contains(m.cfg.AllowedMimeTypes, mimeType) {
		return "", errors.Validation("Unsupported media type")
	}

	raw, err := io.ReadAll(io.LimitReader(data, m.cfg.MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(raw)) > m.cfg.MaxUploadSize {
		return "", errors.Validation("File is too large")
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", errors.Validation("File is not a valid image")
	}
	img = downscale(img, m.cfg.MaxImageWidth)

	var (
		buf bytes.Buffer
		ext string
	)
	if format == "png" {
		ext = ".png"
		err = png.Encode(&buf, img)
	} else {
		ext = ".jpg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", format, err)
	}

	name := uuid.NewString() + ext
	blob, err := m.storage.Save(name, &buf)
	if err != nil {
		return "", err
	}
	logger.Component("media").Info("media stored",
		"name", blob.Name,
		"source_format", format,
		"size_bytes", blob.SizeBytes,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	return MediaURLPrefix + blob.Name, nil
}

// Open returns the blob and its content type.
func (m *Media) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	rc, err := m.storage.Open(name)
	if err != nil {
		return nil, "", err
	}
	return rc, mimeByName(name), nil
}

func mimeByName(name string) string {
	switch path.Ext(name) {
	case ".png":
		return "image/png"
	case ".jpg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// downscale keeps the aspect ratio and never upscales.
func downscale(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}
	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
