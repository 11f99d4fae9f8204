// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gabysite/internal/imaging"
	"gabysite/internal/model"
)

// memFile adapts an in-memory buffer to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func makeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 90, G: 140, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func testUploadService(t *testing.T) *UploadService {
	t.Helper()
	queries, _ := testQueries(t)
	return NewUploadService(queries, t.TempDir())
}

func uploadHeader(filename, contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{Filename: filename, Size: size}
	if contentType != "" {
		h.Header = textproto.MIMEHeader{"Content-Type": []string{contentType}}
	}
	return h
}

func TestUpload(t *testing.T) {
	svc := testUploadService(t)
	data := makeTestJPEG(t, 2400, 1600)

	result, err := svc.Upload(context.Background(),
		memFile{bytes.NewReader(data)},
		uploadHeader("birthday party.jpg", model.MimeTypeJPEG, int64(len(data))),
		"Birthday Joy", "Throwing confetti", "celebration")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Upload.UUID)
	assert.Equal(t, "birthday-party.jpg", result.Upload.Filename)
	assert.Equal(t, model.MimeTypeJPEG, result.Upload.MimeType)
	assert.Equal(t, int64(2400), result.Upload.Width.Int64)
	// No EXIF in a generated JPEG.
	assert.False(t, result.Upload.TakenAt.Valid)

	assert.Equal(t, "Birthday Joy", result.Photo.Title)
	assert.Equal(t, "celebration", result.Photo.Category)
	// Falls back to the upload time for timeline placement.
	assert.NotZero(t, result.Photo.Year)
	assert.Contains(t, result.Photo.Src, "/uploads/"+model.VariantLarge+"/")

	types := make([]string, len(result.Variants))
	for i, v := range result.Variants {
		types[i] = v.Type
	}
	assert.Contains(t, types, model.VariantThumbnail)
	assert.Contains(t, types, model.VariantLarge)
}

func TestUploadRejectsOversized(t *testing.T) {
	svc := testUploadService(t)
	data := makeTestJPEG(t, 10, 10)

	_, err := svc.Upload(context.Background(),
		memFile{bytes.NewReader(data)},
		uploadHeader("big.jpg", model.MimeTypeJPEG, MaxUploadSize+1),
		"Title", "Alt", "family")
	assert.ErrorContains(t, err, "file size exceeds")
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := testUploadService(t)
	data := []byte("not an image")

	_, err := svc.Upload(context.Background(),
		memFile{bytes.NewReader(data)},
		uploadHeader("notes.txt", "text/plain", int64(len(data))),
		"Title", "Alt", "family")
	assert.ErrorContains(t, err, "not allowed")
}

func TestUploadMimeFromExtension(t *testing.T) {
	svc := testUploadService(t)
	data := makeTestJPEG(t, 600, 400)

	// No Content-Type header; the extension decides.
	result, err := svc.Upload(context.Background(),
		memFile{bytes.NewReader(data)},
		uploadHeader("photo.jpeg", "", int64(len(data))),
		"Title", "Alt", "family")
	require.NoError(t, err)
	assert.Equal(t, model.MimeTypeJPEG, result.Upload.MimeType)
}

func TestPublicPathFallsBackToOriginal(t *testing.T) {
	svc := testUploadService(t)

	variants := []*imaging.VariantResult{{Type: model.VariantThumbnail}}
	assert.Equal(t, "/uploads/thumbnail/u1/a.jpg", svc.PublicPath(model.VariantThumbnail, "u1", "a.jpg", variants))
	// Large variant skipped for a small source.
	assert.Equal(t, "/uploads/originals/u1/a.jpg", svc.PublicPath(model.VariantLarge, "u1", "a.jpg", variants))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo (1).jpg", "my-photo--1-.jpg"},
		{"../../etc/passwd", "passwd"},
		{"año nuevo.png", "a-o-nuevo.png"},
		{"..", "upload.jpg"},
		{"", "upload.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestMimeTypeFromExtension(t *testing.T) {
	assert.Equal(t, model.MimeTypeJPEG, mimeTypeFromExtension("a.JPG"))
	assert.Equal(t, model.MimeTypeJPEG, mimeTypeFromExtension("a.jpeg"))
	assert.Equal(t, model.MimeTypePNG, mimeTypeFromExtension("a.png"))
	assert.Equal(t, model.MimeTypeWebP, mimeTypeFromExtension("a.webp"))
	assert.Equal(t, "", mimeTypeFromExtension("a.gif"))
}
