// Package upload stores validated image attachments on local disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Upload validation errors.
var (
	// ErrFileTooLarge indicates the upload exceeds the configured byte cap.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	// ErrUnsupportedType indicates the upload is not an allowed image format.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// DefaultMaxSize is the upload byte cap when none is configured.
const DefaultMaxSize = 5 * 1024 * 1024 // 5 MiB

// allowedTypes maps accepted MIME types to their canonical extensions.
// Both the declared type and the file extension must pass; checking both
// narrows spoofing without full content sniffing.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// Store saves uploaded images under a single directory with
// collision-resistant generated names.
type Store struct {
	dir      string
	maxSize  int64
	basePath string
}

// NewStore creates a Store rooted at dir, creating it if needed.
// basePath is the URL prefix returned references resolve against
// (e.g. "/uploads"). A non-positive maxSize falls back to DefaultMaxSize.
func NewStore(dir, basePath string, maxSize int64) (*Store, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Store{
		dir:      dir,
		maxSize:  maxSize,
		basePath: strings.TrimSuffix(basePath, "/"),
	}, nil
}

// Dir returns the directory uploads are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// MaxSize returns the configured upload byte cap.
func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// Save validates and stores a single image attachment.
// size is the declared length of the stream (from the multipart header);
// contentType is the declared MIME type; originalName supplies the
// extension. Returns a reference path like "/uploads/<name>".
func (s *Store) Save(file io.Reader, size int64, contentType, originalName string) (string, error) {
	if size > s.maxSize {
		return "", ErrFileTooLarge
	}

	mediaType := normalizeMediaType(contentType)
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedTypes[mediaType] || !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	// ULIDs are time-prefixed with a random suffix, which gives
	// lexicographically sortable, collision-resistant names.
	name := ulid.Make().String() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	// Copy at most one byte over the cap so oversize streams with a lying
	// length header are still caught.
	written, err := io.Copy(dst, io.LimitReader(file, s.maxSize+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if written > s.maxSize {
		os.Remove(path)
		return "", ErrFileTooLarge
	}

	return s.basePath + "/" + name, nil
}

// Remove deletes a previously stored upload by its reference path.
// Used to clean up when the owning record fails to persist.
func (s *Store) Remove(ref string) error {
	name := filepath.Base(ref)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// normalizeMediaType strips any parameters from a Content-Type value.
func normalizeMediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
