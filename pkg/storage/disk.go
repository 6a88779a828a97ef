// Package storage abstracts where product images live.
//
// Two drivers are available:
//   - "local" — local filesystem under storage/app (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2)
//
// Boot once in internal/server, then:
//
//	storage.Put("products/nasi-goreng.jpg", data)
//	url := storage.URL("products/nasi-goreng.jpg")
package storage

import "io"

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// Files lists filenames directly inside directory.
	Files(directory string) ([]string, error)
}
