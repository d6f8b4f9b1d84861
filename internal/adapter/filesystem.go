package adapter

import (
	"io"
	"os"
)

// FileSystem defines an interface for file system operations to enable mocking
//
//go:generate mockgen -source=filesystem.go -destination=../mocks/filesystem.go -package=mocks -mock_names=FileSystem=MockFileSystem
type FileSystem interface {
	// Open opens the named file for reading
	Open(name string) (File, error)

	// ReadFile reads the named file and returns its contents
	ReadFile(name string) ([]byte, error)

	// Remove removes the named file or directory
	Remove(name string) error

	// TempDir returns the default directory to use for temporary files
	TempDir() string
}

// File defines an interface for file operations
type File interface {
	io.Reader
	io.Closer
}

// RealFileSystem implements FileSystem using the standard os package
type RealFileSystem struct{}

// NewFileSystem creates a new real file system
func NewFileSystem() FileSystem {
	return &RealFileSystem{}
}

// Open opens the named file for reading
func (fs *RealFileSystem) Open(name string) (File, error) {
	return os.Open(name) //nolint:gosec,G304
}

// ReadFile reads the named file and returns its contents
func (fs *RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec,G304
}

// Remove removes the named file or directory
func (fs *RealFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// TempDir returns the default directory to use for temporary files
func (fs *RealFileSystem) TempDir() string {
	return os.TempDir()
}
