package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file and closes it.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	// An existing file keeps its permissions.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// ListFiles returns every regular file below root, descending into
	// subdirectories. The order is unspecified.
	ListFiles(root string) ([]string, error)

	// Remove deletes a file or empty directory.
	// Used to roll back a half-written output pair.
	Remove(path string) error
}
