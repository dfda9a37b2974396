package summarizer

import (
	"fmt"
	"path/filepath"

	"github.com/user/gifatlas/pkg/ports"
)

// Formatter renders a batch Summary as the text of a report file.
// MarkdownFormatter is the implementation behind --summary.
type Formatter interface {
	Format(summary *Summary) string
}

// Writer renders a Summary and stores it through the FileSystem port.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a Writer.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{
		formatter: formatter,
		fs:        fs,
	}
}

// Write renders summary and saves it at path, creating missing parent
// directories. The report is written in one piece, replacing an earlier one.
func (w *Writer) Write(path string, summary *Summary) error {
	content := w.formatter.Format(summary)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
