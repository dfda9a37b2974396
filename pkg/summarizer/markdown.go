package summarizer

import (
	"fmt"
	"strings"

	"github.com/user/gifatlas/pkg/pipeline"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Atlas Summary"))

	fmt.Fprintf(&sb, "| %s | %s |\n", t("Item"), t("Value"))
	sb.WriteString("|---|---|\n")
	fmt.Fprintf(&sb, "| %s | `%s` |\n", t("Run ID"), s.RunID)
	fmt.Fprintf(&sb, "| %s | %s |\n", t("Generated At"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "| %s | `%s` |\n", t("Directory"), s.Root)
	if s.Policy != "" {
		fmt.Fprintf(&sb, "| %s | %s |\n", t("On Error"), s.Policy)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "## %s\n\n", t("Totals"))
	fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", t("Files"), t("Succeeded"), t("Skipped"), t("Failed"))
	sb.WriteString("|---:|---:|---:|---:|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d |\n\n",
		s.Totals.Files, s.Totals.Succeeded, s.Totals.Skipped, s.Totals.Failed)

	if len(s.Files) > 0 {
		fmt.Fprintf(&sb, "## %s\n\n", t("Files"))
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			t("Status"), t("File"), t("Frames"), t("Frame Size"), t("FPS"), t("Reason"))
		sb.WriteString("|---|---|---:|---|---:|---|\n")
		for _, e := range s.Files {
			fmt.Fprintf(&sb, "| %s | `%s` | %s | %s | %s | %s |\n",
				e.Status, e.Path, frames(e), frameSize(e), fps(e), escapeCell(e.Reason))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n")
	if f.version != "" {
		fmt.Fprintf(&sb, "*%s gifatlas %s*\n", t("Generated by"), f.version)
	} else {
		fmt.Fprintf(&sb, "*%s gifatlas*\n", t("Generated by"))
	}

	return sb.String()
}

func frames(e FileEntry) string {
	if e.Status != pipeline.StatusSucceeded {
		return "-"
	}
	return fmt.Sprintf("%d", e.FrameCount)
}

func frameSize(e FileEntry) string {
	if e.Status != pipeline.StatusSucceeded {
		return "-"
	}
	return fmt.Sprintf("%dx%d", e.FrameWidth, e.FrameHeight)
}

func fps(e FileEntry) string {
	if e.Status != pipeline.StatusSucceeded {
		return "-"
	}
	return fmt.Sprintf("%.2f", e.FPS)
}

// escapeCell keeps a free-form message inside one table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
