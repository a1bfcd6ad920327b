package repodoc

// FileUsedNone is the FileUsed label of the sentinel document returned when
// every resolution strategy has been exhausted.
const FileUsedNone = "none"

// Document is the outcome of a documentation resolution. It is created once
// per resolution and returned by value; callers must not mutate it.
type Document struct {
	// FileUsed labels the strategy or file that satisfied the request,
	// e.g. "llms.txt", "docs/llms.txt", "README.md", or FileUsedNone.
	FileUsed string `json:"fileUsed"`

	// SourcePath is the raw-content URL the document was fetched from.
	// Empty for pre-generated content and for the sentinel.
	SourcePath string `json:"sourcePath,omitempty"`

	// Content is the resolved documentation text. Empty for the sentinel.
	Content string `json:"content"`
}

// NoDocumentation returns the sentinel document representing an exhausted
// cascade. Callers must treat it as a normal, expected outcome.
func NoDocumentation() *Document {
	return &Document{FileUsed: FileUsedNone}
}

// Found reports whether the document carries real resolved content.
func (d *Document) Found() bool {
	return d != nil && d.FileUsed != FileUsedNone && d.Content != ""
}

// Location addresses a file within a repository at a specific branch.
// Immutable once constructed; used to build raw-content URLs.
type Location struct {
	Repo   Repo   `json:"repo"`
	Branch string `json:"branch"`
	Path   string `json:"path"`
}
