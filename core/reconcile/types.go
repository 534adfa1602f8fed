package reconcile

import "fmt"

// Bundle is an externally supplied folder tree plus a flat link list.
// Both fields are untrusted.
type Bundle struct {
	FolderTree []ImportFolder `json:"folderTree" yaml:"folderTree"`
	AllLinks   []ImportLink   `json:"allLinks" yaml:"allLinks"`
}

// ImportFolder is one folder of a bundle. Path starts with a root sentinel
// followed by the nested folder titles, e.g. "1/Work/Infra".
type ImportFolder struct {
	Title    string         `json:"title" yaml:"title"`
	Path     string         `json:"path" yaml:"path"`
	Children []ImportFolder `json:"children" yaml:"children"`
}

// ImportLink is one link of a bundle. Path names the folder it belongs to.
type ImportLink struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Path  string `json:"path" yaml:"path"`
}

// Result summarizes an import run.
type Result struct {
	// CreatedCount is the number of links created.
	CreatedCount int `json:"createdCount"`
	// DeletedCount is the number of links present before the wipe.
	DeletedCount int `json:"deletedCount"`
	// FoldersCreated is the number of folders created.
	FoldersCreated int `json:"foldersCreated"`
	// DuplicateCount is the number of links skipped because the target
	// folder already held the same URL.
	DuplicateCount int `json:"duplicateCount"`
	// Errors lists non-fatal failures.
	Errors []string `json:"errors"`
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
