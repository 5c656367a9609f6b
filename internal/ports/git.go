package ports

import "context"

// RepoContext is the repository a focus session ran in. Sessions keep only
// the branch; the rest is shown by callers that want more detail.
type RepoContext struct {
	Branch  string
	Commit  string
	Subject string
	Remote  string
	Dirty   bool
}

// GitDetector looks up the repository around a directory.
type GitDetector interface {
	// Detect reports HEAD for workingDir, or the detector's own directory
	// when workingDir is empty.
	Detect(ctx context.Context, workingDir string) (*RepoContext, error)

	// IsAvailable reports whether the detector's directory is in a repository.
	IsAvailable() bool
}
