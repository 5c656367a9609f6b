// Package git tags focus sessions with the repository they ran in, using go-git.
package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// Detector implements the ports.GitDetector interface using go-git.
type Detector struct {
	dir string
}

// NewDetector creates a detector rooted at dir. An empty dir means the
// process working directory.
func NewDetector(dir string) *Detector {
	return &Detector{dir: dir}
}

// Ensure Detector implements ports.GitDetector.
var _ ports.GitDetector = (*Detector)(nil)

// Detect opens the repository containing workingDir (or the detector's
// directory when empty) and reports HEAD.
func (d *Detector) Detect(ctx context.Context, workingDir string) (*ports.RepoContext, error) {
	repo, err := d.open(workingDir)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	branch := head.Name().Short()
	if !head.Name().IsBranch() {
		branch = "HEAD detached"
	}

	info := &ports.RepoContext{
		Branch: branch,
		Commit: head.Hash().String(),
	}

	if commit, err := repo.CommitObject(head.Hash()); err == nil {
		info.Subject = strings.SplitN(commit.Message, "\n", 2)[0]
	}

	if remotes, err := repo.Remotes(); err == nil && len(remotes) > 0 {
		if urls := remotes[0].Config().URLs; len(urls) > 0 {
			info.Remote = extractRepoName(urls[0])
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}
	info.Dirty = !status.IsClean()

	return info, nil
}

// IsAvailable checks if the detector's directory is inside a repository.
func (d *Detector) IsAvailable() bool {
	_, err := d.open("")
	return err == nil
}

func (d *Detector) open(workingDir string) (*git.Repository, error) {
	if workingDir == "" {
		workingDir = d.dir
	}
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(workingDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("git repository not found: %w", err)
	}
	return repo, nil
}

// extractRepoName turns a remote URL into owner/name.
func extractRepoName(url string) string {
	url = strings.TrimSuffix(url, ".git")

	// git@github.com:user/repo
	if strings.HasPrefix(url, "git@") {
		if i := strings.LastIndex(url, ":"); i >= 0 {
			return url[i+1:]
		}
	}

	// https://github.com/user/repo
	if strings.HasPrefix(url, "http") {
		parts := strings.Split(url, "/")
		if len(parts) >= 2 {
			return parts[len(parts)-2] + "/" + parts[len(parts)-1]
		}
	}

	return url
}

// ShortCommit returns a shortened commit hash.
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
