package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/forgeci/corekit/process"
)

// ErrUnknownBackend is returned by Get for backend names with no
// registered implementation.
var ErrUnknownBackend = errors.New("vcs: unknown backend")

// Revision is one commit in a repository's history.
type Revision struct {
	Commit     string
	CommitDate time.Time
	Author     string
	Title      string
	Body       string
}

// Runner executes shell commands for a backend. The default runner is
// process.Execute; tests substitute their own.
type Runner func(ctx context.Context, spec process.Spec) (*process.Result, error)

// VCS is the capability interface every backend implements. All
// command-issuing operations take a context that bounds their lifetime.
type VCS interface {
	// Workdir returns the directory where the repository lives and all
	// operations happen.
	Workdir() string
	// WorkdirExists reports whether the workdir exists on disk.
	WorkdirExists() bool
	// Clone clones the repository at url into the workdir.
	Clone(ctx context.Context, url string) error
	// Fetch fetches changes from the remote repository and returns the
	// command output.
	Fetch(ctx context.Context) (string, error)
	// SetRemote changes the url of an existing remote.
	SetRemote(ctx context.Context, url, remoteName string) error
	// GetRemote returns the url currently configured for a remote.
	GetRemote(ctx context.Context, remoteName string) (string, error)
	// TrySetRemote sets the remote url only when it differs from url.
	TrySetRemote(ctx context.Context, url, remoteName string) error
	// AddRemote adds a new remote to the repository.
	AddRemote(ctx context.Context, url, remoteName string) error
	// RmRemote removes a remote from the repository.
	RmRemote(ctx context.Context, remoteName string) error
	// Checkout checks out a named tree: a commit, branch or tag.
	Checkout(ctx context.Context, namedTree string) error
	// Pull pulls changes for a branch from a remote.
	Pull(ctx context.Context, branchName, remoteName string) (string, error)
	// CreateLocalBranch creates branchName off baseName.
	CreateLocalBranch(ctx context.Context, branchName, baseName string) error
	// DeleteLocalBranch deletes a local branch.
	DeleteLocalBranch(ctx context.Context, branchName string) error
	// BranchExists reports whether a local branch exists.
	BranchExists(ctx context.Context, branchName string) (bool, error)
	// HasChanges reports whether the remote has new revisions.
	HasChanges(ctx context.Context) (bool, error)
	// ImportExternalBranch imports a branch from an external repository
	// into a local branch.
	ImportExternalBranch(ctx context.Context, externalURL, externalName, externalBranch, into string) error
	// UpdateSubmodule initializes and updates submodules.
	UpdateSubmodule(ctx context.Context) (string, error)
	// GetRemoteBranches returns the remote branches available.
	GetRemoteBranches(ctx context.Context) ([]string, error)
	// GetRevisions returns the revisions newer than since, per branch,
	// from the default remote. Branch names may use wildcards to filter
	// the remote branches; nil means all of them.
	GetRevisions(ctx context.Context, since map[string]time.Time, branches []string) (map[string][]Revision, error)
	// GetLocalRevisions is GetRevisions against the local repository only.
	GetLocalRevisions(ctx context.Context, since map[string]time.Time, branches []string) (map[string][]Revision, error)
	// GetRevisionsForBranch returns the revisions for one branch since a
	// point in time. A zero since returns all revisions.
	GetRevisionsForBranch(ctx context.Context, branch string, since time.Time) ([]Revision, error)
}

// Factory builds a backend rooted at workdir.
type Factory func(workdir string) VCS

var backends = map[string]Factory{
	"git": func(workdir string) VCS { return NewGit(workdir) },
}

// Get returns the Factory registered for a backend name.
func Get(name string) (Factory, error) {
	factory, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	return factory, nil
}

func workdirExists(dir string) bool {
	_, err := os.Stat(dir)
	return err == nil
}
