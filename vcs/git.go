package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgeci/corekit/logger"
	"github.com/forgeci/corekit/process"
	"github.com/forgeci/corekit/util"
)

// gitDateLayout is the layout used to talk to git about dates, both when
// asking for revisions --since some date and when parsing --date=local
// output back.
const gitDateLayout = "Mon Jan 2 15:04:05 2006"

// commitSeparator marks the end of one commit in git log output so
// multi-line bodies can be split apart safely.
const commitSeparator = "<end-commit>"

// Git runs the git binary in a workdir. Commands go through a Runner so
// tests can substitute their own.
type Git struct {
	workdir string
	run     Runner
	log     *logger.Logger
}

// NewGit returns a Git backend rooted at workdir.
func NewGit(workdir string) *Git {
	return &Git{
		workdir: workdir,
		run:     process.Execute,
		log:     logger.WithComponent("vcs"),
	}
}

func (g *Git) Workdir() string {
	return g.workdir
}

func (g *Git) WorkdirExists() bool {
	return workdirExists(g.workdir)
}

// exec runs a shell command in cwd, defaulting to the workdir, and
// returns its trimmed output.
func (g *Git) exec(ctx context.Context, cmd, cwd string) (string, error) {
	if cwd == "" {
		cwd = g.workdir
	}
	res, err := g.run(ctx, process.Spec{Command: cmd, Dir: cwd})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Output), nil
}

func (g *Git) Clone(ctx context.Context, url string) error {
	cmd := fmt.Sprintf("git clone --depth=2 %s %s --recursive", url, g.workdir)
	// the workdir does not exist until the clone finishes
	if _, err := g.exec(ctx, cmd, "."); err != nil {
		return err
	}
	return g.setRemoteOriginConfig(ctx)
}

// setRemoteOriginConfig widens the fetch refspec after a shallow clone,
// otherwise the remote branches other than the default one are never
// fetched.
func (g *Git) setRemoteOriginConfig(ctx context.Context) error {
	cmd := "git config remote.origin.fetch +refs/heads/*:refs/remotes/origin/*"
	_, err := g.exec(ctx, cmd, "")
	return err
}

func (g *Git) Fetch(ctx context.Context) (string, error) {
	return g.exec(ctx, "git fetch", "")
}

func (g *Git) SetRemote(ctx context.Context, url, remoteName string) error {
	cmd := fmt.Sprintf("git remote set-url %s %s", remoteName, url)
	_, err := g.exec(ctx, cmd, "")
	return err
}

func (g *Git) GetRemote(ctx context.Context, remoteName string) (string, error) {
	cmd := fmt.Sprintf("git remote get-url %s", remoteName)
	return g.exec(ctx, cmd, "")
}

func (g *Git) TrySetRemote(ctx context.Context, url, remoteName string) error {
	current, err := g.GetRemote(ctx, remoteName)
	if err != nil {
		return err
	}
	if current == url {
		return nil
	}
	g.log.Debug("changing remote", logger.Fields("from", current, "to", url))
	return g.SetRemote(ctx, url, remoteName)
}

func (g *Git) AddRemote(ctx context.Context, url, remoteName string) error {
	cmd := fmt.Sprintf("git remote add %s %s", remoteName, url)
	_, err := g.exec(ctx, cmd, "")
	return err
}

func (g *Git) RmRemote(ctx context.Context, remoteName string) error {
	cmd := fmt.Sprintf("git remote rm %s", remoteName)
	_, err := g.exec(ctx, cmd, "")
	return err
}

func (g *Git) Checkout(ctx context.Context, namedTree string) error {
	cmd := fmt.Sprintf("git checkout %s", namedTree)
	_, err := g.exec(ctx, cmd, "")
	return err
}

func (g *Git) Pull(ctx context.Context, branchName, remoteName string) (string, error) {
	if remoteName == "" {
		remoteName = "origin"
	}
	// rebase because the local history does not matter here, whatever
	// the upstream repository does is simply followed
	cmd := fmt.Sprintf("git pull --no-edit %s %s --rebase", remoteName, branchName)
	return g.exec(ctx, cmd, "")
}

func (g *Git) CreateLocalBranch(ctx context.Context, branchName, baseName string) error {
	if err := g.Checkout(ctx, baseName); err != nil {
		return err
	}
	cmd := fmt.Sprintf("git branch %s", branchName)
	_, err := g.exec(ctx, cmd, "")
	return err
}

func (g *Git) DeleteLocalBranch(ctx context.Context, branchName string) error {
	if err := g.Checkout(ctx, "master"); err != nil {
		return err
	}
	cmd := fmt.Sprintf("git branch -D %s", branchName)
	_, err := g.exec(ctx, cmd, "")
	return err
}

func (g *Git) BranchExists(ctx context.Context, branchName string) (bool, error) {
	cmd := fmt.Sprintf("git rev-parse --verify %s", branchName)
	_, err := g.exec(ctx, cmd, "")
	if err != nil {
		var cmdErr *process.CommandError
		if errors.As(err, &cmdErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (g *Git) HasChanges(ctx context.Context) (bool, error) {
	out, err := g.Fetch(ctx)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

func (g *Git) ImportExternalBranch(ctx context.Context, externalURL, externalName, externalBranch, into string) error {
	exists, err := g.BranchExists(ctx, into)
	if err != nil {
		return err
	}
	if !exists {
		if err := g.CreateLocalBranch(ctx, into, "master"); err != nil {
			return err
		}
	}
	if err := g.AddRemote(ctx, externalURL, externalName); err != nil {
		return err
	}
	if err := g.Checkout(ctx, into); err != nil {
		return err
	}
	if _, err := g.Pull(ctx, externalBranch, externalName); err != nil {
		return err
	}
	return g.RmRemote(ctx, externalName)
}

func (g *Git) UpdateSubmodule(ctx context.Context) (string, error) {
	if _, err := g.exec(ctx, "git submodule init", ""); err != nil {
		return "", err
	}
	return g.exec(ctx, "git submodule update", "")
}

func (g *Git) GetRemoteBranches(ctx context.Context) ([]string, error) {
	if _, err := g.Fetch(ctx); err != nil {
		return nil, err
	}
	// prune branches deleted on the remote before listing
	if _, err := g.exec(ctx, "git remote update --prune", ""); err != nil {
		return nil, err
	}
	out, err := g.exec(ctx, "git branch -r", "")
	if err != nil {
		return nil, err
	}
	g.log.Debug("remote branches", logger.Fields("output", out))

	lines := strings.Split(out, "\n")
	// the current HEAD line comes as "origin/HEAD -> origin/master"
	if parts := strings.Split(lines[0], "->"); len(parts) > 1 {
		lines[0] = strings.TrimSpace(parts[1])
	} else {
		lines[0] = strings.TrimSpace(parts[0])
	}

	seen := make(map[string]bool)
	var branches []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// strip the remote prefix, "origin/master" -> "master"
		if _, name, ok := strings.Cut(line, "/"); ok {
			line = name
		}
		if !seen[line] {
			seen[line] = true
			branches = append(branches, line)
		}
	}
	return branches, nil
}

func (g *Git) GetRevisions(ctx context.Context, since map[string]time.Time, branches []string) (map[string][]Revision, error) {
	// fetch first so new branches on the remote become visible
	if _, err := g.Fetch(ctx); err != nil {
		return nil, err
	}
	remoteBranches, err := g.GetRemoteBranches(ctx)
	if err != nil {
		return nil, err
	}
	if len(branches) > 0 {
		remoteBranches = filterBranches(remoteBranches, branches)
	}

	revisions := make(map[string][]Revision)
	for _, branch := range remoteBranches {
		revs, err := g.revisionsForRemoteBranch(ctx, branch, since[branch])
		if err != nil {
			g.log.Error("error fetching changes on branch",
				logger.Fields("branch", branch, "error", err.Error()))
			continue
		}
		if len(revs) > 0 {
			revisions[branch] = revs
		}
	}
	return revisions, nil
}

func (g *Git) revisionsForRemoteBranch(ctx context.Context, branch string, since time.Time) ([]Revision, error) {
	if err := g.Checkout(ctx, branch); err != nil {
		return nil, err
	}
	if _, err := g.Pull(ctx, branch, "origin"); err != nil {
		return nil, err
	}
	return g.GetRevisionsForBranch(ctx, branch, since)
}

func (g *Git) GetLocalRevisions(ctx context.Context, since map[string]time.Time, branches []string) (map[string][]Revision, error) {
	revisions := make(map[string][]Revision)
	for _, branch := range branches {
		if err := g.Checkout(ctx, branch); err != nil {
			g.log.Error("error fetching local changes on branch",
				logger.Fields("branch", branch, "error", err.Error()))
			continue
		}
		revs, err := g.GetRevisionsForBranch(ctx, branch, since[branch])
		if err != nil {
			g.log.Error("error fetching local changes on branch",
				logger.Fields("branch", branch, "error", err.Error()))
			continue
		}
		if len(revs) > 0 {
			revisions[branch] = revs
		}
	}
	return revisions, nil
}

func (g *Git) GetRevisionsForBranch(ctx context.Context, branch string, since time.Time) ([]Revision, error) {
	cmd := fmt.Sprintf(`git log --pretty=format:"%%H | %%ad | %%an | %%s | %%+b %s" `,
		commitSeparator)
	if !since.IsZero() {
		// git commit dates come back in localtime with --date=local, so
		// the since boundary is converted to localtime too
		date := since.Local().Format(gitDateLayout)
		cmd += fmt.Sprintf("--since=\"%s\" ", date)
	}
	cmd += "--date=local"

	g.log.Debug("getting revisions for branch",
		logger.Fields("branch", branch, "command", cmd))
	out, err := g.exec(ctx, cmd, "")
	if err != nil {
		return nil, err
	}

	var chunks []string
	for _, chunk := range strings.Split(out, commitSeparator+"\n") {
		// the last chunk keeps its separator since no newline follows it
		chunk = strings.TrimSuffix(chunk, commitSeparator)
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		chunks = append(chunks, chunk)
	}
	// oldest first
	for i, j := 0, len(chunks)-1; i < j; i, j = i+1, j-1 {
		chunks[i], chunks[j] = chunks[j], chunks[i]
	}

	var revisions []Revision
	for _, chunk := range chunks {
		rev, err := parseRevision(chunk)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	if len(revisions) == 0 {
		return nil, nil
	}
	// the first revision here is the newest one already consumed the
	// last time around
	return revisions[1:], nil
}

func parseRevision(chunk string) (Revision, error) {
	parts := strings.SplitN(chunk, " | ", 5)
	if len(parts) != 5 {
		return Revision{}, fmt.Errorf("vcs: malformed log entry: %q", chunk)
	}
	date, err := time.ParseInLocation(gitDateLayout, strings.TrimSpace(parts[1]), time.Local)
	if err != nil {
		return Revision{}, fmt.Errorf("vcs: parsing commit date: %w", err)
	}
	return Revision{
		Commit:     strings.TrimSpace(parts[0]),
		CommitDate: date.UTC(),
		Author:     parts[2],
		Title:      parts[3],
		Body:       strings.TrimSpace(parts[4]),
	}, nil
}

func filterBranches(remoteBranches, patterns []string) []string {
	var out []string
	for _, b := range remoteBranches {
		if util.MatchString(b, patterns) {
			out = append(out, b)
		}
	}
	return out
}
