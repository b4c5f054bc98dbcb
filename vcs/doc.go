// Package vcs provides a generic interface to version control systems
// (clone, fetch, revisions, branches) for build repositories.
//
// Backends are registered in a lookup table keyed on backend name and
// issue their shell commands through the process package:
//
//	factory, err := vcs.Get("git")
//	repo := factory(workdir)
//	err = repo.Clone(ctx, "https://example.com/repo.git")
package vcs
