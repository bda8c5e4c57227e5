// Package publish commits the generated site and pushes it to a remote.
package publish

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Options configures a publish.
type Options struct {
	Remote      string
	AuthorName  string
	AuthorEmail string
	Message     string
	Now         func() time.Time
}

// Result describes what a publish did.
type Result struct {
	Committed bool
	Commit    plumbing.Hash
	Pushed    bool
}

// Publish stages every change in the repository at dir, commits when the
// worktree is dirty and pushes to opts.Remote. A remote that is already up to
// date is not an error.
func Publish(dir string, opts Options) (*Result, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository '%s': %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree of '%s': %w", dir, err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("failed to stage changes in '%s': %w", dir, err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read status of '%s': %w", dir, err)
	}

	res := &Result{}
	if !status.IsClean() {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		res.Commit, err = wt.Commit(opts.Message, &git.CommitOptions{
			Author: &object.Signature{Name: opts.AuthorName, Email: opts.AuthorEmail, When: now()},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to commit '%s': %w", dir, err)
		}
		res.Committed = true
		slog.Info("Committed site", "commit", res.Commit.String()[:8])
	} else {
		slog.Info("No changes to commit", "path", dir)
	}

	err = repo.Push(&git.PushOptions{RemoteName: opts.Remote})
	switch {
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		slog.Info("Remote already up to date", "remote", opts.Remote)
	case err != nil:
		return res, fmt.Errorf("failed to push to remote '%s': %w", opts.Remote, err)
	default:
		res.Pushed = true
		slog.Info("Pushed site", "remote", opts.Remote)
	}
	return res, nil
}
