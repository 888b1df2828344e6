package internal

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	historyDirName = ".history"
	journalBranch  = "main"
	journalAuthor  = "timelog"
	journalEmail   = "timelog@local"
)

// Revision is one recorded state of the snapshot.
type Revision struct {
	Hash    string
	Message string
	When    time.Time
}

// Journal records snapshot revisions in a git object store kept next to the
// snapshot file. The snapshot's directory is the worktree; the object store
// lives under .history inside it.
type Journal struct {
	repo     *git.Repository
	worktree *git.Worktree
	root     string
	file     string
}

// OpenJournal opens (or initializes) the journal for the snapshot at the
// given path.
func OpenJournal(snapshotPath string) (*Journal, error) {
	root := filepath.Dir(snapshotPath)
	file := filepath.Base(snapshotPath)

	fs := osfs.New(filepath.Join(root, historyDirName))
	storage := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())
	wt := osfs.New(root)

	repo, err := git.Open(storage, wt)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.Init(storage, wt)
		if err != nil {
			return nil, fmt.Errorf("init journal: %w", err)
		}
		cfg, cfgErr := repo.Config()
		if cfgErr != nil {
			return nil, fmt.Errorf("journal config: %w", cfgErr)
		}
		cfg.Init.DefaultBranch = journalBranch
		if cfgErr := repo.SetConfig(cfg); cfgErr != nil {
			return nil, fmt.Errorf("journal config: %w", cfgErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("journal worktree: %w", err)
	}

	return &Journal{repo: repo, worktree: worktree, root: root, file: file}, nil
}

// Commit records the current snapshot contents under the given message.
// Returns nil when the snapshot is unchanged since the last revision.
func (j *Journal) Commit(message string) (*Revision, error) {
	if _, err := j.worktree.Add(j.file); err != nil {
		return nil, fmt.Errorf("stage snapshot: %w", err)
	}

	hash, err := j.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  journalAuthor,
			Email: journalEmail,
			When:  time.Now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("commit snapshot: %w", err)
	}

	commit, err := j.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("read commit: %w", err)
	}
	return toRevision(commit), nil
}

// Log lists revisions, newest first. A limit of 0 means no limit. An empty
// journal yields no revisions.
func (j *Journal) Log(limit int) ([]*Revision, error) {
	iter, err := j.repo.Log(&git.LogOptions{})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal log: %w", err)
	}
	defer iter.Close()

	var revs []*Revision
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(revs) >= limit {
			return io.EOF
		}
		revs = append(revs, toRevision(c))
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, err
	}
	return revs, nil
}

// Revert hard-resets the snapshot to the given revision.
func (j *Journal) Revert(ref string) (*Revision, error) {
	hash, err := j.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolve revision %q: %w", ref, err)
	}

	if err := j.worktree.Reset(&git.ResetOptions{
		Commit: *hash,
		Mode:   git.HardReset,
	}); err != nil {
		return nil, fmt.Errorf("reset to %q: %w", ref, err)
	}

	commit, err := j.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("read commit: %w", err)
	}
	return toRevision(commit), nil
}

// SnapshotAt returns the snapshot contents recorded at the given revision.
func (j *Journal) SnapshotAt(ref string) (string, error) {
	hash, err := j.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("resolve revision %q: %w", ref, err)
	}

	commit, err := j.repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("read commit: %w", err)
	}

	f, err := commit.File(j.file)
	if err != nil {
		return "", fmt.Errorf("snapshot at %q: %w", ref, err)
	}
	return f.Contents()
}

// Diff renders a text diff of the snapshot between two revisions.
func (j *Journal) Diff(oldRef, newRef string) (string, error) {
	oldText, err := j.SnapshotAt(oldRef)
	if err != nil {
		return "", err
	}
	newText, err := j.SnapshotAt(newRef)
	if err != nil {
		return "", err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs), nil
}

func toRevision(c *object.Commit) *Revision {
	return &Revision{
		Hash:    c.Hash.String(),
		Message: strings.TrimSpace(c.Message),
		When:    c.Author.When,
	}
}
