package fs

import (
	"context"
	"iter"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// Walker enumerates regular files below a scan root.
type Walker struct {
	open   Opener
	logger ports.Logger
}

var _ ports.Walker = (*Walker)(nil)

// NewWalker creates a Walker over the operating system filesystem.
func NewWalker(logger ports.Logger) *Walker {
	return NewWalkerWithOpener(logger, OSOpener)
}

// NewWalkerWithOpener creates a Walker over filesystems produced by open.
func NewWalkerWithOpener(logger ports.Logger, open Opener) *Walker {
	return &Walker{open: open, logger: logger}
}

// Walk yields root-relative, slash-separated paths of regular files in lexical order
// per directory. Symlinks to files are followed; symlinked directories are not
// descended. Unreadable entries are logged and skipped. Excluded directories are
// pruned without being read. The vigil state directory is never entered.
func (w *Walker) Walk(ctx context.Context, root string, rules domain.ExclusionRules) iter.Seq[string] {
	return func(yield func(string) bool) {
		fsys := w.open(root)
		w.walkDir(ctx, fsys, "", rules, yield)
	}
}

// Exists reports whether anything exists at rel, following symlinks.
func (w *Walker) Exists(root, rel string) bool {
	_, err := w.open(root).Stat(rooted(rel))
	return err == nil
}

func (w *Walker) walkDir(
	ctx context.Context,
	fsys billy.Filesystem,
	dir string,
	rules domain.ExclusionRules,
	yield func(string) bool,
) bool {
	if ctx.Err() != nil {
		return false
	}

	entries, err := fsys.ReadDir(rooted(dir))
	if err != nil {
		w.logger.Warn("skipping unreadable directory", "path", displayPath(dir), "error", err)
		return true
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, info := range entries {
		name := info.Name()
		if name == "" || name == "." || name == ".." {
			continue
		}

		rel := name
		if dir != "" {
			rel = dir + "/" + name
		}

		mode := info.Mode()
		if mode&os.ModeSymlink != 0 {
			target, err := fsys.Stat(rooted(rel))
			if err != nil {
				w.logger.Warn("skipping broken symlink", "path", rel, "error", err)
				continue
			}
			if target.IsDir() {
				w.logger.Info("not following symlinked directory", "path", rel)
				continue
			}
			mode = target.Mode()
		}

		switch {
		case mode.IsDir():
			if name == domain.VigilDirName || rules.ExcludesDir(rel) {
				continue
			}
			if !w.walkDir(ctx, fsys, rel, rules, yield) {
				return false
			}
		case mode.IsRegular():
			if rules.Excludes(rel) {
				continue
			}
			if !yield(rel) {
				return false
			}
		}
	}

	return true
}

func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
