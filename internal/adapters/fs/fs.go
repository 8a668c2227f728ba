// Package fs provides file system adapters for walking and hashing files under a scan root.
package fs

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Opener returns a filesystem rooted at root.
type Opener func(root string) billy.Filesystem

// OSOpener opens the operating system filesystem chrooted at root.
func OSOpener(root string) billy.Filesystem {
	return osfs.New(root)
}

// FixedOpener ignores root and always returns fsys. Used with in-memory filesystems.
func FixedOpener(fsys billy.Filesystem) Opener {
	return func(string) billy.Filesystem {
		return fsys
	}
}

// rooted converts a slash-separated relative path to a path inside the chroot.
func rooted(rel string) string {
	return "/" + rel
}
