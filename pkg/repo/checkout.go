package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

// checkoutFrame is one unit of materialization work: a tree to expand
// into a directory. An explicit stack bounds depth for pathologically
// nested trees.
type checkoutFrame struct {
	tree object.Hash
	dir  string
}

// Checkout materializes the tree behind name (a commit, tag, or tree)
// into target. The target must be absent or an empty directory; the
// safety checks run before any write, so a refused checkout leaves the
// filesystem untouched.
func (r *Repo) Checkout(name, target string) error {
	treeHash, err := r.Find(name, object.TypeTree, true)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("checkout %q: %w", target, ErrTargetNotADirectory)
	case err == nil:
		entries, err := os.ReadDir(target)
		if err != nil {
			return fmt.Errorf("checkout %q: %w", target, err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("checkout %q: %w", target, ErrTargetNotEmpty)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("checkout %q: mkdir: %w", target, err)
		}
	default:
		return fmt.Errorf("checkout %q: %w", target, err)
	}

	stack := []checkoutFrame{{tree: treeHash, dir: target}}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tree, err := r.Store.ReadTree(frame.tree)
		if err != nil {
			return fmt.Errorf("checkout: read tree %s: %w", frame.tree, err)
		}

		for _, entry := range tree.Entries {
			dest := filepath.Join(frame.dir, entry.Path)
			switch {
			case isDirMode(entry.Mode):
				if err := os.Mkdir(dest, 0o755); err != nil && !os.IsExist(err) {
					return fmt.Errorf("checkout: mkdir %q: %w", dest, err)
				}
				stack = append(stack, checkoutFrame{tree: entry.Hash, dir: dest})
			case isFileMode(entry.Mode):
				blob, err := r.Store.ReadBlob(entry.Hash)
				if err != nil {
					return fmt.Errorf("checkout: read blob for %q: %w", entry.Path, err)
				}
				if err := os.WriteFile(dest, blob.Data, filePermFromMode(entry.Mode)); err != nil {
					return fmt.Errorf("checkout: write %q: %w", dest, err)
				}
			default:
				return fmt.Errorf("checkout: entry %q mode %q: %w", entry.Path, entry.Mode, ErrUnsupportedMode)
			}
		}
	}
	return nil
}
