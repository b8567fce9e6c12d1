package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

// CreateBranch creates a branch ref under refs/heads/ pointing at
// target. An existing branch is only replaced when force is set.
func (r *Repo) CreateBranch(name string, target object.Hash, force bool) error {
	name = strings.TrimSpace(name)
	if err := validateRefComponent(name); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	if strings.TrimSpace(string(target)) == "" {
		return fmt.Errorf("create branch: target hash is required")
	}

	refName := "refs/heads/" + name
	if !force && r.RefExists(refName) {
		return fmt.Errorf("create branch: branch %q already exists", name)
	}
	if err := r.UpdateRef(refName, target); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}

// DeleteBranch removes a branch ref. Deleting the branch HEAD points
// at is refused.
func (r *Repo) DeleteBranch(name string) error {
	name = strings.TrimSpace(name)
	if err := validateRefComponent(name); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	refName := "refs/heads/" + name
	if !r.RefExists(refName) {
		return fmt.Errorf("delete branch: branch %q does not exist", name)
	}
	if current, detached, err := r.CurrentBranch(); err == nil && !detached && current == name {
		return fmt.Errorf("delete branch: %q is the current branch", name)
	}
	return r.removeRefFile(refName)
}

// ListBranches lists branch names sorted alphabetically.
func (r *Repo) ListBranches() ([]string, error) {
	refs, err := r.ListRefs("heads")
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, strings.TrimPrefix(ref.Name, "refs/heads/"))
	}
	sort.Strings(names)
	return names, nil
}

// CurrentBranch returns the branch HEAD points at, or detached=true
// when HEAD holds a bare hash.
func (r *Repo) CurrentBranch() (string, bool, error) {
	head, err := r.Head()
	if err != nil {
		return "", false, err
	}
	if branch, ok := strings.CutPrefix(head, "refs/heads/"); ok {
		return branch, false, nil
	}
	return "", true, nil
}
