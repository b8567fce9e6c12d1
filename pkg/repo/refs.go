package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

// maxRefHops bounds symbolic reference chains. HEAD -> branch is one
// hop; anything deeper than this is a loop.
const maxRefHops = 16

const (
	refLockRetryDelay = 5 * time.Millisecond
	refLockWaitLimit  = 2 * time.Second
)

// Ref is one resolved reference: a slash-separated path under the
// control directory and the hash it ultimately points at.
type Ref struct {
	Name string
	Hash object.Hash
}

// Head reads .git/HEAD. If the content is symbolic ("ref: ..."), it
// returns the target ref path (e.g. "refs/heads/main"); otherwise the
// raw content, a detached hash.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.GitDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")
	if target, ok := strings.CutPrefix(content, "ref: "); ok {
		return target, nil
	}
	return content, nil
}

// RefExists reports whether a reference file exists at the given path
// under the control directory.
func (r *Repo) RefExists(name string) bool {
	info, err := os.Stat(filepath.Join(r.GitDir, filepath.FromSlash(name)))
	return err == nil && !info.IsDir()
}

// ResolveRef resolves a reference path ("HEAD", "refs/heads/main") to
// an object hash, following "ref: " indirection chains up to
// maxRefHops before failing with ErrRefCycle. The final text must be a
// full hash or an abbreviated one expandable through the store.
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	cur := name
	for hop := 0; hop < maxRefHops; hop++ {
		data, err := os.ReadFile(filepath.Join(r.GitDir, filepath.FromSlash(cur)))
		if err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("resolve ref %q: %w", cur, ErrRefNotFound)
			}
			return "", fmt.Errorf("resolve ref %q: %w", cur, err)
		}

		text := strings.TrimSpace(string(data))
		if target, ok := strings.CutPrefix(text, "ref: "); ok {
			cur = strings.TrimSpace(target)
			continue
		}
		return r.candidateHash(cur, text)
	}
	return "", fmt.Errorf("resolve ref %q: %w after %d hops", name, ErrRefCycle, maxRefHops)
}

// candidateHash validates reference text as a hash. Full 40-hex
// resolves directly; a shorter prefix (>= 4 hex) goes through the
// store's fan-out scan; anything else is invalid. A prefix with zero
// matches is reported as an object-not-found condition, not a separate
// kind.
func (r *Repo) candidateHash(refName, text string) (object.Hash, error) {
	if object.IsFullHash(text) {
		return object.Hash(text), nil
	}
	if object.IsHashPrefix(text) {
		matches, err := r.Store.ResolveShortPrefix(text)
		if err != nil {
			return "", fmt.Errorf("resolve ref %q: %w", refName, err)
		}
		switch len(matches) {
		case 0:
			return "", fmt.Errorf("resolve ref %q: prefix %q: %w", refName, text, object.ErrObjectNotFound)
		case 1:
			return matches[0], nil
		default:
			return "", fmt.Errorf("resolve ref %q: prefix %q: %w: %s", refName, text, ErrAmbiguous, joinHashes(matches))
		}
	}
	return "", fmt.Errorf("resolve ref %q: %w: %q", refName, ErrInvalidRef, text)
}

// ListRefs enumerates reference files under .git/refs (or a prefix
// beneath it, e.g. "tags"), resolving each. Output is sorted by path
// for reproducible listings.
func (r *Repo) ListRefs(prefix string) ([]Ref, error) {
	root := filepath.Join(r.GitDir, "refs")
	dir := root
	if strings.TrimSpace(prefix) != "" {
		dir = filepath.Join(root, filepath.FromSlash(prefix))
	}

	var refs []Ref
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := "refs/" + filepath.ToSlash(rel)
		h, err := r.ResolveRef(name)
		if err != nil {
			return err
		}
		refs = append(refs, Ref{Name: name, Hash: h})
		return nil
	})
	if os.IsNotExist(err) {
		return refs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// UpdateRef points the named ref at a hash. The write goes through a
// lockfile and a rename so a reader never observes a half-written
// pointer, then the change is appended to the ref's log.
func (r *Repo) UpdateRef(name string, h object.Hash) error {
	oldHash, err := r.writeRefFile(name, string(h)+"\n")
	if err != nil {
		return err
	}
	if err := r.appendReflog(name, oldHash, h, "update"); err != nil {
		return fmt.Errorf("update ref %q: reflog: %w", name, err)
	}
	return nil
}

// WriteSymbolicRef points the named ref at another ref path, e.g.
// HEAD -> "refs/heads/main". Same atomicity as UpdateRef.
func (r *Repo) WriteSymbolicRef(name, target string) error {
	_, err := r.writeRefFile(name, "ref: "+target+"\n")
	return err
}

// writeRefFile writes content to a ref file via lockfile + rename and
// returns the previous hash text (empty if the ref did not exist).
func (r *Repo) writeRefFile(name, content string) (object.Hash, error) {
	refPath := filepath.Join(r.GitDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return "", fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}

	lockPath := refPath + ".lock"
	lockFile, err := acquireRefLock(lockPath)
	if err != nil {
		return "", fmt.Errorf("update ref %q: lock: %w", name, err)
	}
	cleanupLock := true
	defer func() {
		if lockFile != nil {
			_ = lockFile.Close()
		}
		if cleanupLock {
			_ = os.Remove(lockPath)
		}
	}()

	oldHash := readRefHash(refPath)

	if _, err := lockFile.WriteString(content); err != nil {
		return "", fmt.Errorf("update ref %q: write: %w", name, err)
	}
	if err := lockFile.Sync(); err != nil {
		return "", fmt.Errorf("update ref %q: sync: %w", name, err)
	}
	if err := lockFile.Close(); err != nil {
		lockFile = nil
		return "", fmt.Errorf("update ref %q: close: %w", name, err)
	}
	lockFile = nil

	if err := os.Rename(lockPath, refPath); err != nil {
		os.Remove(lockPath)
		return "", fmt.Errorf("update ref %q: rename: %w", name, err)
	}
	cleanupLock = false

	return oldHash, nil
}

// removeRefFile deletes a ref file, recording the removal in the
// reflog.
func (r *Repo) removeRefFile(name string) error {
	refPath := filepath.Join(r.GitDir, filepath.FromSlash(name))
	oldHash := readRefHash(refPath)
	if err := os.Remove(refPath); err != nil {
		return fmt.Errorf("remove ref %q: %w", name, err)
	}
	if err := r.appendReflog(name, oldHash, "", "delete"); err != nil {
		return fmt.Errorf("remove ref %q: reflog: %w", name, err)
	}
	return nil
}

func acquireRefLock(lockPath string) (*os.File, error) {
	deadline := time.Now().Add(refLockWaitLimit)
	for {
		f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if os.IsExist(err) {
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("timeout waiting for lock %q", lockPath)
			}
			time.Sleep(refLockRetryDelay)
			continue
		}
		return nil, err
	}
}

func readRefHash(refPath string) object.Hash {
	data, err := os.ReadFile(refPath)
	if err != nil {
		return ""
	}
	return object.Hash(strings.TrimSpace(string(data)))
}

func joinHashes(hashes []object.Hash) string {
	parts := make([]string, len(hashes))
	for i, h := range hashes {
		parts[i] = string(h)
	}
	return strings.Join(parts, ", ")
}

// validateRefComponent rejects names that would escape the refs
// namespace or produce unreadable files.
func validateRefComponent(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("invalid name %q", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("invalid name %q", name)
	}
	if strings.ContainsAny(name, " \t\n\r") {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}
