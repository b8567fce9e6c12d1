package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	r, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

// seedCommit writes a blob, a tree holding it, and a commit over that
// tree, returning all three hashes.
func seedCommit(t *testing.T, r *Repo, content string, when int64, parents []object.Hash) (commit, tree, blob object.Hash) {
	t.Helper()

	blob, err := r.Store.Write(&object.Blob{Data: []byte(content)}, true)
	if err != nil {
		t.Fatalf("write blob: %v", err)
	}
	tree, err = r.Store.Write(&object.Tree{Entries: []object.TreeEntry{
		{Mode: object.ModeFile, Path: "file.txt", Hash: blob},
	}}, true)
	if err != nil {
		t.Fatalf("write tree: %v", err)
	}

	id := object.Identity{Name: "Test", Email: "test@example.com", When: when, TZ: "+0000"}
	commit, err = r.Store.Write(object.NewCommit(tree, parents, id, id, "commit "+content+"\n"), true)
	if err != nil {
		t.Fatalf("write commit: %v", err)
	}
	return commit, tree, blob
}

// plantLooseObject drops a file into the fan-out layout directly so
// prefix collisions can be constructed without hunting for real SHA-1
// collisions.
func plantLooseObject(t *testing.T, r *Repo, h object.Hash) {
	t.Helper()
	dir := filepath.Join(r.GitDir, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir fanout: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, string(h[2:])), []byte("placeholder"), 0o644); err != nil {
		t.Fatalf("plant object: %v", err)
	}
}
