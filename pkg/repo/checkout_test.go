package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

// seedNestedTree builds:
//
//	README          "hello\n"
//	bin/run.sh      "#!/bin/sh\n" (executable)
//	docs/notes.txt  "notes\n"
func seedNestedTree(t *testing.T, r *Repo) object.Hash {
	t.Helper()

	write := func(o object.Object) object.Hash {
		h, err := r.Store.Write(o, true)
		if err != nil {
			t.Fatalf("write object: %v", err)
		}
		return h
	}

	readme := write(&object.Blob{Data: []byte("hello\n")})
	script := write(&object.Blob{Data: []byte("#!/bin/sh\n")})
	notes := write(&object.Blob{Data: []byte("notes\n")})

	binTree := write(&object.Tree{Entries: []object.TreeEntry{
		{Mode: object.ModeExecutable, Path: "run.sh", Hash: script},
	}})
	docsTree := write(&object.Tree{Entries: []object.TreeEntry{
		{Mode: object.ModeFile, Path: "notes.txt", Hash: notes},
	}})
	return write(&object.Tree{Entries: []object.TreeEntry{
		{Mode: object.ModeFile, Path: "README", Hash: readme},
		{Mode: object.ModeDir, Path: "bin", Hash: binTree},
		{Mode: object.ModeDir, Path: "docs", Hash: docsTree},
	}})
}

func TestCheckoutMaterializesNestedTree(t *testing.T) {
	r := newTestRepo(t)
	root := seedNestedTree(t, r)
	target := filepath.Join(t.TempDir(), "worktree")

	if err := r.Checkout(string(root), target); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	readme, err := os.ReadFile(filepath.Join(target, "README"))
	if err != nil {
		t.Fatalf("read README: %v", err)
	}
	if string(readme) != "hello\n" {
		t.Errorf("README = %q, want %q", readme, "hello\n")
	}

	notes, err := os.ReadFile(filepath.Join(target, "docs", "notes.txt"))
	if err != nil {
		t.Fatalf("read docs/notes.txt: %v", err)
	}
	if string(notes) != "notes\n" {
		t.Errorf("docs/notes.txt = %q", notes)
	}

	info, err := os.Stat(filepath.Join(target, "bin", "run.sh"))
	if err != nil {
		t.Fatalf("stat bin/run.sh: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("bin/run.sh mode = %v, want executable", info.Mode())
	}
}

func TestCheckoutFromBranchPeelsToTree(t *testing.T) {
	r := newTestRepo(t)
	root := seedNestedTree(t, r)
	id := object.Identity{Name: "T", Email: "t@x", When: 100, TZ: "+0000"}
	commit, err := r.Store.Write(object.NewCommit(root, nil, id, id, "initial\n"), true)
	if err != nil {
		t.Fatalf("write commit: %v", err)
	}
	if err := r.UpdateRef("refs/heads/main", commit); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}

	target := filepath.Join(t.TempDir(), "out")
	if err := r.Checkout("main", target); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "README")); err != nil {
		t.Errorf("README not materialized: %v", err)
	}
}

func TestCheckoutIntoExistingEmptyDirectory(t *testing.T) {
	r := newTestRepo(t)
	root := seedNestedTree(t, r)
	target := t.TempDir()

	if err := r.Checkout(string(root), target); err != nil {
		t.Fatalf("Checkout into empty dir: %v", err)
	}
}

func TestCheckoutRefusesNonEmptyTarget(t *testing.T) {
	r := newTestRepo(t)
	root := seedNestedTree(t, r)

	target := t.TempDir()
	existing := filepath.Join(target, "keep.txt")
	if err := os.WriteFile(existing, []byte("precious"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := r.Checkout(string(root), target)
	if !errors.Is(err, ErrTargetNotEmpty) {
		t.Fatalf("Checkout = %v, want ErrTargetNotEmpty", err)
	}

	// The refusal happens before any write.
	entries, readErr := os.ReadDir(target)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 1 || entries[0].Name() != "keep.txt" {
		t.Errorf("target was modified by a refused checkout: %v", entries)
	}
}

func TestCheckoutRefusesFileTarget(t *testing.T) {
	r := newTestRepo(t)
	root := seedNestedTree(t, r)

	target := filepath.Join(t.TempDir(), "a-file")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.Checkout(string(root), target); !errors.Is(err, ErrTargetNotADirectory) {
		t.Errorf("Checkout = %v, want ErrTargetNotADirectory", err)
	}
}

func TestCheckoutRejectsUnsupportedEntryMode(t *testing.T) {
	r := newTestRepo(t)
	blob, err := r.Store.Write(&object.Blob{Data: []byte("link target")}, true)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := r.Store.Write(&object.Tree{Entries: []object.TreeEntry{
		{Mode: object.ModeSymlink, Path: "link", Hash: blob},
	}}, true)
	if err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(t.TempDir(), "out")
	if err := r.Checkout(string(tree), target); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("Checkout = %v, want ErrUnsupportedMode", err)
	}
}
