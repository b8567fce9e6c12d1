package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

func TestCreateAndListBranches(t *testing.T) {
	r := newTestRepo(t)
	commit, _, _ := seedCommit(t, r, "one", 100, nil)

	for _, name := range []string{"main", "feature/x", "archive"} {
		if err := r.CreateBranch(name, commit, false); err != nil {
			t.Fatalf("CreateBranch %s: %v", name, err)
		}
	}

	names, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	want := []string{"archive", "feature/x", "main"}
	if len(names) != len(want) {
		t.Fatalf("ListBranches = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ListBranches[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCurrentBranch(t *testing.T) {
	r := newTestRepo(t)
	commit, _, _ := seedCommit(t, r, "one", 100, nil)
	if err := r.CreateBranch("main", commit, false); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	name, detached, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if detached || name != "main" {
		t.Errorf("CurrentBranch = %q detached=%v, want main", name, detached)
	}

	// Detached HEAD holds a bare hash.
	if err := os.WriteFile(filepath.Join(r.GitDir, "HEAD"), []byte(string(commit)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, detached, err = r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch detached: %v", err)
	}
	if !detached {
		t.Error("CurrentBranch should report detached for a bare hash HEAD")
	}
}

func TestDeleteBranch(t *testing.T) {
	r := newTestRepo(t)
	commit, _, _ := seedCommit(t, r, "one", 100, nil)
	if err := r.CreateBranch("main", commit, false); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if err := r.CreateBranch("side", commit, false); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	if err := r.DeleteBranch("main"); err == nil {
		t.Error("deleting the current branch should be refused")
	}
	if err := r.DeleteBranch("side"); err != nil {
		t.Fatalf("DeleteBranch: %v", err)
	}
	if r.RefExists("refs/heads/side") {
		t.Error("deleted branch still exists")
	}
	if err := r.DeleteBranch("side"); err == nil {
		t.Error("deleting an absent branch should fail")
	}
}

func TestCreateBranchForce(t *testing.T) {
	r := newTestRepo(t)
	first, _, _ := seedCommit(t, r, "one", 100, nil)
	second, _, _ := seedCommit(t, r, "two", 200, []object.Hash{first})

	if err := r.CreateBranch("dev", first, false); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if err := r.CreateBranch("dev", second, false); err == nil {
		t.Error("duplicate branch should be refused without force")
	}
	if err := r.CreateBranch("dev", second, true); err != nil {
		t.Fatalf("forced CreateBranch: %v", err)
	}
	got, err := r.ResolveRef("refs/heads/dev")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if got != second {
		t.Errorf("forced branch points at %s, want %s", got, second)
	}
}
