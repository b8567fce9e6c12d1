package repo

import (
	"errors"
	"testing"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

func TestResolveNameFullAndAbbreviatedHash(t *testing.T) {
	r := newTestRepo(t)
	commit, _, _ := seedCommit(t, r, "one", 100, nil)

	got, err := r.ResolveName(string(commit))
	if err != nil {
		t.Fatalf("ResolveName(full): %v", err)
	}
	if got != commit {
		t.Errorf("full hash: got %s, want %s", got, commit)
	}

	got, err = r.ResolveName(string(commit[:8]))
	if err != nil {
		t.Fatalf("ResolveName(short): %v", err)
	}
	if got != commit {
		t.Errorf("short hash: got %s, want %s", got, commit)
	}
}

func TestResolveNameBranchTagAndHead(t *testing.T) {
	r := newTestRepo(t)
	commit, _, _ := seedCommit(t, r, "one", 100, nil)

	if err := r.UpdateRef("refs/heads/main", commit); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}
	if err := r.CreateTag("v1", commit, false); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	for _, name := range []string{"HEAD", "main", "v1", "heads/main", "tags/v1"} {
		got, err := r.ResolveName(name)
		if err != nil {
			t.Fatalf("ResolveName(%q): %v", name, err)
		}
		if got != commit {
			t.Errorf("ResolveName(%q) = %s, want %s", name, got, commit)
		}
	}
}

func TestResolveNamePrefersTagsOverHeads(t *testing.T) {
	r := newTestRepo(t)
	first, _, _ := seedCommit(t, r, "one", 100, nil)
	second, _, _ := seedCommit(t, r, "two", 200, []object.Hash{first})

	if err := r.UpdateRef("refs/tags/shared", first); err != nil {
		t.Fatalf("UpdateRef tag: %v", err)
	}
	if err := r.UpdateRef("refs/heads/shared", second); err != nil {
		t.Fatalf("UpdateRef branch: %v", err)
	}

	got, err := r.ResolveName("shared")
	if err != nil {
		t.Fatalf("ResolveName: %v", err)
	}
	if got != first {
		t.Errorf("ResolveName(shared) = %s, want the tag target %s", got, first)
	}
}

func TestResolveNameAmbiguousPrefix(t *testing.T) {
	r := newTestRepo(t)
	plantLooseObject(t, r, object.Hash("deadbeef"+"00000000000000000000000000000000"))
	plantLooseObject(t, r, object.Hash("deadbeef"+"11111111111111111111111111111111"))

	if _, err := r.ResolveName("deadbeef"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("ResolveName(shared prefix) = %v, want ErrAmbiguous", err)
	}
}

func TestResolveNameHexLookingRefIsAmbiguousWithObject(t *testing.T) {
	r := newTestRepo(t)
	commit, _, _ := seedCommit(t, r, "one", 100, nil)
	plantLooseObject(t, r, object.Hash("cafe0000"+"00000000000000000000000000000000"))
	if err := r.UpdateRef("refs/heads/cafe0000", commit); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}

	if _, err := r.ResolveName("cafe0000"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("ResolveName(hash-vs-branch) = %v, want ErrAmbiguous", err)
	}
}

func TestResolveNameErrors(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.ResolveName("no-such-thing"); !errors.Is(err, ErrRefNotFound) {
		t.Errorf("ResolveName(unknown) = %v, want ErrRefNotFound", err)
	}
	if _, err := r.ResolveName("  "); !errors.Is(err, ErrInvalidRef) {
		t.Errorf("ResolveName(blank) = %v, want ErrInvalidRef", err)
	}
}

func TestFindPeelsToWantedType(t *testing.T) {
	r := newTestRepo(t)
	commit, tree, _ := seedCommit(t, r, "one", 100, nil)

	tagger := object.Identity{Name: "T", Email: "t@x", When: 1, TZ: "+0000"}
	tagHash, err := r.CreateAnnotatedTag("v1", commit, tagger, "release\n", false, nil)
	if err != nil {
		t.Fatalf("CreateAnnotatedTag: %v", err)
	}

	cases := []struct {
		name string
		want object.Type
		out  object.Hash
	}{
		{"v1", object.TypeTag, tagHash},
		{"v1", object.TypeCommit, commit},
		{"v1", object.TypeTree, tree},
		{string(commit), object.TypeTree, tree},
	}
	for _, tc := range cases {
		got, err := r.Find(tc.name, tc.want, true)
		if err != nil {
			t.Fatalf("Find(%q, %s): %v", tc.name, tc.want, err)
		}
		if got != tc.out {
			t.Errorf("Find(%q, %s) = %s, want %s", tc.name, tc.want, got, tc.out)
		}
	}
}

func TestFindWithoutFollowRejectsMismatch(t *testing.T) {
	r := newTestRepo(t)
	commit, _, _ := seedCommit(t, r, "one", 100, nil)

	if _, err := r.Find(string(commit), object.TypeTree, false); err == nil {
		t.Error("Find without follow should refuse to peel a commit to a tree")
	}
	if _, err := r.Find(string(commit), object.TypeBlob, true); err == nil {
		t.Error("a commit can never peel to a blob")
	}
}
