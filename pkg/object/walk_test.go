package object

import (
	"errors"
	"testing"
)

func writeCommitAt(t *testing.T, s *Store, when int64, parents []Hash, msg string) Hash {
	t.Helper()
	id := Identity{Name: "Walker", Email: "walker@example.com", When: when, TZ: "+0000"}
	h, err := s.Write(NewCommit(Hash(hashA), parents, id, id, msg+"\n"), true)
	if err != nil {
		t.Fatalf("write commit %q: %v", msg, err)
	}
	return h
}

func TestWalkLinearHistory(t *testing.T) {
	s := newTestStore(t)
	c1 := writeCommitAt(t, s, 100, nil, "first")
	c2 := writeCommitAt(t, s, 200, []Hash{c1}, "second")
	c3 := writeCommitAt(t, s, 300, []Hash{c2}, "third")

	steps, edges, err := s.WalkAll(c3)
	if err != nil {
		t.Fatalf("WalkAll: %v", err)
	}
	want := []Hash{c3, c2, c1}
	if len(steps) != len(want) {
		t.Fatalf("visited %d commits, want %d", len(steps), len(want))
	}
	for i, h := range want {
		if steps[i].Hash != h {
			t.Errorf("steps[%d] = %s, want %s", i, steps[i].Hash, h)
		}
	}
	if len(edges) != 2 {
		t.Errorf("got %d edges, want 2", len(edges))
	}
}

func TestWalkDiamondVisitsSharedAncestorOnce(t *testing.T) {
	s := newTestStore(t)

	// base <- left, base <- right, merge <- {left, right}
	base := writeCommitAt(t, s, 100, nil, "base")
	left := writeCommitAt(t, s, 200, []Hash{base}, "left")
	right := writeCommitAt(t, s, 300, []Hash{base}, "right")
	merge := writeCommitAt(t, s, 400, []Hash{left, right}, "merge")

	steps, edges, err := s.WalkAll(merge)
	if err != nil {
		t.Fatalf("WalkAll: %v", err)
	}

	seen := make(map[Hash]int)
	for _, step := range steps {
		seen[step.Hash]++
	}
	for _, h := range []Hash{base, left, right, merge} {
		if seen[h] != 1 {
			t.Errorf("commit %s visited %d times, want 1", h, seen[h])
		}
	}
	if len(steps) != 4 {
		t.Errorf("visited %d commits, want 4", len(steps))
	}

	// All four child-parent links survive even though base is emitted once.
	if len(edges) != 4 {
		t.Errorf("got %d edges, want 4", len(edges))
	}
}

func TestWalkOrderByCommitterTime(t *testing.T) {
	s := newTestStore(t)
	base := writeCommitAt(t, s, 100, nil, "base")
	older := writeCommitAt(t, s, 150, []Hash{base}, "older branch tip")
	newer := writeCommitAt(t, s, 350, []Hash{base}, "newer branch tip")
	merge := writeCommitAt(t, s, 400, []Hash{older, newer}, "merge")

	steps, _, err := s.WalkAll(merge)
	if err != nil {
		t.Fatalf("WalkAll: %v", err)
	}
	want := []Hash{merge, newer, older, base}
	for i, h := range want {
		if steps[i].Hash != h {
			t.Errorf("steps[%d] = %s, want %s", i, steps[i].Hash, h)
		}
	}
}

func TestWalkMissingStart(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Walk(Hash(hashB)); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Walk(absent) = %v, want ErrObjectNotFound", err)
	}
}

func TestWalkStartMustBeCommit(t *testing.T) {
	s := newTestStore(t)
	blobHash, err := s.Write(&Blob{Data: []byte("not a commit")}, true)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := s.Walk(blobHash); err == nil {
		t.Error("Walk over a blob should fail")
	}
}
