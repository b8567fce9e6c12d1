package object

import (
	"fmt"
	"sort"
)

// Step is one emitted commit from a history walk.
type Step struct {
	Hash   Hash
	Commit *Commit
}

// Edge is a child-to-parent link in the commit graph, used by
// downstream rendering.
type Edge struct {
	Child  Hash
	Parent Hash
}

// Walker traverses the parent-chain of commits starting from a single
// commit, emitting each reachable commit exactly once. The frontier is
// ordered by committer timestamp descending, ties broken by hash, so
// output is roughly reverse-chronological. A fresh Walk call starts a
// fresh traversal; iteration is not resumable across walkers.
type Walker struct {
	store    *Store
	frontier []*Step
	enqueued map[Hash]bool
}

// Walk creates a walker over the ancestry of start. The start commit is
// dereferenced immediately so an invalid hash fails here rather than on
// the first Next call.
func (s *Store) Walk(start Hash) (*Walker, error) {
	w := &Walker{
		store:    s,
		enqueued: make(map[Hash]bool),
	}
	if err := w.enqueue(start); err != nil {
		return nil, err
	}
	return w, nil
}

// Next returns the next commit, or nil when the traversal is exhausted.
// Parents of the emitted commit are dereferenced and queued; a commit
// reachable through several parents (diamond merges) is queued once.
func (w *Walker) Next() (*Step, error) {
	if len(w.frontier) == 0 {
		return nil, nil
	}
	step := w.frontier[0]
	w.frontier = w.frontier[1:]

	for _, parent := range step.Commit.Parents() {
		if err := w.enqueue(parent); err != nil {
			return nil, fmt.Errorf("walk %s: %w", step.Hash, err)
		}
	}
	return step, nil
}

func (w *Walker) enqueue(h Hash) error {
	if w.enqueued[h] {
		return nil
	}
	c, err := w.store.ReadCommit(h)
	if err != nil {
		return err
	}
	w.enqueued[h] = true
	w.frontier = append(w.frontier, &Step{Hash: h, Commit: c})
	sort.SliceStable(w.frontier, func(i, j int) bool {
		ti, tj := w.frontier[i].Commit.CommitterTime(), w.frontier[j].Commit.CommitterTime()
		if ti != tj {
			return ti > tj
		}
		return w.frontier[i].Hash < w.frontier[j].Hash
	})
	return nil
}

// WalkAll drains a full traversal from start, returning the visited
// commits in emission order together with every child-parent edge.
func (s *Store) WalkAll(start Hash) ([]*Step, []Edge, error) {
	w, err := s.Walk(start)
	if err != nil {
		return nil, nil, err
	}

	var steps []*Step
	var edges []Edge
	for {
		step, err := w.Next()
		if err != nil {
			return nil, nil, err
		}
		if step == nil {
			return steps, edges, nil
		}
		steps = append(steps, step)
		for _, parent := range step.Commit.Parents() {
			edges = append(edges, Edge{Child: step.Hash, Parent: parent})
		}
	}
}
