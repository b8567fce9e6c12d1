package repo

import (
	"fmt"
	"strings"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

// refSearchPaths is the resolution order for a bare name: the literal
// path as given, then the refs namespaces. The first existing match
// wins.
func refSearchPaths(name string) []string {
	return []string{
		name,
		"refs/" + name,
		"refs/tags/" + name,
		"refs/heads/" + name,
		"refs/remotes/" + name,
		"refs/remotes/" + name + "/HEAD",
	}
}

// Candidates gathers every object hash a name could mean: matches of
// an abbreviated hash against the store, plus the first reference file
// the search order turns up. More than one candidate is for the caller
// to reject.
func (r *Repo) Candidates(name string) ([]object.Hash, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("resolve: %w: empty name", ErrInvalidRef)
	}

	if name == "HEAD" {
		h, err := r.ResolveRef("HEAD")
		if err != nil {
			return nil, err
		}
		return []object.Hash{h}, nil
	}

	var candidates []object.Hash

	if lowered := strings.ToLower(name); object.IsHashPrefix(lowered) {
		matches, err := r.Store.ResolveShortPrefix(lowered)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}
		candidates = append(candidates, matches...)
	}

	for _, path := range refSearchPaths(name) {
		if !r.RefExists(path) {
			continue
		}
		h, err := r.ResolveRef(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}
		candidates = appendUnique(candidates, h)
		break
	}

	return candidates, nil
}

// ResolveName resolves a name (branch, tag, HEAD, full or abbreviated
// hash) to exactly one object hash. Zero candidates fails
// ErrRefNotFound; several fail ErrAmbiguous, listing them.
func (r *Repo) ResolveName(name string) (object.Hash, error) {
	candidates, err := r.Candidates(name)
	if err != nil {
		return "", err
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("resolve %q: %w", name, ErrRefNotFound)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("resolve %q: %w: candidates are %s", name, ErrAmbiguous, joinHashes(candidates))
	}
}

// Find resolves a name and, when want is non-empty, peels the result
// until an object of the wanted kind is reached: tags peel to their
// target, commits peel to their tree when a tree is wanted. With
// follow disabled a kind mismatch is an immediate error.
func (r *Repo) Find(name string, want object.Type, follow bool) (object.Hash, error) {
	h, err := r.ResolveName(name)
	if err != nil {
		return "", err
	}
	if want == "" {
		return h, nil
	}

	for hop := 0; hop < maxRefHops; hop++ {
		t, payload, err := r.Store.Read(h)
		if err != nil {
			return "", fmt.Errorf("find %q: %w", name, err)
		}
		if t == want {
			return h, nil
		}
		if !follow {
			return "", fmt.Errorf("find %q: object %s is a %s, not a %s", name, h, t, want)
		}

		switch t {
		case object.TypeTag:
			tag, err := object.UnmarshalTag(payload)
			if err != nil {
				return "", fmt.Errorf("find %q: %w", name, err)
			}
			h = tag.Target()
		case object.TypeCommit:
			if want != object.TypeTree {
				return "", fmt.Errorf("find %q: object %s is a %s, not a %s", name, h, t, want)
			}
			commit, err := object.UnmarshalCommit(payload)
			if err != nil {
				return "", fmt.Errorf("find %q: %w", name, err)
			}
			h = commit.TreeHash()
		default:
			return "", fmt.Errorf("find %q: object %s is a %s, not a %s", name, h, t, want)
		}
	}
	return "", fmt.Errorf("find %q: %w while peeling", name, ErrRefCycle)
}

func appendUnique(hashes []object.Hash, h object.Hash) []object.Hash {
	for _, existing := range hashes {
		if existing == h {
			return hashes
		}
	}
	return append(hashes, h)
}
