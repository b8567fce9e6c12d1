package object

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Store is a content-addressed loose-object store with a 2-character
// fan-out directory layout: objects/ab/cdef0123... Entries are
// zlib-compressed "type len\0payload" frames.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given control directory. The
// objects/ subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if !IsFullHash(string(h)) {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write computes the object's hash and, when persist is true, stores
// the compressed frame on disk. The hash is always returned, so
// persist=false is a dry run. Writing is idempotent: content-addressed
// entries are immutable once their name is known, so an existing entry
// is left untouched. Persisted writes go through a temp file and a
// rename so a concurrent reader never observes a partial object.
func (s *Store) Write(o Object, persist bool) (Hash, error) {
	payload, err := Marshal(o)
	if err != nil {
		return "", fmt.Errorf("object write: %w", err)
	}
	h := HashObject(o.Type(), payload)
	if !persist {
		return h, nil
	}

	if s.Has(h) {
		return h, nil
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(Compress(Serialize(o.Type(), payload))); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	return h, nil
}

// Read retrieves the raw payload of an object by hash, returning its
// declared type. The stored frame is decompressed, the header parsed,
// and the declared length checked against the actual payload.
func (s *Store) Read(h Hash) (Type, []byte, error) {
	if !IsFullHash(string(h)) {
		return "", nil, fmt.Errorf("object read %q: %w", h, ErrObjectNotFound)
	}
	compressed, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	raw, err := Decompress(compressed)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("object read %s: %w: no NUL in frame", h, ErrCorruptObject)
	}
	header := string(raw[:nul])
	payload := raw[nul+1:]

	typeName, sizeText, ok := strings.Cut(header, " ")
	if !ok {
		return "", nil, fmt.Errorf("object read %s: %w: invalid frame header %q", h, ErrCorruptObject, header)
	}
	t := Type(typeName)
	switch t {
	case TypeBlob, TypeTree, TypeCommit, TypeTag:
	default:
		return "", nil, fmt.Errorf("object read %s: %w: %q", h, ErrUnknownType, typeName)
	}
	size, err := strconv.Atoi(sizeText)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w: invalid length %q", h, ErrCorruptObject, sizeText)
	}
	if size != len(payload) {
		return "", nil, fmt.Errorf("object read %s: %w: declared %d, actual %d", h, ErrSizeMismatch, size, len(payload))
	}

	return t, payload, nil
}

// ReadObject reads and decodes an object of any kind.
func (s *Store) ReadObject(h Hash) (Object, error) {
	t, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	return Unmarshal(t, payload)
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	t, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if t != TypeBlob {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, t, TypeBlob)
	}
	return UnmarshalBlob(payload)
}

// ReadTree reads and deserializes a Tree.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	t, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if t != TypeTree {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, t, TypeTree)
	}
	return UnmarshalTree(payload)
}

// ReadCommit reads and deserializes a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	t, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if t != TypeCommit {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, t, TypeCommit)
	}
	return UnmarshalCommit(payload)
}

// ReadTag reads and deserializes a Tag.
func (s *Store) ReadTag(h Hash) (*Tag, error) {
	t, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if t != TypeTag {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, t, TypeTag)
	}
	return UnmarshalTag(payload)
}

// ResolveShortPrefix expands an abbreviated hash (minimum 4 hex
// characters) by scanning the candidate fan-out directory. All matches
// are returned, sorted; the caller decides whether more than one is an
// error. A prefix with no matches yields an empty set, not an error.
func (s *Store) ResolveShortPrefix(prefix string) ([]Hash, error) {
	prefix = strings.ToLower(prefix)
	if !IsHashPrefix(prefix) {
		return nil, fmt.Errorf("resolve prefix %q: not a hash prefix", prefix)
	}

	dir := filepath.Join(s.root, "objects", prefix[:2])
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve prefix %q: %w", prefix, err)
	}

	rem := prefix[2:]
	var matches []Hash
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasPrefix(name, rem) {
			matches = append(matches, Hash(prefix[:2]+name))
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
	return matches, nil
}
