package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Marshal produces the canonical payload bytes for any object kind.
func Marshal(o Object) ([]byte, error) {
	switch o := o.(type) {
	case *Blob:
		return MarshalBlob(o), nil
	case *Tree:
		return MarshalTree(o)
	case *Commit:
		return MarshalCommit(o), nil
	case *Tag:
		return MarshalTag(o), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, o)
	}
}

// Unmarshal decodes a payload for the declared kind.
func Unmarshal(t Type, payload []byte) (Object, error) {
	switch t {
	case TypeBlob:
		return UnmarshalBlob(payload)
	case TypeTree:
		return UnmarshalTree(payload)
	case TypeCommit:
		return UnmarshalCommit(payload)
	case TypeTag:
		return UnmarshalTag(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob (identity).
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// treeSortKey is the canonical ordering key: directories sort as if a
// trailing separator were appended, so the same logical tree always
// serializes identically regardless of input order.
func treeSortKey(e TreeEntry) string {
	if strings.HasPrefix(e.Mode, "10") {
		return e.Path
	}
	return e.Path + "/"
}

// MarshalTree serializes a Tree. Each entry becomes
// "mode SP path NUL raw20" with entries in canonical sort order.
func MarshalTree(t *Tree) ([]byte, error) {
	sorted := make([]TreeEntry, len(t.Entries))
	copy(sorted, t.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return treeSortKey(sorted[i]) < treeSortKey(sorted[j])
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		raw, err := hex.DecodeString(string(e.Hash))
		if err != nil || len(raw) != 20 {
			return nil, fmt.Errorf("marshal tree: entry %q: invalid hash %q", e.Path, e.Hash)
		}
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Path)
		buf.WriteByte(0)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses tree entries until the input is exhausted. Modes
// are kept verbatim; raw 20-byte hashes are converted to hex.
func UnmarshalTree(data []byte) (*Tree, error) {
	t := &Tree{}
	pos := 0
	for pos < len(data) {
		sp := bytes.IndexByte(data[pos:], ' ')
		if sp < 0 {
			return nil, fmt.Errorf("%w: missing space after mode at offset %d", ErrMalformedTree, pos)
		}
		mode := string(data[pos : pos+sp])
		pos += sp + 1

		nul := bytes.IndexByte(data[pos:], 0)
		if nul < 0 {
			return nil, fmt.Errorf("%w: missing NUL after path at offset %d", ErrMalformedTree, pos)
		}
		path := string(data[pos : pos+nul])
		pos += nul + 1

		if pos+20 > len(data) {
			return nil, fmt.Errorf("%w: truncated hash for entry %q", ErrMalformedTree, path)
		}
		h := hex.EncodeToString(data[pos : pos+20])
		pos += 20

		t.Entries = append(t.Entries, TreeEntry{Mode: mode, Path: path, Hash: Hash(h)})
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// Commit / Tag (key-value list with message)
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit: headers in insertion order, a
// blank line, then the message verbatim.
func MarshalCommit(c *Commit) []byte {
	return marshalKVLM(c.Headers, c.Message)
}

// UnmarshalCommit parses a Commit from its serialized form.
func UnmarshalCommit(data []byte) (*Commit, error) {
	hdrs, msg, err := unmarshalKVLM(data)
	if err != nil {
		return nil, err
	}
	return &Commit{Headers: hdrs, Message: msg}, nil
}

// MarshalTag serializes a Tag; same layout as a commit.
func MarshalTag(t *Tag) []byte {
	return marshalKVLM(t.Headers, t.Message)
}

// UnmarshalTag parses a Tag from its serialized form.
func UnmarshalTag(data []byte) (*Tag, error) {
	hdrs, msg, err := unmarshalKVLM(data)
	if err != nil {
		return nil, err
	}
	return &Tag{Headers: hdrs, Message: msg}, nil
}

// marshalKVLM emits each field as "key SP value LF" with embedded
// newlines continued as "LF SP", then a blank line, then the message
// with no trailing transformation.
func marshalKVLM(hdrs Headers, message string) []byte {
	var buf bytes.Buffer
	for _, f := range hdrs {
		buf.WriteString(f.Key)
		buf.WriteByte(' ')
		buf.WriteString(strings.ReplaceAll(f.Value, "\n", "\n "))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.WriteString(message)
	return buf.Bytes()
}

// unmarshalKVLM parses line-by-line: a line starting with a space
// continues the previous field's value, a blank line terminates the
// header block, and everything after it is the message verbatim.
func unmarshalKVLM(data []byte) (Headers, string, error) {
	var hdrs Headers
	pos := 0
	for pos < len(data) {
		nl := bytes.IndexByte(data[pos:], '\n')
		if nl < 0 {
			break
		}
		line := data[pos : pos+nl]
		pos += nl + 1

		if len(line) == 0 {
			return hdrs, string(data[pos:]), nil
		}

		if line[0] == ' ' {
			if len(hdrs) == 0 {
				return nil, "", fmt.Errorf("%w: continuation line with no preceding field", ErrMalformedHeader)
			}
			hdrs[len(hdrs)-1].Value += "\n" + string(line[1:])
			continue
		}

		sp := bytes.IndexByte(line, ' ')
		if sp < 0 {
			return nil, "", fmt.Errorf("%w: line %q lacks key-value structure", ErrMalformedHeader, line)
		}
		hdrs = append(hdrs, HeaderField{Key: string(line[:sp]), Value: string(line[sp+1:])})
	}
	return nil, "", fmt.Errorf("%w: missing blank-line terminator", ErrMalformedHeader)
}
