package object

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// Type identifies the kind of object stored. The set is closed: every
// encode/decode site switches exhaustively over these four values.
type Type string

const (
	TypeBlob   Type = "blob"
	TypeTree   Type = "tree"
	TypeCommit Type = "commit"
	TypeTag    Type = "tag"
)

const (
	// Tree mode strings, verbatim as they appear on the wire.
	ModeDir        = "40000"
	ModeFile       = "100644"
	ModeExecutable = "100755"
	ModeSymlink    = "120000"
	ModeGitlink    = "160000"
)

// Object is a decoded loose object. Instances are value-like and never
// mutated after construction; any change produces a new object with a
// new hash.
type Object interface {
	Type() Type
}

// Blob holds raw file data with no internal structure.
type Blob struct {
	Data []byte
}

func (*Blob) Type() Type { return TypeBlob }

// TreeEntry is one entry in a tree object. Mode is kept verbatim
// ("40000", "100644", ...) so decode/encode round-trips exactly.
type TreeEntry struct {
	Mode string
	Path string
	Hash Hash
}

// Tree holds a list of entries. Marshaling sorts them into canonical
// order; the in-memory order is whatever the caller built.
type Tree struct {
	Entries []TreeEntry
}

func (*Tree) Type() Type { return TypeTree }

// HeaderField is a single key/value pair from a commit or tag header.
// Values may span multiple lines (signatures); embedded newlines are
// kept verbatim.
type HeaderField struct {
	Key   string
	Value string
}

// Headers is an ordered list of header fields. Duplicate keys (multiple
// "parent" lines) and positional order are both load-bearing, so this
// is a sequence rather than a map.
type Headers []HeaderField

// Get returns the first value for key.
func (h Headers) Get(key string) (string, bool) {
	for _, f := range h {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// All returns every value for key, in order.
func (h Headers) All(key string) []string {
	var out []string
	for _, f := range h {
		if f.Key == key {
			out = append(out, f.Value)
		}
	}
	return out
}

// Without returns a copy of h with every field named key removed.
func (h Headers) Without(key string) Headers {
	out := make(Headers, 0, len(h))
	for _, f := range h {
		if f.Key != key {
			out = append(out, f)
		}
	}
	return out
}

// Commit is an ordered header block plus a free-text message.
type Commit struct {
	Headers Headers
	Message string
}

func (*Commit) Type() Type { return TypeCommit }

// TreeHash returns the commit's tree hash, or "" if absent.
func (c *Commit) TreeHash() Hash {
	v, _ := c.Headers.Get("tree")
	return Hash(v)
}

// Parents returns the commit's parent hashes in header order. Zero
// parents is a root commit, two or more a merge.
func (c *Commit) Parents() []Hash {
	vals := c.Headers.All("parent")
	out := make([]Hash, len(vals))
	for i, v := range vals {
		out[i] = Hash(v)
	}
	return out
}

// Author returns the parsed author identity.
func (c *Commit) Author() (Identity, error) {
	v, _ := c.Headers.Get("author")
	return ParseIdentity(v)
}

// Committer returns the parsed committer identity.
func (c *Commit) Committer() (Identity, error) {
	v, _ := c.Headers.Get("committer")
	return ParseIdentity(v)
}

// CommitterTime returns the committer's Unix timestamp, or 0 when the
// header is missing or unparseable.
func (c *Commit) CommitterTime() int64 {
	id, err := c.Committer()
	if err != nil {
		return 0
	}
	return id.When
}

// NewCommit builds a commit with headers in canonical insertion order:
// tree, parents, author, committer.
func NewCommit(tree Hash, parents []Hash, author, committer Identity, message string) *Commit {
	h := Headers{{Key: "tree", Value: string(tree)}}
	for _, p := range parents {
		h = append(h, HeaderField{Key: "parent", Value: string(p)})
	}
	h = append(h,
		HeaderField{Key: "author", Value: author.String()},
		HeaderField{Key: "committer", Value: committer.String()},
	)
	return &Commit{Headers: h, Message: message}
}

// Tag is an annotated tag: an ordered header block plus a message. A
// lightweight tag is not an object at all, just a ref.
type Tag struct {
	Headers Headers
	Message string
}

func (*Tag) Type() Type { return TypeTag }

// Target returns the hash the tag points at.
func (t *Tag) Target() Hash {
	v, _ := t.Headers.Get("object")
	return Hash(v)
}

// TargetType returns the kind of the tagged object.
func (t *Tag) TargetType() Type {
	v, _ := t.Headers.Get("type")
	return Type(v)
}

// Name returns the tag name recorded in the object.
func (t *Tag) Name() string {
	v, _ := t.Headers.Get("tag")
	return v
}

// Tagger returns the parsed tagger identity.
func (t *Tag) Tagger() (Identity, error) {
	v, _ := t.Headers.Get("tagger")
	return ParseIdentity(v)
}

// NewTag builds an annotated tag with headers in canonical order:
// object, type, tag, tagger.
func NewTag(target Hash, targetType Type, name string, tagger Identity, message string) *Tag {
	h := Headers{
		{Key: "object", Value: string(target)},
		{Key: "type", Value: string(targetType)},
		{Key: "tag", Value: name},
		{Key: "tagger", Value: tagger.String()},
	}
	return &Tag{Headers: h, Message: message}
}
