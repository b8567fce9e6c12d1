package object

// CommitSigningPayload returns the canonical bytes that are signed for
// a commit: the serialized form with the gpgsig header removed.
func CommitSigningPayload(c *Commit) []byte {
	if c == nil {
		return nil
	}
	stripped := &Commit{Headers: c.Headers.Without("gpgsig"), Message: c.Message}
	return MarshalCommit(stripped)
}

// TagSigningPayload returns the canonical bytes that are signed for an
// annotated tag, excluding the gpgsig header itself.
func TagSigningPayload(t *Tag) []byte {
	if t == nil {
		return nil
	}
	stripped := &Tag{Headers: t.Headers.Without("gpgsig"), Message: t.Message}
	return MarshalTag(stripped)
}
