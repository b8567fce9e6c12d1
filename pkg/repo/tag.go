package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
)

// PayloadSigner signs canonical object payload bytes and returns an
// encoded signature string stored in the gpgsig header.
type PayloadSigner func(payload []byte) (string, error)

// CreateTag creates a lightweight tag: a plain ref under refs/tags/
// pointing directly at the target. No object is written.
func (r *Repo) CreateTag(name string, target object.Hash, force bool) error {
	name = strings.TrimSpace(name)
	if err := validateRefComponent(name); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	if strings.TrimSpace(string(target)) == "" {
		return fmt.Errorf("create tag: target hash is required")
	}

	refName := "refs/tags/" + name
	if !force && r.RefExists(refName) {
		return fmt.Errorf("create tag: tag %q already exists", name)
	}
	if err := r.UpdateRef(refName, target); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// CreateAnnotatedTag writes a tag object pointing at target and a ref
// under refs/tags/ pointing at the tag object. When signer is provided
// the tag carries a gpgsig header over its canonical payload.
func (r *Repo) CreateAnnotatedTag(name string, target object.Hash, tagger object.Identity, message string, force bool, signer PayloadSigner) (object.Hash, error) {
	name = strings.TrimSpace(name)
	if err := validateRefComponent(name); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	if strings.TrimSpace(string(target)) == "" {
		return "", fmt.Errorf("create annotated tag: target hash is required")
	}
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("create annotated tag: message is required")
	}
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}

	targetType, _, err := r.Store.Read(target)
	if err != nil {
		return "", fmt.Errorf("create annotated tag: read target %s: %w", target, err)
	}

	refName := "refs/tags/" + name
	if !force && r.RefExists(refName) {
		return "", fmt.Errorf("create annotated tag: tag %q already exists", name)
	}

	tag := object.NewTag(target, targetType, name, tagger, message)
	if signer != nil {
		sig, err := signer(object.TagSigningPayload(tag))
		if err != nil {
			return "", fmt.Errorf("create annotated tag: sign: %w", err)
		}
		tag.Headers = append(tag.Headers, object.HeaderField{Key: "gpgsig", Value: sig})
	}

	tagHash, err := r.Store.Write(tag, true)
	if err != nil {
		return "", fmt.Errorf("create annotated tag: write tag object: %w", err)
	}
	if err := r.UpdateRef(refName, tagHash); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	return tagHash, nil
}

// DeleteTag removes a tag ref. The tag object, if any, stays in the
// store.
func (r *Repo) DeleteTag(name string) error {
	name = strings.TrimSpace(name)
	if err := validateRefComponent(name); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	refName := "refs/tags/" + name
	if !r.RefExists(refName) {
		return fmt.Errorf("delete tag: tag %q does not exist", name)
	}
	return r.removeRefFile(refName)
}

// ListTags lists tag names sorted alphabetically.
func (r *Repo) ListTags() ([]string, error) {
	refs, err := r.ListRefs("tags")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, strings.TrimPrefix(ref.Name, "refs/tags/"))
	}
	sort.Strings(names)
	return names, nil
}
