package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
	"github.com/guidurbano/write-yourself-a-git/pkg/repo"
)

func newLsTreeCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls-tree TREEISH",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			h, err := r.Find(args[0], object.TypeTree, true)
			if err != nil {
				return err
			}
			return printTree(cmd, r, h, recursive, "")
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recurse into subtrees")

	return cmd
}

func printTree(cmd *cobra.Command, r *repo.Repo, h object.Hash, recursive bool, prefix string) error {
	tree, err := r.Store.ReadTree(h)
	if err != nil {
		return err
	}

	for _, entry := range tree.Entries {
		kind, err := entryKind(entry.Mode)
		if err != nil {
			return fmt.Errorf("tree %s: %w", h, err)
		}
		full := path.Join(prefix, entry.Path)

		if recursive && kind == object.TypeTree {
			if err := printTree(cmd, r, entry.Hash, recursive, full); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\t%s\n", padMode(entry.Mode), kind, entry.Hash, full)
	}
	return nil
}

// padMode left-pads a mode string with zeros to the six columns the
// listing format uses ("40000" prints as "040000").
func padMode(mode string) string {
	for len(mode) < 6 {
		mode = "0" + mode
	}
	return mode
}

// entryKind maps a mode's leading digits to the kind of object the
// entry points at: 04 tree, 10/12 blob, 16 gitlink commit.
func entryKind(mode string) (object.Type, error) {
	prefix := mode
	if len(mode) > 4 {
		prefix = mode[:2]
	} else if len(mode) > 0 {
		prefix = mode[:1] + "0"
	}
	switch prefix {
	case "04", "40":
		return object.TypeTree, nil
	case "10", "12":
		return object.TypeBlob, nil
	case "16":
		return object.TypeCommit, nil
	default:
		return "", fmt.Errorf("unknown tree entry mode %q", mode)
	}
}
