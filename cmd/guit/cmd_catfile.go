package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
	"github.com/guidurbano/write-yourself-a-git/pkg/repo"
)

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file TYPE OBJECT",
		Short: "Print the payload of a repository object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			want, err := parseObjectType(args[0])
			if err != nil {
				return err
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.Find(args[1], want, true)
			if err != nil {
				return err
			}
			_, payload, err := r.Store.Read(h)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}
}

func parseObjectType(s string) (object.Type, error) {
	switch t := object.Type(s); t {
	case object.TypeBlob, object.TypeTree, object.TypeCommit, object.TypeTag:
		return t, nil
	default:
		return "", fmt.Errorf("unknown object type %q (want blob, tree, commit, or tag)", s)
	}
}
