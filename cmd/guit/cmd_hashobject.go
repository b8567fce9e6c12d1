package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
	"github.com/guidurbano/write-yourself-a-git/pkg/repo"
)

func newHashObjectCmd() *cobra.Command {
	var typeName string
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object PATH",
		Short: "Compute an object hash, optionally storing the object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseObjectType(typeName)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			obj, err := object.Unmarshal(t, data)
			if err != nil {
				return err
			}

			var h object.Hash
			if write {
				r, err := repo.Open(".")
				if err != nil {
					return err
				}
				h, err = r.Store.Write(obj, true)
				if err != nil {
					return err
				}
			} else {
				// Dry run: hash only, nothing touches the store.
				payload, err := object.Marshal(obj)
				if err != nil {
					return err
				}
				h = object.HashObject(t, payload)
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "blob", "object type (blob, tree, commit, tag)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "store the object in the repository")

	return cmd
}
