package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
	"github.com/guidurbano/write-yourself-a-git/pkg/repo"
)

func newRevParseCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "rev-parse NAME",
		Short: "Resolve a name to an object hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			var want object.Type
			if typeName != "" {
				want, err = parseObjectType(typeName)
				if err != nil {
					return err
				}
			}

			h, err := r.Find(args[0], want, true)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "peel the result to this object type")

	return cmd
}
