package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/guidurbano/write-yourself-a-git/pkg/repo"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout COMMIT PATH",
		Short: "Materialize a commit's tree inside an empty directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			target, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			return r.Checkout(args[0], target)
		},
	}
}
