package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guidurbano/write-yourself-a-git/pkg/repo"
)

func newBranchCmd() *cobra.Command {
	var deleteBranch string
	var force bool

	cmd := &cobra.Command{
		Use:   "branch [name] [start-point]",
		Short: "List or create branches",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if strings.TrimSpace(deleteBranch) != "" {
				if len(args) > 0 {
					return fmt.Errorf("branch --delete does not accept positional args")
				}
				return r.DeleteBranch(deleteBranch)
			}

			if len(args) == 0 {
				branches, err := r.ListBranches()
				if err != nil {
					return err
				}
				current, detached, err := r.CurrentBranch()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, name := range branches {
					marker := " "
					if !detached && name == current {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %s\n", marker, name)
				}
				return nil
			}

			name := args[0]
			startName := "HEAD"
			if len(args) == 2 {
				startName = args[1]
			}
			target, err := r.ResolveName(startName)
			if err != nil {
				return err
			}
			return r.CreateBranch(name, target, force)
		},
	}

	cmd.Flags().StringVarP(&deleteBranch, "delete", "d", "", "delete the named branch")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing branch")

	return cmd
}
