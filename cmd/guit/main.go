package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "guit",
		Short: "A content-addressed object store in the shape of git",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCatFileCmd())
	root.AddCommand(newHashObjectCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newLsTreeCmd())
	root.AddCommand(newCheckoutCmd())
	root.AddCommand(newShowRefCmd())
	root.AddCommand(newTagCmd())
	root.AddCommand(newVerifyTagCmd())
	root.AddCommand(newBranchCmd())
	root.AddCommand(newRevParseCmd())
	root.AddCommand(newReflogCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("guit 0.1.0-dev")
		},
	}
}
