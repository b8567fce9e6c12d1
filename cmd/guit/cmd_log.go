package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guidurbano/write-yourself-a-git/pkg/object"
	"github.com/guidurbano/write-yourself-a-git/pkg/repo"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [commit]",
		Short: "Render commit ancestry as a Mermaid graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "HEAD"
			if len(args) > 0 {
				name = args[0]
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			start, err := r.Find(name, object.TypeCommit, true)
			if err != nil {
				return err
			}

			steps, edges, err := r.Store.WalkAll(start)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "```mermaid")
			fmt.Fprintln(out, "graph TD")
			for _, step := range steps {
				fmt.Fprintf(out, "  c_%s[\"%s: %s\"]\n", step.Hash, step.Hash[:7], mermaidLabel(step.Commit.Message))
			}
			for _, edge := range edges {
				fmt.Fprintf(out, "  c_%s --> c_%s\n", edge.Child, edge.Parent)
			}
			fmt.Fprintln(out, "```")
			return nil
		},
	}
}

// mermaidLabel reduces a commit message to its first line, escaped for
// embedding in a Mermaid node label.
func mermaidLabel(message string) string {
	message = strings.TrimSpace(message)
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}
	message = strings.ReplaceAll(message, `\`, `\\`)
	message = strings.ReplaceAll(message, `"`, `\"`)
	return message
}
