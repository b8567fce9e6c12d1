package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/guidurbano/write-yourself-a-git/pkg/repo"
)

func newTagCmd() *cobra.Command {
	var annotate bool
	var deleteTag string
	var force bool
	var message string
	var signKey string

	cmd := &cobra.Command{
		Use:   "tag [name] [object]",
		Short: "List, create, or delete tags",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if strings.TrimSpace(deleteTag) != "" {
				if len(args) > 0 {
					return fmt.Errorf("tag --delete does not accept positional args")
				}
				return r.DeleteTag(deleteTag)
			}

			if len(args) == 0 {
				tags, err := r.ListTags()
				if err != nil {
					return err
				}
				for _, name := range tags {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			name := args[0]
			targetName := "HEAD"
			if len(args) == 2 {
				targetName = args[1]
			}
			target, err := r.ResolveName(targetName)
			if err != nil {
				return err
			}

			if !annotate && signKey == "" {
				return r.CreateTag(name, target, force)
			}

			tagger, err := repo.AuthorIdentity(time.Now())
			if err != nil {
				return err
			}
			if strings.TrimSpace(message) == "" {
				message = fmt.Sprintf("tag %s", name)
			}

			var signer repo.PayloadSigner
			if signKey != "" {
				signer, _, err = newSSHPayloadSigner(signKey)
				if err != nil {
					return err
				}
			}

			tagHash, err := r.CreateAnnotatedTag(name, target, tagger, message, force, signer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tagHash)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&annotate, "annotate", "a", false, "create an annotated tag object")
	cmd.Flags().StringVarP(&deleteTag, "delete", "d", "", "delete the named tag")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing tag")
	cmd.Flags().StringVarP(&message, "message", "m", "", "tag message (annotated tags)")
	cmd.Flags().StringVar(&signKey, "sign", "", "SSH private key to sign the tag with (implies --annotate)")

	return cmd
}
