package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopwordsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stopwords",
		Short: "List the effective stopword dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sd, err := cfg.StopWords()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, word := range sd.Words() {
				fmt.Fprintln(w, word)
			}
			return nil
		},
	}
}
