package main

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"logsift/pkg/pattern"
)

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Mine content templates from the archived batch",
		Long: `Cluster the raw lines of the archived batch with the Drain algorithm and
print the discovered templates, most frequent first. Variable tokens
appear as <*>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd.Context())
			if err != nil {
				return err
			}

			templates, err := pattern.Mine(sess)
			if err != nil {
				return errors.Errorf("mine templates: %w", err)
			}
			if len(templates) == 0 {
				fmt.Println("no generalized templates discovered")
				return nil
			}
			for _, t := range templates {
				fmt.Printf("%6d  %s\n", t.Count, t.Pattern)
			}
			return nil
		},
	}
}
