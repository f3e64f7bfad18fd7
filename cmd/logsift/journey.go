package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"logsift/pkg/extract"
	"logsift/pkg/journey"
)

func journeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "journey <actor>",
		Short: "Show an actor's records in chronological order",
		Long: `Match the actor against every identifier value (user_id, username, email,
trace_id, request_id, session_id, ip_address) as a case-insensitive
substring and print the matching records sorted by timestamp.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd.Context())
			if err != nil {
				return err
			}

			records := journey.Reconstruct(sess, args[0])
			if len(records) == 0 {
				fmt.Printf("no records match %q\n", args[0])
				return nil
			}
			for _, r := range records {
				fmt.Println(formatRecord(r))
			}
			return nil
		},
	}
}

func traceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace <actor>",
		Short: "Locate where an actor's requests started failing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd.Context())
			if err != nil {
				return err
			}

			seq := journey.Analyze(sess, args[0])
			fmt.Printf("Total requests: %d\n", seq.TotalRequests)
			fmt.Printf("Successful:     %d\n", len(seq.Successful))
			fmt.Printf("Failed:         %d\n", len(seq.Failed))

			if seq.FirstError != nil {
				fmt.Printf("First error:    line %d: %s\n", seq.FirstError.LineNumber, seq.FirstError.Raw)
			} else {
				fmt.Println("First error:    none")
			}
			if seq.LastSuccessfulAPI != nil {
				fmt.Printf("Last successful API: %s\n", seq.LastSuccessfulAPI.String())
			}
			if len(seq.ErrorAPIs) > 0 {
				calls := make([]string, len(seq.ErrorAPIs))
				for i, api := range seq.ErrorAPIs {
					calls[i] = api.String()
				}
				fmt.Printf("Failing APIs:   %s\n", strings.Join(calls, ", "))
			}
			return nil
		},
	}
}

func formatRecord(r *extract.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %4d [%s]", r.LineNumber, r.Level)
	if r.HasTimestamp() {
		fmt.Fprintf(&b, " %s", r.Timestamp)
	}
	if r.API != nil {
		fmt.Fprintf(&b, " %s", r.API.String())
	}
	if r.HasStatusCode() {
		fmt.Fprintf(&b, " [%d]", r.StatusCode)
	}
	fmt.Fprintf(&b, " %s", r.Raw)
	return b.String()
}
