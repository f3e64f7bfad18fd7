package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"logsift/pkg/aggregate"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show batch-wide statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd.Context())
			if err != nil {
				return err
			}

			stats := aggregate.Statistics(sess)
			fmt.Printf("Total logs:    %d\n", stats.TotalLogs)
			fmt.Printf("Errors:        %d\n", stats.Errors)
			fmt.Printf("Warnings:      %d\n", stats.Warnings)
			fmt.Printf("API calls:     %d\n", stats.APICalls)
			fmt.Printf("Unique actors: %d\n", stats.UniqueActors)

			if len(stats.StatusCodes) > 0 {
				fmt.Println("Status codes:")
				codes := make([]int, 0, len(stats.StatusCodes))
				for code := range stats.StatusCodes {
					codes = append(codes, code)
				}
				sort.Ints(codes)
				for _, code := range codes {
					fmt.Printf("  %d: %d\n", code, stats.StatusCodes[code])
				}
			}
			return nil
		},
	}
}

func patternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Show failure patterns and the per-endpoint summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd.Context())
			if err != nil {
				return err
			}

			patterns := aggregate.Patterns(sess)
			fmt.Println("Most common exceptions:")
			printCounts(patterns.MostCommonExceptions)
			fmt.Println("Most failed APIs:")
			printCounts(patterns.MostFailedAPIs)
			if len(patterns.ErrorByStatusCode) > 0 {
				fmt.Println("Errors by status code:")
				codes := make([]int, 0, len(patterns.ErrorByStatusCode))
				for code := range patterns.ErrorByStatusCode {
					codes = append(codes, code)
				}
				sort.Ints(codes)
				for _, code := range codes {
					fmt.Printf("  %d: %d\n", code, patterns.ErrorByStatusCode[code])
				}
			}
			fmt.Printf("Affected actors: %d\n", len(patterns.AffectedActors))

			summary := aggregate.APISummary(sess)
			if len(summary) > 0 {
				fmt.Println("\nAPI endpoint summary:")
				endpoints := make([]string, 0, len(summary))
				for e := range summary {
					endpoints = append(endpoints, e)
				}
				sort.Strings(endpoints)
				for _, e := range endpoints {
					st := summary[e]
					fmt.Printf("  %s: %d calls, %d success, %d failed\n",
						e, st.TotalCalls, st.Successful, st.Failed)
				}
			}
			return nil
		},
	}
}

func actorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actors",
		Short: "List every distinct identifier value in the batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd.Context())
			if err != nil {
				return err
			}
			for _, actor := range sess.Actors() {
				fmt.Println(actor)
			}
			return nil
		},
	}
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	// Most frequent first, name as tie-break.
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Printf("  %s: %d\n", k, counts[k])
	}
}
