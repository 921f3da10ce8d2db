package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-tools/lifelog/pkg/tools"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recently dated events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		resp, err := facade.GetRecent(context.Background(), tools.GetRecentRequest{Limit: limit})
		if err != nil {
			return err
		}
		if len(resp.Events) == 0 {
			fmt.Println("No events recorded yet.")
			return nil
		}
		return printJSON(resp.Events)
	},
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query events by any combination of date range, category, and text",
	Long: `Lists events matching every given filter (logical AND). Date bounds accept
an ISO date (YYYY-MM-DD) or a relative phrase such as 'last week'; either
bound may be omitted to leave that side open. With a date bound results are
chronological, otherwise most recent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		category, _ := cmd.Flags().GetString("category")
		text, _ := cmd.Flags().GetString("text")
		limit, _ := cmd.Flags().GetInt("limit")

		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		resp, err := facade.Query(context.Background(), tools.QueryRequest{
			Start:    start,
			End:      end,
			Category: category,
			Text:     text,
			Limit:    limit,
		})
		if err != nil {
			return err
		}
		if len(resp.Events) == 0 {
			fmt.Println("No matching events.")
			return nil
		}
		return printJSON(resp.Events)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search event titles and descriptions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		resp, err := facade.Search(context.Background(), tools.SearchRequest{
			Term:  args[0],
			Limit: limit,
		})
		if err != nil {
			return err
		}
		if len(resp.Events) == 0 {
			fmt.Printf("No events matching '%s'.\n", args[0])
			return nil
		}
		return printJSON(resp.Events)
	},
}

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List reminders due within the lookahead window",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		resp, err := facade.GetUpcomingReminders(context.Background(), tools.GetUpcomingRemindersRequest{DaysAhead: days})
		if err != nil {
			return err
		}
		if len(resp.Reminders) == 0 {
			fmt.Println("No upcoming reminders.")
			return nil
		}
		return printJSON(resp.Reminders)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with event counts and date bounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		limit, _ := cmd.Flags().GetInt("limit")

		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		// With --category, list that category's events instead of the summary.
		if category != "" {
			resp, err := facade.QueryByCategory(context.Background(), tools.QueryByCategoryRequest{
				Category: category,
				Limit:    limit,
			})
			if err != nil {
				return err
			}
			if len(resp.Events) == 0 {
				fmt.Printf("No events in category '%s'.\n", category)
				return nil
			}
			return printJSON(resp.Events)
		}

		resp, err := facade.ListCategories(context.Background(), tools.ListCategoriesRequest{})
		if err != nil {
			return err
		}
		if len(resp.Categories) == 0 {
			fmt.Println("No events recorded yet.")
			return nil
		}
		return printJSON(resp.Categories)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show timeline statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		resp, err := facade.GetStats(context.Background(), tools.GetStatsRequest{})
		if err != nil {
			return err
		}
		return printJSON(resp.Statistics)
	},
}

func init() {
	recentCmd.Flags().IntP("limit", "n", 0, "Maximum events to return (default 10)")

	queryCmd.Flags().StringP("start", "s", "", "Start date (inclusive): ISO date or relative phrase")
	queryCmd.Flags().StringP("end", "e", "", "End date (inclusive): ISO date or relative phrase")
	queryCmd.Flags().StringP("category", "c", "", "Restrict to one category")
	queryCmd.Flags().StringP("text", "t", "", "Restrict to events whose title or description contains this text")
	queryCmd.Flags().IntP("limit", "n", 0, "Maximum events to return (default 50)")

	searchCmd.Flags().IntP("limit", "n", 0, "Maximum events to return (default 50)")

	upcomingCmd.Flags().IntP("days", "n", 0, "Lookahead window in days (default 30)")

	categoriesCmd.Flags().StringP("category", "c", "", "List events of this category instead of the summary")
	categoriesCmd.Flags().IntP("limit", "n", 0, "Maximum events with --category (default 50)")
}
