package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unowned-tools/lifelog/pkg/timeline"
	"github.com/unowned-tools/lifelog/pkg/tools"
)

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a new event to the timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		when, _ := cmd.Flags().GetString("when")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		if title == "" {
			return fmt.Errorf("event title cannot be empty")
		}

		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		resp, err := facade.LogEvent(context.Background(), tools.LogEventRequest{
			Title:       title,
			Description: description,
			Category:    category,
			When:        when,
			Tags:        tags,
		})
		if err != nil {
			return err
		}

		fmt.Println("Event logged:")
		return printJSON(resp.Event)
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Set a reminder due on a future date",
	Long:  `Sets a reminder. Provide exactly one of --in-days or --due (ISO date or a relative phrase such as 'in 10 days').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		due, _ := cmd.Flags().GetString("due")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		if title == "" {
			return fmt.Errorf("reminder title cannot be empty")
		}

		req := tools.SetReminderRequest{
			Title:       title,
			Description: description,
			DueDate:     due,
			Tags:        tags,
		}
		if cmd.Flags().Changed("in-days") {
			days, _ := cmd.Flags().GetInt("in-days")
			req.DueInDays = &days
		}

		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		resp, err := facade.SetReminder(context.Background(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Reminder set, due %s:\n", resp.Event.Timestamp[:10])
		return printJSON(resp.Event)
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a single event by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid event id '%s': %w", args[0], err)
		}

		facade, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		resp, err := facade.GetEvent(context.Background(), tools.GetEventRequest{ID: id})
		if err != nil {
			return err
		}
		return printJSON(resp.Event)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an event by its id (administrative)",
	Long:  `Removes an event from the timeline. This is an administrative escape hatch; the agent-facing tool set treats events as immutable.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid event id '%s': %w", args[0], err)
		}

		_, dbConn, err := openFacade()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := timeline.DeleteEvent(context.Background(), dbConn, id); err != nil {
			return err
		}
		fmt.Printf("Event %d deleted.\n", id)
		return nil
	},
}

func init() {
	logCmd.Flags().StringP("title", "t", "", "Brief title of the event (required)")
	logCmd.Flags().StringP("description", "d", "", "Detailed description")
	logCmd.Flags().StringP("category", "c", "", "Event category (default: personal)")
	logCmd.Flags().StringP("when", "w", "", "When the event occurred: ISO timestamp/date or relative phrase (default: now)")
	logCmd.Flags().StringSlice("tags", nil, "Comma-separated tags")
	logCmd.MarkFlagRequired("title")

	remindCmd.Flags().StringP("title", "t", "", "Brief title for the reminder (required)")
	remindCmd.Flags().StringP("description", "d", "", "What needs to be done")
	remindCmd.Flags().Int("in-days", 0, "Days from today until due")
	remindCmd.Flags().String("due", "", "Due date: ISO date or relative phrase")
	remindCmd.Flags().StringSlice("tags", nil, "Comma-separated tags")
	remindCmd.MarkFlagRequired("title")
}
