package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-tools/lifelog/pkg/tools"
)

// RegisterAllTools registers the complete timeline tool set on s.
func RegisterAllTools(s *server.MCPServer, t *tools.Tools) {
	RegisterPingTool(s)
	RegisterDateTools(s, t)
	RegisterLogEventTool(s, t)
	RegisterSetReminderTool(s, t)
	RegisterUpcomingRemindersTool(s, t)
	RegisterQueryByDateTool(s, t)
	RegisterQueryEventsTool(s, t)
	RegisterQueryByCategoryTool(s, t)
	RegisterSearchEventsTool(s, t)
	RegisterRecentEventsTool(s, t)
	RegisterGetEventTool(s, t)
	RegisterListCategoriesTool(s, t)
	RegisterStatisticsTool(s, t)
}

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Lifelog MCP server is alive."),
	)
	s.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong_lifelog"), nil
	})
}

// RegisterDateTools registers the date-resolution tools. The agent must call
// these before logging anything date-relative: no other tool guesses the
// current date.
func RegisterDateTools(s *server.MCPServer, t *tools.Tools) {
	todayTool := mcp.NewTool("get_todays_date",
		mcp.WithDescription("Get today's date in ISO format (YYYY-MM-DD). Use this FIRST whenever the user mentions 'today', 'tomorrow', 'in X days', etc."),
	)
	s.AddTool(todayTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := t.ResolveDate(ctx, tools.ResolveDateRequest{})
		if err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(resp.Date), nil
	})

	futureTool := mcp.NewTool("calculate_future_date",
		mcp.WithDescription("Calculate a future date by adding days to today. Use for reminders like 'remind me in 10 days'."),
		mcp.WithNumber("days_from_now", mcp.Required(), mcp.Description("Number of days to add to today (zero or positive).")),
	)
	s.AddTool(futureTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)
		days, ok := argInt(args, "days_from_now")
		if !ok {
			return mcp.NewToolResultError("'days_from_now' parameter is required and must be a number."), nil
		}
		resp, err := t.ResolveDate(ctx, tools.ResolveDateRequest{DaysFromNow: &days})
		if err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(resp.Date), nil
	})

	relativeTool := mcp.NewTool("parse_relative_date",
		mcp.WithDescription("Convert a relative date phrase ('today', 'yesterday', 'in 10 days', 'last week', '2 weeks ago') to an ISO date. Unrecognized phrases are an error, never silently today."),
		mcp.WithString("phrase", mcp.Required(), mcp.Description("The relative date phrase to resolve.")),
	)
	s.AddTool(relativeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		phrase := argString(requestArgs(request), "phrase")
		if phrase == "" {
			return mcp.NewToolResultError("'phrase' parameter is required and must be a non-empty string."), nil
		}
		resp, err := t.ResolveDate(ctx, tools.ResolveDateRequest{Phrase: phrase})
		if err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(resp.Date), nil
	})
}

// RegisterLogEventTool registers the log_event tool.
func RegisterLogEventTool(s *server.MCPServer, t *tools.Tools) {
	logTool := mcp.NewTool("log_event",
		mcp.WithDescription("Log a new event to the user's personal timeline."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Brief title of the event.")),
		mcp.WithString("description", mcp.Description("Detailed description of what happened.")),
		mcp.WithString("category", mcp.DefaultString("personal"), mcp.Description("Category: career, travel, health, personal, learning, social, milestone, etc.")),
		mcp.WithString("when", mcp.Description("When the event occurred: ISO timestamp, ISO date, or a relative phrase like 'yesterday'. Defaults to now.")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated list of tags.")),
	)
	s.AddTool(logTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)
		title := argString(args, "title")
		if title == "" {
			return mcp.NewToolResultError("'title' parameter is required and must be a non-empty string."), nil
		}

		resp, err := t.LogEvent(ctx, tools.LogEventRequest{
			Title:       title,
			Description: argString(args, "description"),
			Category:    argString(args, "category"),
			When:        argString(args, "when"),
			Tags:        argTags(args, "tags"),
		})
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(resp.Event)
	})
}

// RegisterSetReminderTool registers the set_reminder tool.
func RegisterSetReminderTool(s *server.MCPServer, t *tools.Tools) {
	reminderTool := mcp.NewTool("set_reminder",
		mcp.WithDescription("Set a reminder for a future task or event. Provide exactly one of due_in_days or due_date."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Brief title for the reminder.")),
		mcp.WithString("description", mcp.Description("What needs to be done.")),
		mcp.WithNumber("due_in_days", mcp.Description("Days from today until the reminder is due (zero or positive).")),
		mcp.WithString("due_date", mcp.Description("Due date: ISO date (YYYY-MM-DD) or a relative phrase like 'in 10 days'.")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated list of tags.")),
	)
	s.AddTool(reminderTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)
		title := argString(args, "title")
		if title == "" {
			return mcp.NewToolResultError("'title' parameter is required and must be a non-empty string."), nil
		}

		req := tools.SetReminderRequest{
			Title:       title,
			Description: argString(args, "description"),
			DueDate:     argString(args, "due_date"),
			Tags:        argTags(args, "tags"),
		}
		if days, ok := argInt(args, "due_in_days"); ok {
			req.DueInDays = &days
		}

		resp, err := t.SetReminder(ctx, req)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(resp.Event)
	})
}

// RegisterUpcomingRemindersTool registers the get_upcoming_reminders tool.
func RegisterUpcomingRemindersTool(s *server.MCPServer, t *tools.Tools) {
	upcomingTool := mcp.NewTool("get_upcoming_reminders",
		mcp.WithDescription("Get reminders due within the next X days, soonest first."),
		mcp.WithNumber("days_ahead", mcp.Description("Number of days to look ahead. Defaults to 30.")),
	)
	s.AddTool(upcomingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := tools.GetUpcomingRemindersRequest{}
		if days, ok := argInt(requestArgs(request), "days_ahead"); ok {
			req.DaysAhead = days
		}
		resp, err := t.GetUpcomingReminders(ctx, req)
		if err != nil {
			return errorResult(err), nil
		}
		if len(resp.Reminders) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(resp.Reminders)
	})
}

// RegisterQueryByDateTool registers the query_events_by_date tool.
func RegisterQueryByDateTool(s *server.MCPServer, t *tools.Tools) {
	queryTool := mcp.NewTool("query_events_by_date",
		mcp.WithDescription("Query timeline events within a date range (inclusive), in chronological order."),
		mcp.WithString("start_date", mcp.Description("Start of range: ISO date or relative phrase. Omit for an open start.")),
		mcp.WithString("end_date", mcp.Description("End of range: ISO date or relative phrase. Omit for an open end.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of events to return. Defaults to 50.")),
	)
	s.AddTool(queryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)
		req := tools.QueryByDateRequest{
			Start: argString(args, "start_date"),
			End:   argString(args, "end_date"),
		}
		if limit, ok := argInt(args, "limit"); ok {
			req.Limit = limit
		}
		resp, err := t.QueryByDate(ctx, req)
		if err != nil {
			return errorResult(err), nil
		}
		if len(resp.Events) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(resp.Events)
	})
}

// RegisterQueryEventsTool registers the query_events tool, the combined
// filter over date range, category, and text.
func RegisterQueryEventsTool(s *server.MCPServer, t *tools.Tools) {
	queryTool := mcp.NewTool("query_events",
		mcp.WithDescription("Query timeline events by any combination of date range, category, and text. Every given filter must match. Chronological with a date bound, most recent first otherwise."),
		mcp.WithString("start_date", mcp.Description("Start of range: ISO date or relative phrase. Omit for an open start.")),
		mcp.WithString("end_date", mcp.Description("End of range: ISO date or relative phrase. Omit for an open end.")),
		mcp.WithString("category", mcp.Description("Restrict to one category.")),
		mcp.WithString("search_text", mcp.Description("Restrict to events whose title or description contains this text.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of events to return. Defaults to the configured query limit.")),
	)
	s.AddTool(queryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)
		req := tools.QueryRequest{
			Start:    argString(args, "start_date"),
			End:      argString(args, "end_date"),
			Category: argString(args, "category"),
			Text:     argString(args, "search_text"),
		}
		if limit, ok := argInt(args, "limit"); ok {
			req.Limit = limit
		}
		resp, err := t.Query(ctx, req)
		if err != nil {
			return errorResult(err), nil
		}
		if len(resp.Events) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(resp.Events)
	})
}

// RegisterQueryByCategoryTool registers the query_events_by_category tool.
func RegisterQueryByCategoryTool(s *server.MCPServer, t *tools.Tools) {
	categoryTool := mcp.NewTool("query_events_by_category",
		mcp.WithDescription("Retrieve events from a specific category, most recent first."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Category to filter by (e.g. 'travel', 'career', 'health').")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of events to return. Defaults to 50.")),
	)
	s.AddTool(categoryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)
		category := argString(args, "category")
		if category == "" {
			return mcp.NewToolResultError("'category' parameter is required and must be a non-empty string."), nil
		}
		req := tools.QueryByCategoryRequest{Category: category}
		if limit, ok := argInt(args, "limit"); ok {
			req.Limit = limit
		}
		resp, err := t.QueryByCategory(ctx, req)
		if err != nil {
			return errorResult(err), nil
		}
		if len(resp.Events) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(resp.Events)
	})
}

// RegisterSearchEventsTool registers the search_events tool.
func RegisterSearchEventsTool(s *server.MCPServer, t *tools.Tools) {
	searchTool := mcp.NewTool("search_events",
		mcp.WithDescription("Search events by text in title or description (case-insensitive), most recent first."),
		mcp.WithString("search_text", mcp.Required(), mcp.Description("Text to search for.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results. Defaults to 50.")),
	)
	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)
		term := argString(args, "search_text")
		if term == "" {
			return mcp.NewToolResultError("'search_text' parameter is required and must be a non-empty string."), nil
		}
		req := tools.SearchRequest{Term: term}
		if limit, ok := argInt(args, "limit"); ok {
			req.Limit = limit
		}
		resp, err := t.Search(ctx, req)
		if err != nil {
			return errorResult(err), nil
		}
		if len(resp.Events) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(resp.Events)
	})
}

// RegisterRecentEventsTool registers the get_recent_events tool.
func RegisterRecentEventsTool(s *server.MCPServer, t *tools.Tools) {
	recentTool := mcp.NewTool("get_recent_events",
		mcp.WithDescription("Get the most recent timeline events, newest first."),
		mcp.WithNumber("limit", mcp.Description("Number of events to return. Defaults to 10.")),
	)
	s.AddTool(recentTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := tools.GetRecentRequest{}
		if limit, ok := argInt(requestArgs(request), "limit"); ok {
			req.Limit = limit
		}
		resp, err := t.GetRecent(ctx, req)
		if err != nil {
			return errorResult(err), nil
		}
		if len(resp.Events) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(resp.Events)
	})
}

// RegisterGetEventTool registers the get_event tool.
func RegisterGetEventTool(s *server.MCPServer, t *tools.Tools) {
	getTool := mcp.NewTool("get_event",
		mcp.WithDescription("Retrieve a single timeline event by its id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The event id.")),
	)
	s.AddTool(getTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := argInt(requestArgs(request), "id")
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}
		resp, err := t.GetEvent(ctx, tools.GetEventRequest{ID: int64(id)})
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(resp.Event)
	})
}

// RegisterListCategoriesTool registers the get_all_categories tool.
func RegisterListCategoriesTool(s *server.MCPServer, t *tools.Tools) {
	categoriesTool := mcp.NewTool("get_all_categories",
		mcp.WithDescription("List every category in use with its event count, most used first."),
	)
	s.AddTool(categoriesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := t.ListCategories(ctx, tools.ListCategoriesRequest{})
		if err != nil {
			return errorResult(err), nil
		}
		if len(resp.Categories) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(resp.Categories)
	})
}

// RegisterStatisticsTool registers the get_timeline_statistics tool.
func RegisterStatisticsTool(s *server.MCPServer, t *tools.Tools) {
	statsTool := mcp.NewTool("get_timeline_statistics",
		mcp.WithDescription("Get overall statistics about the timeline: total events, date range, day span, per-category counts."),
	)
	s.AddTool(statsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := t.GetStats(ctx, tools.GetStatsRequest{})
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(resp.Statistics)
	})
}
