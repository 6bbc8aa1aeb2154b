// Package mcp provides the MCP (Model Context Protocol) server: it exposes
// the countdown and the day ledger as tools for AI assistants.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pomoday/pomoday/internal/domain"
	"github.com/pomoday/pomoday/internal/engine"
	"github.com/pomoday/pomoday/internal/scheduler"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server *server.MCPServer
	engine *engine.Engine
	sched  *scheduler.Scheduler

	// persistTimer mirrors the engine snapshot to storage after a mutation.
	persistTimer func()
}

// NewServer creates a new MCP server instance.
func NewServer(eng *engine.Engine, sched *scheduler.Scheduler, persistTimer func()) *Server {
	s := &Server{
		engine:       eng,
		sched:        sched,
		persistTimer: persistTimer,
	}

	s.server = server.NewMCPServer(
		"pomoday",
		"1.0.0",
		server.WithLogging(),
	)
	s.registerTools()

	return s
}

// Start serves MCP over stdio until the client disconnects or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.server).Listen(ctx, in, out)
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_status",
			mcp.WithDescription("Get the countdown state and the selected day's task ledger summary"),
		),
		s.handleGetStatus,
	)

	listTasksTool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List the tasks of a day with their focus/break/tracked time"),
		mcp.WithString(
			"day",
			mcp.Description("Day key like \"Monday, 02.01.2006\" (default: selected day)"),
		),
	)
	s.server.AddTool(listTasksTool, s.handleListTasks)

	addTaskTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a task to the selected day"),
		mcp.WithString(
			"title",
			mcp.Required(),
			mcp.Description("The task title"),
		),
	)
	s.server.AddTool(addTaskTool, s.handleAddTask)

	setActiveTool := mcp.NewTool(
		"set_active_task",
		mcp.WithDescription("Attach the day's stopwatch to a task, or stop it"),
		mcp.WithString(
			"task_id",
			mcp.Description("Task id to activate; omit to stop the running stopwatch"),
		),
	)
	s.server.AddTool(setActiveTool, s.handleSetActiveTask)

	s.server.AddTool(
		mcp.NewTool("start_timer", mcp.WithDescription("Start or resume the countdown")),
		s.handleStartTimer,
	)
	s.server.AddTool(
		mcp.NewTool("pause_timer", mcp.WithDescription("Pause the countdown")),
		s.handlePauseTimer,
	)
	s.server.AddTool(
		mcp.NewTool("skip_interval", mcp.WithDescription("Skip to the next interval, crediting elapsed time")),
		s.handleSkipInterval,
	)
	s.server.AddTool(
		mcp.NewTool("reset_timer", mcp.WithDescription("Hard-reset the countdown to a fresh focus interval")),
		s.handleResetTimer,
	)
}

func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.Advance()
	snap := s.engine.Snapshot()
	day := s.sched.SelectedDay()
	now := time.Now()

	result := map[string]interface{}{
		"timer": map[string]interface{}{
			"mode":        string(snap.Mode),
			"running":     snap.Running,
			"time_left":   snap.TimeLeft,
			"focus_count": snap.FocusCount,
		},
		"selected_day": map[string]interface{}{
			"key":             day.Key,
			"date":            day.DateISO,
			"task_count":      len(day.Tasks),
			"active_task_id":  day.ActiveTaskID,
			"focus_seconds":   day.TotalFocusSeconds(),
			"break_seconds":   day.TotalBreakSeconds(),
			"tracked_seconds": day.TotalTrackedSeconds(now),
		},
	}

	return jsonResult(result)
}

func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("day", "")

	var day *domain.DaySchedule
	if key == "" {
		day = s.sched.SelectedDay()
	} else if day = s.sched.Day(key); day == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no schedule for day %q", key)), nil
	}

	now := time.Now()
	tasks := make([]map[string]interface{}, 0, len(day.Tasks))
	for _, t := range day.Tasks {
		tasks = append(tasks, map[string]interface{}{
			"id":              t.ID,
			"title":           t.Title,
			"focus_seconds":   t.TotalFocusSeconds,
			"break_seconds":   t.TotalBreakSeconds,
			"tracked_seconds": domain.LiveTrackedSeconds(t.TrackedSeconds, t.TimerStartedAt, now),
			"running":         t.StopwatchRunning(),
			"sessions":        len(t.Sessions),
		})
	}

	return jsonResult(map[string]interface{}{
		"day":   day.Key,
		"tasks": tasks,
	})
}

func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required: " + err.Error()), nil
	}

	task, err := s.sched.AddTask(title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"id":      task.ID,
		"title":   task.Title,
		"running": task.StopwatchRunning(),
	})
}

func (s *Server) handleSetActiveTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sched.SetActiveTask(request.GetString("task_id", ""))
	day := s.sched.SelectedDay()
	return jsonResult(map[string]interface{}{
		"active_task_id": day.ActiveTaskID,
	})
}

func (s *Server) handleStartTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.Start()
	return s.timerResult()
}

func (s *Server) handlePauseTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.Pause()
	return s.timerResult()
}

func (s *Server) handleSkipInterval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.Skip()
	return s.timerResult()
}

func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.Reset()
	return s.timerResult()
}

func (s *Server) timerResult() (*mcp.CallToolResult, error) {
	if s.persistTimer != nil {
		s.persistTimer()
	}
	snap := s.engine.Snapshot()
	return jsonResult(map[string]interface{}{
		"mode":        string(snap.Mode),
		"running":     snap.Running,
		"time_left":   snap.TimeLeft,
		"focus_count": snap.FocusCount,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
