// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

const timeLayout = "2006-01-02T15:04:05"

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server *server.MCPServer
	app    ports.AppProvider
	logger *log.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(app ports.AppProvider, version string, logger *log.Logger) *Server {
	s := &Server{
		app:    app,
		logger: logger,
	}

	s.server = server.NewMCPServer(
		"prodvana",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Get the current Prodvana state: signed in user, wallet and the open game session"),
		),
		s.handleGetState,
	)

	// Account
	s.server.AddTool(
		mcp.NewTool(
			"login",
			mcp.WithDescription("Sign in with name, email and password"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
			mcp.WithString("email", mcp.Required(), mcp.Description("Email address, used as the account key")),
			mcp.WithString("password", mcp.Required(), mcp.Description("Password (checked for presence only)")),
		),
		s.handleLogin,
	)
	s.server.AddTool(
		mcp.NewTool(
			"start_trial",
			mcp.WithDescription("Sign in as a trial user. The trial ends automatically."),
		),
		s.handleStartTrial,
	)
	s.server.AddTool(
		mcp.NewTool(
			"logout",
			mcp.WithDescription("Sign out, abandoning any live session"),
		),
		s.handleLogout,
	)

	// Tasks
	s.server.AddTool(
		mcp.NewTool(
			"list_tasks",
			mcp.WithDescription("List today's tasks ordered by time, optionally filtered by status"),
			mcp.WithString(
				"status",
				mcp.Description("Filter tasks by status: pending, completed"),
				mcp.Enum("pending", "completed"),
			),
		),
		s.handleListTasks,
	)
	s.server.AddTool(
		mcp.NewTool(
			"search_tasks",
			mcp.WithDescription("Fuzzy search task titles"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		),
		s.handleSearchTasks,
	)
	s.server.AddTool(
		mcp.NewTool(
			"add_task",
			mcp.WithDescription("Add a task to the daily list"),
			mcp.WithString("title", mcp.Required(), mcp.Description("The title of the task")),
			mcp.WithString("time", mcp.Required(), mcp.Description("Scheduled time as HH:MM (24h)")),
			mcp.WithString(
				"priority",
				mcp.Description("Task priority (default: medium)"),
				mcp.Enum("high", "medium", "low"),
			),
		),
		s.handleAddTask,
	)
	s.server.AddTool(
		mcp.NewTool(
			"toggle_task",
			mcp.WithDescription("Flip a task between pending and completed"),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("The ID of the task")),
		),
		s.handleToggleTask,
	)
	s.server.AddTool(
		mcp.NewTool(
			"edit_task",
			mcp.WithDescription("Edit a task. Omitted fields keep their current value."),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("The ID of the task")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("time", mcp.Description("New time as HH:MM")),
			mcp.WithString("priority", mcp.Description("New priority"), mcp.Enum("high", "medium", "low")),
		),
		s.handleEditTask,
	)
	s.server.AddTool(
		mcp.NewTool(
			"delete_task",
			mcp.WithDescription("Delete a task"),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("The ID of the task")),
		),
		s.handleDeleteTask,
	)

	// Store
	s.server.AddTool(
		mcp.NewTool(
			"list_store_items",
			mcp.WithDescription("List the items for sale in the store"),
			mcp.WithString(
				"category",
				mcp.Description("Only show one category"),
				mcp.Enum(string(domain.CategoryFarm), string(domain.CategoryFishing), string(domain.CategoryCharacter)),
			),
		),
		s.handleListStoreItems,
	)
	s.server.AddTool(
		mcp.NewTool(
			"purchase_item",
			mcp.WithDescription("Buy a store item with the signed in user's coins"),
			mcp.WithString("item_id", mcp.Required(), mcp.Description("The ID of the item")),
		),
		s.handlePurchaseItem,
	)

	// Report
	s.server.AddTool(
		mcp.NewTool(
			"get_report",
			mcp.WithDescription("Get today's productivity report for the signed in user"),
		),
		s.handleGetReport,
	)

	// Sessions
	s.server.AddTool(
		mcp.NewTool(
			"start_session",
			mcp.WithDescription("Set up, start and begin a timed focus session"),
			mcp.WithString(
				"game",
				mcp.Description("Which game to play (default: farm)"),
				mcp.Enum(string(domain.GameFarm), string(domain.GameFishing)),
			),
			mcp.WithString("task", mcp.Required(), mcp.Description("What the session is for")),
			mcp.WithNumber("duration_minutes", mcp.Required(), mcp.Description("Session length in minutes; must be one of the presets")),
		),
		s.handleStartSession,
	)
	s.server.AddTool(
		mcp.NewTool(
			"finish_session",
			mcp.WithDescription("Claim the coins of a completed session"),
		),
		s.handleFinishSession,
	)
	s.server.AddTool(
		mcp.NewTool(
			"restart_session",
			mcp.WithDescription("Discard a completed session without claiming its coins"),
		),
		s.handleRestartSession,
	)
	s.server.AddTool(
		mcp.NewTool(
			"cancel_session",
			mcp.WithDescription("Abandon the session in preparation or countdown"),
		),
		s.handleCancelSession,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	ctx = s.ctx
	s.mu.Unlock()

	s.logger.Debug("mcp server listening on stdio")
	return server.NewStdioServer(s.server).Listen(ctx, os.Stdin, os.Stdout)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.Server.
var _ ports.Server = (*Server)(nil)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toolError(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}

func taskData(t *domain.Task) map[string]any {
	return map[string]any{
		"id":         t.ID,
		"title":      t.Title,
		"time":       t.Time.String(),
		"priority":   string(t.Priority),
		"completed":  t.Completed,
		"created_at": t.CreatedAt.Format(timeLayout),
	}
}

func sessionData(s *domain.GameSession) map[string]any {
	data := map[string]any{
		"id":               s.ID,
		"game":             string(s.Game),
		"state":            string(s.State),
		"task":             s.TaskLabel,
		"duration_minutes": s.Duration,
		"remaining_time":   s.RemainingTime().String(),
		"progress":         s.Progress(),
		"reward":           s.Reward,
		"notes":            s.Notes,
	}
	if s.GitBranch != "" {
		data["git_branch"] = s.GitBranch
	}
	if s.StartedAt != nil {
		data["started_at"] = s.StartedAt.Format(timeLayout)
	}
	if s.CompletedAt != nil {
		data["completed_at"] = s.CompletedAt.Format(timeLayout)
	}
	return data
}

// handleGetState handles the get_state tool.
func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.app.Snapshot(ctx)

	result := map[string]any{
		"view":    string(snap.App.View),
		"tab":     string(snap.App.Tab),
		"user":    nil,
		"wallet":  nil,
		"session": nil,
	}
	if u := snap.App.User; u != nil {
		result["user"] = map[string]any{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
			"trial": u.Trial,
		}
	}
	if w := snap.App.Wallet; w != nil {
		result["wallet"] = map[string]any{
			"coins":          w.Coins,
			"level":          w.Level,
			"level_progress": w.LevelProgress(),
		}
	}
	if snap.Session != nil {
		result["session"] = sessionData(snap.Session)
	}

	return jsonResult(result)
}

// handleLogin handles the login tool.
func (s *Server) handleLogin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	email := request.GetString("email", "")
	password := request.GetString("password", "")

	if err := s.app.Login(ctx, name, email, password); err != nil {
		return toolError("sign in", err), nil
	}
	return s.handleGetState(ctx, request)
}

// handleStartTrial handles the start_trial tool.
func (s *Server) handleStartTrial(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.app.StartTrial(ctx); err != nil {
		return toolError("start trial", err), nil
	}
	return s.handleGetState(ctx, request)
}

// handleLogout handles the logout tool.
func (s *Server) handleLogout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.app.Logout(ctx); err != nil {
		return toolError("sign out", err), nil
	}
	return jsonResult(map[string]any{"signed_out": true})
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := request.GetString("status", "")

	tasks, err := s.app.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	filtered := []map[string]any{}
	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
		if status == "completed" && !task.Completed || status == "pending" && task.Completed {
			continue
		}
		filtered = append(filtered, taskData(task))
	}

	result := map[string]any{
		"tasks":           filtered,
		"total_count":     len(filtered),
		"completed_today": completed,
	}
	if status != "" {
		result["filter_status"] = status
	}

	return jsonResult(result)
}

// handleSearchTasks handles the search_tasks tool.
func (s *Server) handleSearchTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required: " + err.Error()), nil
	}

	tasks, err := s.app.SearchTasks(ctx, query)
	if err != nil {
		return toolError("search tasks", err), nil
	}

	matches := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		matches = append(matches, taskData(task))
	}
	return jsonResult(map[string]any{
		"query":   query,
		"matches": matches,
	})
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required: " + err.Error()), nil
	}
	at, err := request.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError("time is required: " + err.Error()), nil
	}

	task, err := s.app.AddTask(ctx, title, at, request.GetString("priority", ""))
	if err != nil {
		return toolError("add task", err), nil
	}
	return jsonResult(taskData(task))
}

// handleToggleTask handles the toggle_task tool.
func (s *Server) handleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id is required: " + err.Error()), nil
	}

	task, err := s.app.ToggleTask(ctx, taskID)
	if err != nil {
		return toolError("toggle task", err), nil
	}
	return jsonResult(taskData(task))
}

// handleEditTask handles the edit_task tool.
func (s *Server) handleEditTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id is required: " + err.Error()), nil
	}

	task, err := s.app.EditTask(ctx, taskID,
		request.GetString("title", ""),
		request.GetString("time", ""),
		request.GetString("priority", ""),
	)
	if err != nil {
		return toolError("edit task", err), nil
	}
	return jsonResult(taskData(task))
}

// handleDeleteTask handles the delete_task tool.
func (s *Server) handleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id is required: " + err.Error()), nil
	}

	if err := s.app.DeleteTask(ctx, taskID); err != nil {
		return toolError("delete task", err), nil
	}
	return jsonResult(map[string]any{"id": taskID, "deleted": true})
}

// handleListStoreItems handles the list_store_items tool.
func (s *Server) handleListStoreItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := s.app.Catalog()
	category := request.GetString("category", "")
	if category != "" {
		items = items.ByCategory(domain.ItemCategory(category))
	}

	result := map[string]any{
		"items":       items,
		"total_count": len(items),
	}
	if w := s.app.Snapshot(ctx).App.Wallet; w != nil {
		result["balance"] = w.Coins
	}
	return jsonResult(result)
}

// handlePurchaseItem handles the purchase_item tool.
func (s *Server) handlePurchaseItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	itemID, err := request.RequireString("item_id")
	if err != nil {
		return mcp.NewToolResultError("item_id is required: " + err.Error()), nil
	}

	wallet, err := s.app.Purchase(ctx, itemID)
	if err != nil {
		return toolError("purchase item", err), nil
	}
	return jsonResult(map[string]any{
		"item_id": itemID,
		"balance": wallet.Coins,
		"level":   wallet.Level,
	})
}

// handleGetReport handles the get_report tool.
func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.app.Report(ctx)
	if err != nil {
		return toolError("build report", err), nil
	}
	return jsonResult(report)
}

// handleStartSession handles the start_session tool.
func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	label, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("task is required: " + err.Error()), nil
	}

	// JSON numbers arrive as float64; some clients send strings.
	minutes := int(request.GetFloat("duration_minutes", 0))
	if minutes == 0 {
		if raw := strings.TrimSpace(request.GetString("duration_minutes", "")); raw != "" {
			if m, err := strconv.Atoi(raw); err == nil {
				minutes = m
			}
		}
	}

	session, err := s.app.StartSession(ctx, request.GetString("game", ""), label, minutes)
	if err != nil {
		return toolError("start session", err), nil
	}
	return jsonResult(sessionData(session))
}

// handleFinishSession handles the finish_session tool.
func (s *Server) handleFinishSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.app.FinishSession(ctx)
	if err != nil {
		return toolError("finish session", err), nil
	}

	return jsonResult(map[string]any{
		"session_id":    out.Result.SessionID,
		"game":          string(out.Result.Game),
		"task":          out.Result.TaskLabel,
		"coins":         out.Result.Coins,
		"balance":       out.Wallet.Coins,
		"level":         out.Wallet.Level,
		"levels_gained": out.LevelsGained,
		"completed_at":  out.Result.CompletedAt.Format(timeLayout),
	})
}

// handleRestartSession handles the restart_session tool.
func (s *Server) handleRestartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.app.RestartSession(ctx); err != nil {
		return toolError("restart session", err), nil
	}
	return s.handleGetState(ctx, request)
}

// handleCancelSession handles the cancel_session tool.
func (s *Server) handleCancelSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.app.CancelSession(ctx); err != nil {
		return toolError("cancel session", err), nil
	}
	return s.handleGetState(ctx, request)
}
