package mcp

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	lifelog "github.com/unowned-tools/lifelog/pkg"
	"github.com/unowned-tools/lifelog/pkg/config"
	pkgdb "github.com/unowned-tools/lifelog/pkg/db"
	"github.com/unowned-tools/lifelog/pkg/tools"
	"github.com/unowned-tools/lifelog/pkg/utils"
)

// LifelogMCPServer exposes the timeline tool facade over MCP stdio, backed by
// the SQLite database at DbPath.
type LifelogMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	facade    *tools.Tools
	DbPath    string
}

// NewLifelogMCPServer opens (and if needed initializes) the database at
// dbPath and builds an MCP server with every timeline tool registered. An
// empty dbPath falls back to the configured path, then the per-OS default
// location; the loaded config also supplies the database pragmas and the
// facade's query limit and reminder window.
func NewLifelogMCPServer(dbPath string) (*LifelogMCPServer, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"Lifelog MCP Server",
		lifelog.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, cfg.WAL, cfg.Sync)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Automatically initialize or migrate the database schema.
	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", resolvedPath, err)
	}

	facade := tools.NewWithOptions(dbConn, tools.Options{
		QueryLimit:         cfg.QueryLimit,
		ReminderWindowDays: cfg.ReminderWindowDays,
	})
	RegisterAllTools(s, facade)

	return &LifelogMCPServer{
		mcpServer: s,
		db:        dbConn,
		facade:    facade,
		DbPath:    resolvedPath,
	}, nil
}

// Start runs the stdio event loop until stdin closes.
func (s *LifelogMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *LifelogMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *LifelogMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *LifelogMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
