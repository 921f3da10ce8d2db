package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	lifelog "github.com/unowned-tools/lifelog/pkg"
	"github.com/unowned-tools/lifelog/pkg/config"
	pkgdb "github.com/unowned-tools/lifelog/pkg/db"
	"github.com/unowned-tools/lifelog/pkg/tools"
	"github.com/unowned-tools/lifelog/pkg/utils"
)

var (
	dbPath     string
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:     "lifelog",
	Short:   "A personal timeline and reminder assistant backed by a local event log.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", lifelog.Version),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for LIFELOG_* overrides; absence is fine.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for lifelog.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(lifelog completion bash)

  Zsh:
    $ lifelog completion zsh > "${fpath[1]}/_lifelog"

  Fish:
    $ lifelog completion fish | source`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lifelog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(lifelog.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the lifelog database",
	Long:  `Provides commands for managing the lifelog SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the lifelog database schema to the latest version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
		if err != nil {
			return err
		}

		dbConn, err := pkgdb.OpenDBConnection(resolvedPath, cfg.WAL, cfg.Sync)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion)
	},
}

// openFacade opens the configured database (initializing the schema if
// needed) and wraps it in the tool facade. The caller closes the returned DB.
func openFacade() (*tools.Tools, *sql.DB, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, nil, err
	}

	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, cfg.WAL, cfg.Sync)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, nil, err
	}

	facade := tools.NewWithOptions(dbConn, tools.Options{
		QueryLimit:         cfg.QueryLimit,
		ReminderWindowDays: cfg.ReminderWindowDays,
	})
	return facade, dbConn, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "Path to the SQLite database file (default: per-OS data directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.config/lifelog/config.yaml)")

	dbCmd.AddCommand(dbUpgradeCmd)

	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
