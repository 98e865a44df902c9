package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ag-Linings/requirement-specifications/internal/pipeline"
	"github.com/Ag-Linings/requirement-specifications/internal/server"
	"github.com/Ag-Linings/requirement-specifications/internal/store"
)

var (
	serveHost string
	servePort int
	serveDB   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the refinement HTTP API",
	Long: `Serve starts the HTTP API that frontends call.

Endpoints:
  POST /refine        refine a feature description
  GET  /requirements  list stored requirements for a user
  GET  /              health check

Persistence is enabled by pointing --db (or store.path in the config file)
at a SQLite database file.

Example:
  reqspec serve
  reqspec serve --port 8000 --db ~/.reqspec/reqspec.db`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (overrides config, empty disables persistence)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveDB != "" {
		cfg.Store.Path = serveDB
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var st store.Store
	if cfg.Store.Path != "" {
		sqlStore, err := store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = sqlStore.Close() }()
		st = sqlStore
		logger.Info("persistence enabled", zap.String("path", cfg.Store.Path))
	}

	svc := pipeline.NewService(cfg, logger)

	srv, err := server.New(svc, st, logger, cfg.Server)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
