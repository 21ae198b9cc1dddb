package commands

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/config"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/database"
	applogger "github.com/Vihaan004/Map-My-Major-sub000/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mapctl",
	Short: "MapMyMajor maintenance commands",
	Long: `mapctl manages the MapMyMajor database outside the HTTP server.

Commands:
  migrate         - apply, roll back or inspect schema migrations
  import-courses  - load an .xlsx workbook into the course bank
  recompute       - rebuild requirement progress for one or every map`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config/config.yaml or ./config.yaml)")
}

// env is what every command needs: config, logger and an open database
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
}

func openEnv() (*env, error) {
	cfg, err := config.Read(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	return &env{cfg: cfg, logger: logger, db: db, sqlDB: sqlDB}, nil
}

func (e *env) Close() {
	e.sqlDB.Close()
	e.logger.Sync()
}
