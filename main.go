package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"invoicegen/collections"
	"invoicegen/config"
	"invoicegen/handlers"
	"invoicegen/services"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	if !cfg.App.EnvFile {
		logger.Info("no .env file found, using environment variables")
	}

	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.App.Seed {
			if err := collections.Seed(app, cfg); err != nil {
				zap.L().Warn("seed data failed", zap.Error(err))
			}
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Bills ────────────────────────────────────────────────
		se.Router.GET("/bills", handlers.HandleBillList(app))
		se.Router.GET("/bills/new", handlers.HandleBillNew(app, cfg))
		se.Router.POST("/bills", handlers.HandleBillCreate(app, cfg))
		se.Router.POST("/bills/totals", handlers.HandleBillTotals())
		se.Router.GET("/bills/export", handlers.HandleBillsExport(app))

		// Bill edit & export (specific /bills/{id}/* routes first)
		se.Router.GET("/bills/{id}/edit", handlers.HandleBillEdit(app))
		se.Router.POST("/bills/{id}/save", handlers.HandleBillSave(app, cfg))
		se.Router.GET("/bills/{id}/export/pdf", handlers.HandleBillExportPDF(app))
		se.Router.GET("/bills/{id}/export/excel", handlers.HandleBillExportExcel(app))

		se.Router.GET("/bills/{id}", handlers.HandleBillView(app))
		se.Router.DELETE("/bills/{id}", handlers.HandleBillDelete(app))

		se.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))

		// Redirect home to bills list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/bills")
		})

		return se.Next()
	})

	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "recompute-totals",
		Short: "Re-derive the stored totals of every bill",
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)
			n, err := services.NewBillStore(app).RecomputeAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d bill(s) updated\n", n)
			return nil
		},
	})

	if err := app.Start(); err != nil {
		zap.L().Fatal("app stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "ts"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := cfg.App.LogLevel
	if level == "" {
		level = "info"
	}
	if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zapCfg.Build()
}
