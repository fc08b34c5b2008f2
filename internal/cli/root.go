package cli

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"insights/internal/app"
	"insights/internal/config"
)

// NewRootCmd construit la commande racine et ses sous-commandes
func NewRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "insights",
		Short:         "Sales insights and coaching assistant",
		Long:          "Reports (KPI, category breakdown, top products, ledger) over a sales database, with manual entry and exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before INSIGHTS_* variables")

	// bootstrap charge la configuration, ouvre et provisionne la base
	bootstrap := func(ctx context.Context, logOut io.Writer) (*app.App, *config.Config, error) {
		cfg, err := config.Load(envFile)
		if err != nil {
			return nil, nil, err
		}
		log := cfg.NewLogger(logOut)
		a, err := app.Open(ctx, cfg, log)
		if err != nil {
			log.WithError(err).Error("startup failed")
			return nil, nil, err
		}
		return a, cfg, nil
	}

	rootCmd.AddCommand(
		newServeCmd(bootstrap),
		newReportCmd(bootstrap),
		newExportCmd(bootstrap),
	)
	return rootCmd
}

type bootstrapFunc func(ctx context.Context, logOut io.Writer) (*app.App, *config.Config, error)

// Execute exécute la CLI
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		logrus.WithError(err).Error("command failed")
	}
	return err
}
