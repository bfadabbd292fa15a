/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mirrorkit/framerfix/internal/site"
	"github.com/mirrorkit/framerfix/pkg/config"
	"github.com/mirrorkit/framerfix/pkg/exitcode"
	"github.com/mirrorkit/framerfix/pkg/logger"
)

func newRepairCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Detect missing site files and download them",
		RunE:  runRepair,
	}
	cmd.Flags().Bool("dry-run", false, "Report missing items without downloading anything")
	return cmd
}

func runRepair(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}
	dryRun := boolFlag(cmd.Flags(), "dry-run")

	cfg, err := config.Load(root)
	if err != nil {
		logger.Error("configuration error", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	logger.Info("repairing mirror", logger.String("root", root))

	runner := site.NewRunner(site.Options{
		Root:   root,
		DryRun: dryRun,
		Config: cfg,
		Out:    cmd.OutOrStdout(),
	})
	report := runner.Run(cmd.Context())

	if dryRun {
		logger.Info("dry-run: nothing downloaded", logger.Int("missing", report.TotalMissing()))
	} else {
		logger.Info("repair pass complete", logger.Int("reported_missing", report.TotalMissing()))
	}
	return nil
}
