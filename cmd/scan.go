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

func newScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Report missing site files without downloading",
		RunE:  runScan,
	}
}

func runScan(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		logger.Error("configuration error", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	logger.Info("scanning mirror", logger.String("root", root))

	report := site.NewScanner(root, cfg.Scan).Scan()
	report.Render(cmd.OutOrStdout())

	logger.Info("scan complete", logger.Int("missing", report.TotalMissing()))
	return nil
}
