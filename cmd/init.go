/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mirrorkit/framerfix/pkg/config"
	"github.com/mirrorkit/framerfix/pkg/logger"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default framerfix config file into the mirror root",
		RunE:  runInit,
	}
	cmd.Flags().String("format", "yaml", "Config file format (yaml|toml)")
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	force := boolFlag(cmd.Flags(), "force")

	path, err := config.WriteDefault(root, format, force)
	if err != nil {
		return err
	}
	logger.Info("wrote default config", logger.String("path", path))
	return nil
}
