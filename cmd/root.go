/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mirrorkit/framerfix/pkg/buildinfo"
	"github.com/mirrorkit/framerfix/pkg/exitcode"
	"github.com/mirrorkit/framerfix/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "framerfix",
		Short: "Repair a locally mirrored Framer static-site export",
		Long: `Framerfix scans a mirrored Framer export for references to remote resources
(ES modules, media assets, searchIndex JSON files) that are missing on disk
and re-downloads them from framerusercontent.com into the expected paths.

Examples:
   framerfix --root ./my-site.framer.website   # detect and download
   framerfix --dry-run                         # detect only, from the CWD
   framerfix scan --root ./mirror              # detection report, no downloads
   framerfix init                              # write a default .framerfix.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
		RunE: runRepair,
	}

	cmd.PersistentFlags().String("root", ".", "Mirror root directory to operate on")
	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("dry-run", false, "Report missing items without downloading anything")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("framerfix {{.Version}}\n")

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// registerSubcommands adds all subcommands to the root command.
// Called from init() for production and explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newRepairCommand())
	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newVersionCommand())
}

// resolveRoot resolves the --root flag to an absolute existing directory.
// The missing-root precondition is the only fatal condition in the program.
func resolveRoot(cmd *cobra.Command) (string, error) {
	rootFlag, _ := cmd.Flags().GetString("root")
	if rootFlag == "" {
		rootFlag = "."
	}
	abs, err := filepath.Abs(rootFlag)
	if err != nil {
		return "", fmt.Errorf("cannot resolve root %q: %w", rootFlag, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("root %q is not an existing directory", abs)
	}
	return abs, nil
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	flags := cmd.Flags()
	logger.Initialize(logger.Config{
		Level:    logLevelFromFlags(flags),
		UseColor: !boolFlag(flags, "no-color"),
		JSON:     boolFlag(flags, "json"),
		DryRun:   boolFlag(flags, "dry-run"),
	})
}

func logLevelFromFlags(fs *pflag.FlagSet) logger.Level {
	s, _ := fs.GetString("log-level")
	return logger.ParseLevel(s)
}

func boolFlag(fs *pflag.FlagSet, name string) bool {
	v, _ := fs.GetBool(name)
	return v
}
