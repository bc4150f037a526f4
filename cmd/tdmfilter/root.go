package main

import (
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tdmfilter/internal/common"
	"tdmfilter/internal/config"
)

const defaultEnvFile = ".env"

type commandContext struct {
	configFlag    string
	envFileFlag   string
	logLevelFlag  string
	logFormatFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

// ensureConfig loads the env file, the config file and the logging flags once
// per invocation.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		envFile := strings.TrimSpace(c.envFileFlag)
		explicit := envFile != ""
		if !explicit {
			envFile = defaultEnvFile
		}
		if err := config.LoadEnvFile(envFile, explicit); err != nil {
			c.configErr = err
			return
		}

		cfg, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != "" {
			cfg.Logging.Level = c.logLevelFlag
		}
		if c.logFormatFlag != "" {
			cfg.Logging.Format = c.logFormatFlag
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
		c.config = cfg
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "tdmfilter",
		Short:         "Reduce term-document matrices to their common nouns",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (.yaml, .yml or .toml)")
	flags.StringVar(&ctx.envFileFlag, "env-file", "", "Env file with TDMFILTER_* overrides (default .env if present)")
	flags.StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&ctx.logFormatFlag, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(newFilterCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newStopwordsCommand(ctx))

	return rootCmd
}
