package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"plexmissing/internal/config"
	"plexmissing/internal/logging"
	"plexmissing/internal/services"
)

// errSetupComplete ends the invocation successfully after the first-run setup
// wrote a configuration file.
var errSetupComplete = errors.New("setup complete")

type commandContext struct {
	configFlag    *string
	outputDirFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	prompterOnce sync.Once
	prompt       *prompter
}

func newCommandContext(configFlag, outputDirFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		outputDirFlag: outputDirFlag,
	}
}

func (c *commandContext) configPathFlag() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// ensureConfigFile offers the interactive setup when no configuration file exists.
func (c *commandContext) ensureConfigFile(cmd *cobra.Command) error {
	path, exists, err := config.Locate(c.configPathFlag())
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "locate", "", err)
	}
	if exists {
		return nil
	}
	ok, err := c.prompter(cmd).confirm(cmd.Context(), "Configuration not found, would you like to set it up?")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: configuration not found at %s", services.ErrAborted, path)
	}
	if err := c.runSetup(cmd, path); err != nil {
		return err
	}
	return errSetupComplete
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.configPathFlag())
		c.configPath = path
		if err != nil {
			c.configErr = err
			return
		}
		if c.outputDirFlag != nil && strings.TrimSpace(*c.outputDirFlag) != "" {
			dir, err := config.ExpandPath(strings.TrimSpace(*c.outputDirFlag))
			if err != nil {
				c.configErr = services.Wrap(services.ErrConfiguration, "config", "output-dir", "", err)
				return
			}
			cfg.OutputDir = dir
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(cmd *cobra.Command, cfg *config.Config, debug bool) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr(), debug)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
	}
	return logger, nil
}

func (c *commandContext) prompter(cmd *cobra.Command) *prompter {
	c.prompterOnce.Do(func() {
		c.prompt = newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	})
	return c.prompt
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	if cmd == cmd.Root() {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
