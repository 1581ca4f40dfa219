package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/AliEhsanian/YouTube-Downloader/internal/config"
)

func configAction(c *cli.Context, e *env) error {
	if !c.Bool(flagSave) {
		data, err := yaml.Marshal(e.cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		if e.cfgPath != "" {
			fmt.Fprintf(e.out, "# loaded from %s\n", e.cfgPath)
		}
		fmt.Fprint(e.out, string(data))
		return nil
	}

	path := c.String(flagPath)
	if path == "" {
		path = e.cfgPath
	}
	if path == "" {
		var err error
		if path, err = config.UserConfigPath(); err != nil {
			return fmt.Errorf("failed to locate user config: %w", err)
		}
	}
	if err := config.SaveConfigFile(e.cfg, path); err != nil {
		return err
	}
	e.logger.Debug("saved configuration", zap.String("path", path))
	e.say("Configuration saved to %s", path)
	return nil
}
