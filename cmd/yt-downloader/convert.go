package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/AliEhsanian/YouTube-Downloader/internal/convert"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

func convertAction(ctx context.Context, c *cli.Context, e *env) error {
	if c.NArg() != 1 {
		return errors.New("convert expects exactly one FILE")
	}

	target := convert.Target{Audio: c.Bool(flagAudio)}
	if !target.Audio {
		format, err := policy.ParseFormat(c.String(flagTo))
		if err != nil {
			return err
		}
		target.Format = format
	}

	engine := e.cfg.Engine()
	if err := platform.CheckDependencies(engine.FFmpeg()); err != nil {
		return err
	}

	svc := convert.NewService(engine, e.logger)
	output, err := svc.Convert(ctx, c.Args().First(), target, e.conversionReporter())
	if err != nil {
		fmt.Fprintf(e.errOut, "❌ Conversion failed: %v\n", err)
		return err
	}
	e.say("\n✓ Converted: %s", output)
	return nil
}
