package main

import (
	"github.com/urfave/cli/v2"
)

// Flag names
const (
	flagOutput       = "output"
	flagFilename     = "filename"
	flagQuality      = "quality"
	flagFormat       = "format"
	flagForceConvert = "force-convert"
	flagPlaylist     = "playlist"
	flagNoInteract   = "no-interactive"
	flagForce        = "force"
	flagSilent       = "silent"
	flagConfig       = "config"
	flagVerbose      = "verbose"

	flagTo     = "to"
	flagAudio  = "audio"
	flagLimit  = "limit"
	flagClear  = "clear"
	flagDelete = "delete"
	flagShow   = "show"
	flagJSON   = "json"
	flagSave   = "save"
	flagPath   = "path"
)

const appDescription = `Examples:
   yt-downloader                                          # Interactive mode
   yt-downloader "https://youtube.com/watch?v=dQw4w9WgXcQ" --quality 720p
   yt-downloader "youtu.be/dQw4w9WgXcQ" --format mp4 --force-convert
   yt-downloader "suspicious-url" --force                 # Try anyway
   yt-downloader convert video.webm --to mp4
   yt-downloader history --limit 10
   yt-downloader config --save                            # Write the user config file`

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:        "yt-downloader",
		Usage:       "download videos with format conversion support",
		UsageText:   "yt-downloader [options] [URL...]",
		Description: appDescription,
		Version:     version,
		Reader:      e.in,
		Writer:      e.out,
		ErrWriter:   e.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   "save downloads to `DIR` (default from config)",
			},
			&cli.StringFlag{
				Name:    flagFilename,
				Aliases: []string{"f"},
				Usage:   "custom `NAME` for single videos",
			},
			&cli.StringFlag{
				Name:    flagQuality,
				Aliases: []string{"q"},
				Usage:   "video quality: best, 4k, 1080p, 720p or audio",
			},
			&cli.StringFlag{
				Name:  flagFormat,
				Usage: "preferred output format: mp4, webm, mkv or avi (anything but mp4 is converted)",
			},
			&cli.BoolFlag{
				Name:  flagForceConvert,
				Usage: "force conversion to the preferred format (may re-encode)",
			},
			&cli.BoolFlag{
				Name:    flagPlaylist,
				Aliases: []string{"p"},
				Usage:   "download the entire playlist",
			},
			&cli.BoolFlag{
				Name:  flagNoInteract,
				Usage: "skip interactive prompts",
			},
			&cli.BoolFlag{
				Name:  flagForce,
				Usage: "skip URL validation",
			},
			&cli.BoolFlag{
				Name:  flagSilent,
				Usage: "minimal output",
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: e.init,
		After: func(c *cli.Context) error {
			e.close()
			return nil
		},
		Action: func(c *cli.Context) error {
			return downloadAction(c.Context, c, e)
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "show metadata of a video or playlist",
				ArgsUsage: "URL",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagJSON, Usage: "print raw metadata as JSON"},
				},
				Action: func(c *cli.Context) error {
					return infoAction(c.Context, c, e)
				},
			},
			{
				Name:      "convert",
				Usage:     "convert a downloaded file with ffmpeg",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagTo, Value: "mp4", Usage: "target `FORMAT`: mp4, webm, mkv or avi"},
					&cli.BoolFlag{Name: flagAudio, Usage: "extract mp3 audio instead"},
				},
				Action: func(c *cli.Context) error {
					return convertAction(c.Context, c, e)
				},
			},
			{
				Name:  "history",
				Usage: "list previous downloads",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagLimit, Value: 20, Usage: "show at most `N` records (0 for all)"},
					&cli.BoolFlag{Name: flagClear, Usage: "delete all records"},
					&cli.StringFlag{Name: flagDelete, Usage: "delete the record with `ID`"},
					&cli.StringFlag{Name: flagShow, Usage: "show the record with `ID` and its files"},
				},
				Action: func(c *cli.Context) error {
					return historyAction(c, e)
				},
			},
			{
				Name:  "config",
				Usage: "print the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagSave, Usage: "write it to the configuration file"},
					&cli.StringFlag{Name: flagPath, Usage: "write to `FILE` instead of the loaded or user config file"},
				},
				Action: func(c *cli.Context) error {
					return configAction(c, e)
				},
			},
		},
		HideHelpCommand: true,
		ExitErrHandler:  func(*cli.Context, error) {},
	}
}

