package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/classify"
	"github.com/AliEhsanian/YouTube-Downloader/internal/download"
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/platform"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
	"github.com/AliEhsanian/YouTube-Downloader/internal/prompt"
)

var (
	errNoURL       = errors.New("no URL given and interactive mode is disabled")
	errInvalidURL  = errors.New("invalid or unsupported URL")
	errNoInfo      = errors.New("could not retrieve video information")
	errDownloadRun = errors.New("download failed")
)

const bannerRule = "======================================================="

func downloadAction(ctx context.Context, c *cli.Context, e *env) error {
	interactive := !c.Bool(flagNoInteract)
	urls := c.Args().Slice()

	e.say("🎬 Enhanced YouTube Downloader with Format Conversion")
	e.say(bannerRule)
	e.say("Supports YouTube and other video platforms")
	e.say("Automatically prefers MP4 for better compatibility")

	if len(urls) == 0 && !interactive {
		return errNoURL
	}
	if err := platform.CheckDependencies(e.cfg.Engine().YtDlp()); err != nil {
		return err
	}

	if len(urls) == 0 {
		url, info, err := e.prompter().URL(ctx, e.classifier(), e.fetcher())
		if err != nil {
			return err
		}
		return downloadOne(ctx, c, e, url, info, classify.LooksLikePlaylist(url))
	}

	var result error
	for _, raw := range urls {
		if err := downloadURL(ctx, c, e, raw, interactive); err != nil {
			if ctx.Err() != nil {
				return err
			}
			result = multierror.Append(result, fmt.Errorf("%s: %w", raw, err))
		}
	}
	return result
}

// downloadURL validates a URL given on the command line and downloads it
func downloadURL(ctx context.Context, c *cli.Context, e *env, raw string, interactive bool) error {
	force := c.Bool(flagForce)
	if force {
		e.say("⚠️  Forcing download without URL validation...")
	}

	res, err := e.classifier().Classify(ctx, raw, force)
	if errors.Is(err, classify.ErrUnsupportedURL) && interactive {
		ok, perr := e.prompter().ConfirmUnsupported(res.URL)
		if perr != nil {
			return perr
		}
		if ok {
			res, err = e.classifier().Classify(ctx, raw, true)
		}
	}
	if err != nil {
		fmt.Fprintln(e.errOut, "❌ Invalid or unsupported URL.")
		return fmt.Errorf("%w: %v", errInvalidURL, err)
	}

	e.say("🔍 Getting video information...")
	info, err := e.fetcher().Fetch(ctx, res.URL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.logger.Debug("metadata lookup failed", zap.String("url", res.URL), zap.Error(err))
		info = nil
		e.say("⚠️  Could not retrieve video information")
		if !force && interactive {
			ok, perr := e.prompter().Confirm("Continue anyway?", prompt.DefaultNo)
			if perr != nil {
				return perr
			}
			if !ok {
				return errNoInfo
			}
		}
	} else {
		e.say("✅ Found: %s", info.DisplayTitle())
		e.say("   By: %s", info.DisplayUploader())
	}

	return downloadOne(ctx, c, e, res.URL, info, res.Kind == classify.KindPlaylist)
}

// downloadOne collects the remaining preferences and runs the download
func downloadOne(ctx context.Context, c *cli.Context, e *env, url string, info *model.MediaInfo, playlistURL bool) error {
	req, err := buildRequest(c, e, url, info, playlistURL)
	if err != nil {
		return err
	}

	plan := policy.Resolve(req.Preference())
	e.say("\nStarting download%s...", plural(req.Playlist))
	if plan.Has(policy.StepConvertVideo) {
		e.say("🔄 Will convert to %s format", strings.ToUpper(string(req.Format)))
	} else if !req.Quality.IsAudio() {
		e.say("📹 Preferring MP4 format for better compatibility")
	}
	if info != nil && !req.Playlist {
		e.say("Title: %s", info.DisplayTitle())
		e.say("Uploader: %s", info.DisplayUploader())
		if info.Duration > 0 {
			e.say("Duration: %s", model.FormatDuration(int(info.Duration)))
		}
	}
	if req.Playlist && !e.silent {
		if playlist, err := e.playlistLister().ListPlaylist(ctx, url); err == nil {
			e.say("📃 %s: %d videos", playlist.Title, len(playlist.Entries))
		} else {
			e.logger.Debug("playlist listing failed", zap.Error(err))
		}
	}
	e.logger.Info("starting download", zap.String("url", url), zap.String("plan", plan.Describe()))

	if _, err := e.orchestrator().Run(ctx, req, e.reporter("Downloading")); err != nil {
		fmt.Fprintf(e.errOut, "❌ Download failed: %v\n", err)
		if !e.silent {
			fmt.Fprintln(e.errOut, "💡 Tips:")
			fmt.Fprintln(e.errOut, "   - Try a different quality setting")
			if !plan.Has(policy.StepConvertVideo) && !req.Quality.IsAudio() {
				fmt.Fprintln(e.errOut, "   - Use --force-convert to ensure specific output format")
			}
			fmt.Fprintln(e.errOut, "   - Check if the video is available in your region")
		}
		return fmt.Errorf("%w: %v", errDownloadRun, err)
	}

	dir, err := filepath.Abs(req.OutputDir)
	if err != nil {
		dir = req.OutputDir
	}
	e.say("\n✅ Download completed successfully!")
	e.say("📁 Files saved to: %s", dir)
	if req.Format == policy.FormatMP4 && !req.Quality.IsAudio() {
		e.say("🎯 Videos optimized for maximum player compatibility")
	}
	return nil
}

// buildRequest merges configuration, flags and interactive answers. Flags
// override configuration; in interactive mode unset flags are asked for.
func buildRequest(c *cli.Context, e *env, url string, info *model.MediaInfo, playlistURL bool) (download.Request, error) {
	interactive := !c.Bool(flagNoInteract)
	req := download.Request{
		URL:              url,
		OutputDir:        e.cfg.OutputDir,
		CustomName:       c.String(flagFilename),
		ForceConvert:     e.cfg.ForceConvert || c.Bool(flagForceConvert),
		Playlist:         c.Bool(flagPlaylist),
		FilenameTemplate: e.cfg.FilenameTemplate,
		Info:             info,
	}
	if c.IsSet(flagOutput) {
		req.OutputDir = c.String(flagOutput)
	}

	var err error
	if req.Quality, err = policy.ParseQuality(pick(c, flagQuality, e.cfg.Quality)); err != nil {
		return req, err
	}
	if req.Format, err = policy.ParseFormat(pick(c, flagFormat, e.cfg.Format)); err != nil {
		return req, err
	}

	if req.Quality.IsAudio() {
		req.ForceConvert = false
	}

	if !interactive {
		req.Playlist = req.Playlist || playlistURL
		e.say("Using quality: %s", req.Quality)
		e.say("Output format: %s", strings.ToUpper(string(req.Format)))
		if req.ForceConvert {
			e.say("Force conversion: enabled")
		}
		if req.Playlist {
			e.say("Downloading as playlist")
		}
		return req, nil
	}

	p := e.prompter()
	if c.IsSet(flagQuality) {
		e.say("Using quality: %s", req.Quality)
	} else if req.Quality, err = p.Quality(); err != nil {
		return req, err
	}

	if !req.Quality.IsAudio() && !c.IsSet(flagFormat) {
		if req.Format, req.ForceConvert, err = p.FormatPreference(); err != nil {
			return req, err
		}
	}

	if !req.Playlist {
		if req.Playlist, err = p.Playlist(url, info); err != nil {
			return req, err
		}
	}

	if req.CustomName == "" && !req.Playlist {
		if req.OutputDir, req.CustomName, err = p.OutputSettings(req.OutputDir, info); err != nil {
			return req, err
		}
	}
	return req, nil
}

// pick returns the flag value when set, else fallback
func pick(c *cli.Context, flag, fallback string) string {
	if c.IsSet(flag) {
		return c.String(flag)
	}
	return fallback
}

func plural(many bool) string {
	if many {
		return "s"
	}
	return ""
}
