package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
)

// Description preview length
const maxDescriptionLength = 200

func infoAction(ctx context.Context, c *cli.Context, e *env) error {
	if c.NArg() != 1 {
		return errors.New("info expects exactly one URL")
	}

	res, err := e.classifier().Classify(ctx, c.Args().First(), c.Bool(flagForce))
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidURL, err)
	}

	info, err := e.fetcher().Fetch(ctx, res.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", errNoInfo, err)
	}

	if c.Bool(flagJSON) {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, string(data))
		return nil
	}

	printInfo(e, info)

	if info.IsPlaylist() && len(info.Entries) == 0 {
		playlist, err := e.playlistLister().ListPlaylist(ctx, res.URL)
		if err != nil {
			e.logger.Debug("playlist listing failed", zap.Error(err))
			return nil
		}
		for _, entry := range playlist.Entries {
			info.Entries = append(info.Entries, *entry)
		}
	}
	for i, entry := range info.Entries {
		fmt.Fprintf(e.out, "%3d. %s [%s]\n", i+1, entry.Title, entry.DisplayDuration())
	}
	return nil
}

func printInfo(e *env, info *model.MediaInfo) {
	fmt.Fprintf(e.out, "Title:       %s\n", info.DisplayTitle())
	fmt.Fprintf(e.out, "Uploader:    %s\n", info.DisplayUploader())
	if info.IsPlaylist() {
		fmt.Fprintf(e.out, "Type:        playlist (%d entries)\n", len(info.Entries))
		return
	}
	fmt.Fprintf(e.out, "Duration:    %s\n", model.FormatDuration(int(info.Duration)))
	fmt.Fprintf(e.out, "Uploaded:    %s\n", model.FormatUploadDate(info.UploadDate))
	fmt.Fprintf(e.out, "Views:       %s\n", model.FormatViewCount(info.ViewCount))
	if desc := strings.TrimSpace(info.Description); desc != "" {
		runes := []rune(desc)
		if len(runes) > maxDescriptionLength {
			desc = string(runes[:maxDescriptionLength]) + "..."
		}
		fmt.Fprintf(e.out, "Description: %s\n", desc)
	}
}
