package download

import (
	"github.com/lrstanley/go-ytdlp"

	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/naming"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

// Request is everything needed to run one download
type Request struct {
	URL          string
	Quality      policy.Quality
	Format       policy.Format
	ForceConvert bool
	Playlist     bool
	OutputDir    string
	CustomName   string
	// FilenameTemplate overrides the default single-download template
	FilenameTemplate string
	// Info is the metadata fetched beforehand, if any
	Info *model.MediaInfo
}

// Preference returns the format preference of the request
func (r Request) Preference() policy.Preference {
	return policy.Preference{
		Quality:      r.Quality,
		Format:       r.Format,
		ForceConvert: r.ForceConvert,
	}
}

// Options is the engine option set derived from a Request
type Options struct {
	Output            string
	Format            string
	MergeOutputFormat string
	Playlist          bool

	ExtractAudio bool
	AudioFormat  string
	AudioQuality string
	RecodeVideo  string

	EmbedMetadata bool
}

// BuildOptions resolves the request's format policy and output template into
// engine options
func BuildOptions(req Request) (Options, policy.Plan) {
	plan := policy.Resolve(req.Preference())

	opts := Options{
		Output: naming.Template(naming.Options{
			Dir:              req.OutputDir,
			CustomName:       req.CustomName,
			Playlist:         req.Playlist,
			FilenameTemplate: req.FilenameTemplate,
		}),
		Format:            plan.Selector,
		MergeOutputFormat: plan.MergeOutputFormat,
		Playlist:          req.Playlist,
	}

	for _, step := range plan.Steps {
		switch step.Kind {
		case policy.StepExtractAudio:
			opts.ExtractAudio = true
			opts.AudioFormat = step.Codec
			opts.AudioQuality = step.Quality
		case policy.StepConvertVideo:
			opts.RecodeVideo = string(step.Container)
		case policy.StepEmbedMetadata:
			opts.EmbedMetadata = true
		}
	}

	return opts, plan
}

// Apply configures cmd with the options
func (o Options) Apply(cmd *ytdlp.Command) *ytdlp.Command {
	cmd.
		Output(o.Output).
		Format(o.Format).
		MergeOutputFormat(o.MergeOutputFormat)

	if o.Playlist {
		cmd.YesPlaylist()
	} else {
		cmd.NoPlaylist()
	}
	if o.ExtractAudio {
		cmd.ExtractAudio().AudioFormat(o.AudioFormat).AudioQuality(o.AudioQuality)
	}
	if o.RecodeVideo != "" {
		cmd.RecodeVideo(o.RecodeVideo)
	}
	if o.EmbedMetadata {
		cmd.EmbedMetadata()
	}
	return cmd
}
