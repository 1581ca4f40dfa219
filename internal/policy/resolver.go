package policy

import (
	"fmt"
	"strings"
)

// Audio extraction settings
const (
	AudioCodec   = "mp3"
	AudioQuality = "192"
)

// MergeOutputFormat is the container used when video and audio streams are merged
const MergeOutputFormat = "mp4"

// Format selectors for the audio tier and uncapped video
const (
	selectorAudio         = "bestaudio/best"
	selectorBestMP4       = "best[ext=mp4]/bestvideo[ext=mp4]+bestaudio[ext=m4a]/best"
	selectorBestConverted = "best"
)

// StepKind identifies a post-processing step
type StepKind string

const (
	StepExtractAudio  StepKind = "extract_audio"
	StepConvertVideo  StepKind = "convert_video"
	StepEmbedMetadata StepKind = "embed_metadata"
)

// Step is a single post-processing action executed by the transcoder
type Step struct {
	Kind StepKind
	// Codec is the audio codec for StepExtractAudio
	Codec string
	// Quality is the audio bitrate in kbps for StepExtractAudio
	Quality string
	// Container is the target format for StepConvertVideo
	Container Format
}

func (s Step) String() string {
	switch s.Kind {
	case StepExtractAudio:
		return fmt.Sprintf("extract audio (%s @ %sk)", s.Codec, s.Quality)
	case StepConvertVideo:
		return fmt.Sprintf("convert to %s", s.Container)
	case StepEmbedMetadata:
		return "embed metadata"
	}
	return string(s.Kind)
}

// Preference is the user's format choice
type Preference struct {
	Quality      Quality
	Format       Format
	ForceConvert bool
}

// Plan is the resolved format selection and post-processing chain
type Plan struct {
	Selector          string
	MergeOutputFormat string
	Steps             []Step
}

// Has reports whether the plan contains a step of the given kind
func (p Plan) Has(kind StepKind) bool {
	for _, s := range p.Steps {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// Describe returns a one-line summary for logs
func (p Plan) Describe() string {
	steps := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		steps = append(steps, s.String())
	}
	if len(steps) == 0 {
		return p.Selector
	}
	return p.Selector + " -> " + strings.Join(steps, ", ")
}

// Converts reports whether the preference results in a re-encode into the
// preferred container. Non-MP4 containers always convert.
func (pref Preference) Converts() bool {
	if pref.Quality.IsAudio() {
		return false
	}
	format := pref.Format
	if format == "" {
		format = FormatMP4
	}
	return pref.ForceConvert || format != FormatMP4
}

// Resolve turns a preference into a Plan
func Resolve(pref Preference) Plan {
	if pref.Format == "" {
		pref.Format = FormatMP4
	}
	if pref.Quality == "" {
		pref.Quality = QualityBest
	}

	if pref.Quality.IsAudio() {
		return Plan{
			Selector:          selectorAudio,
			MergeOutputFormat: MergeOutputFormat,
			Steps: []Step{{
				Kind:    StepExtractAudio,
				Codec:   AudioCodec,
				Quality: AudioQuality,
			}},
		}
	}

	convert := pref.Converts()
	plan := Plan{
		Selector:          Selector(pref.Quality, convert),
		MergeOutputFormat: MergeOutputFormat,
	}
	if convert {
		plan.Steps = append(plan.Steps, Step{Kind: StepConvertVideo, Container: pref.Format})
	}
	plan.Steps = append(plan.Steps, Step{Kind: StepEmbedMetadata})
	return plan
}

// Selector builds the format selector for a video tier. Without conversion
// MP4 streams are preferred so no re-encode is needed; with conversion any
// container is accepted.
func Selector(q Quality, convert bool) string {
	if q.IsAudio() {
		return selectorAudio
	}
	h := q.MaxHeight()
	if convert {
		if h == 0 {
			return selectorBestConverted
		}
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", h, h)
	}
	if h == 0 {
		return selectorBestMP4
	}
	return fmt.Sprintf("best[height<=%d][ext=mp4]/bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/best[height<=%d]", h, h, h)
}
