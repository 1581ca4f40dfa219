package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Audio(t *testing.T) {
	plan := Resolve(Preference{Quality: QualityAudio, Format: FormatMKV, ForceConvert: true})

	assert.Equal(t, "bestaudio/best", plan.Selector)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, Step{Kind: StepExtractAudio, Codec: "mp3", Quality: "192"}, plan.Steps[0])
	assert.False(t, plan.Has(StepEmbedMetadata))
	assert.False(t, plan.Has(StepConvertVideo))
}

func TestResolve_VideoPrefersMP4(t *testing.T) {
	tests := []struct {
		quality  Quality
		selector string
	}{
		{QualityBest, "best[ext=mp4]/bestvideo[ext=mp4]+bestaudio[ext=m4a]/best"},
		{Quality4K, "best[height<=2160][ext=mp4]/bestvideo[height<=2160][ext=mp4]+bestaudio[ext=m4a]/best[height<=2160]"},
		{Quality1080p, "best[height<=1080][ext=mp4]/bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[height<=1080]"},
		{Quality720p, "best[height<=720][ext=mp4]/bestvideo[height<=720][ext=mp4]+bestaudio[ext=m4a]/best[height<=720]"},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			plan := Resolve(Preference{Quality: tt.quality, Format: FormatMP4})

			assert.Equal(t, tt.selector, plan.Selector)
			assert.Equal(t, "mp4", plan.MergeOutputFormat)
			assert.Equal(t, []Step{{Kind: StepEmbedMetadata}}, plan.Steps)
		})
	}
}

func TestResolve_ForcedConversion(t *testing.T) {
	tests := []struct {
		quality  Quality
		selector string
	}{
		{QualityBest, "best"},
		{Quality4K, "bestvideo[height<=2160]+bestaudio/best[height<=2160]"},
		{Quality1080p, "bestvideo[height<=1080]+bestaudio/best[height<=1080]"},
		{Quality720p, "bestvideo[height<=720]+bestaudio/best[height<=720]"},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			plan := Resolve(Preference{Quality: tt.quality, Format: FormatMP4, ForceConvert: true})

			assert.Equal(t, tt.selector, plan.Selector)
			require.Len(t, plan.Steps, 2)
			assert.Equal(t, Step{Kind: StepConvertVideo, Container: FormatMP4}, plan.Steps[0])
			assert.Equal(t, StepEmbedMetadata, plan.Steps[1].Kind)
		})
	}
}

func TestResolve_NonMP4AlwaysConverts(t *testing.T) {
	for _, f := range []Format{FormatWebM, FormatMKV, FormatAVI} {
		plan := Resolve(Preference{Quality: Quality720p, Format: f})

		assert.True(t, plan.Has(StepConvertVideo), "format %s", f)
		assert.Equal(t, "bestvideo[height<=720]+bestaudio/best[height<=720]", plan.Selector)
		assert.Equal(t, f, plan.Steps[0].Container)
	}
}

func TestResolve_Defaults(t *testing.T) {
	plan := Resolve(Preference{})

	assert.Equal(t, "best[ext=mp4]/bestvideo[ext=mp4]+bestaudio[ext=m4a]/best", plan.Selector)
	assert.Equal(t, []Step{{Kind: StepEmbedMetadata}}, plan.Steps)
}

func TestPlan_Describe(t *testing.T) {
	plan := Resolve(Preference{Quality: QualityBest, Format: FormatMKV})
	assert.Equal(t, "best -> convert to mkv, embed metadata", plan.Describe())

	assert.Equal(t, "best", Plan{Selector: "best"}.Describe())
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in   string
		want Quality
	}{
		{"", QualityBest},
		{"best", QualityBest},
		{"4K", Quality4K},
		{"2160p", Quality4K},
		{" 1080p ", Quality1080p},
		{"720p", Quality720p},
		{"AUDIO", QualityAudio},
	}
	for _, tt := range tests {
		got, err := ParseQuality(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseQuality("480p")
	assert.True(t, errors.Is(err, ErrUnknownQuality))
}

func TestParseFormat(t *testing.T) {
	got, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatMP4, got)

	got, err = ParseFormat(".MKV")
	require.NoError(t, err)
	assert.Equal(t, FormatMKV, got)

	_, err = ParseFormat("flv")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestQuality_MaxHeight(t *testing.T) {
	assert.Equal(t, 0, QualityBest.MaxHeight())
	assert.Equal(t, 2160, Quality4K.MaxHeight())
	assert.Equal(t, 0, QualityAudio.MaxHeight())
}
