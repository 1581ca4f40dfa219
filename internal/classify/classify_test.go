package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	title string
	err   error
	calls int
}

func (f *fakeProber) Probe(ctx context.Context, url string) (string, error) {
	f.calls++
	return f.title, f.err
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		err      error
	}{
		{"", "", ErrEmptyURL},
		{" \r\n\t ", "", ErrEmptyURL},
		{"  https://youtu.be/abc\n", "https://youtu.be/abc", nil},
		{"youtu.be/abc", "https://youtu.be/abc", nil},
		{"http://example.com/v", "http://example.com/v", nil},
		{"https://www.you\ttube.com/watch?v=x", "https://www.youtube.com/watch?v=x", nil},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		url        string
		kind       Kind
		recognized bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", KindVideo, true},
		{"https://YOUTUBE.com/watch?v=dQw4w9WgXcQ", KindVideo, true},
		{"https://www.youtube.com/playlist?list=PL123", KindPlaylist, true},
		{"https://youtu.be/dQw4w9WgXcQ", KindVideo, true},
		{"https://www.youtube.com/c/SomeChannel", KindChannel, true},
		{"https://www.youtube.com/channel/UC123", KindChannel, true},
		{"https://www.youtube.com/@handle", KindChannel, true},
		{"https://music.youtube.com/watch?v=abc", KindVideo, true},
		{"https://music.youtube.com/browse/xyz", KindVideo, true},
		{"https://youtube.com/live/abc123", KindVideo, true},
		{"https://www.youtube.com/live/abc123", KindVideo, true},
		{"youtube.com/results?search_query=go", KindVideo, true},
		{"https://m.youtube.com/watch?v=abc", KindVideo, true},
		{"https://www.youtube.com/embed/abc", KindVideo, true},
		{"https://www.youtube.com/shorts/abc", KindShort, true},
		{"https://vimeo.com/12345", KindUnknown, false},
		{"https://notyoutube.com/watch?v=abc", KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			kind, ok := Match(tt.url)
			assert.Equal(t, tt.recognized, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestLooksLikePlaylist(t *testing.T) {
	assert.True(t, LooksLikePlaylist("https://www.youtube.com/PLAYLIST?x=1"))
	assert.True(t, LooksLikePlaylist("https://www.youtube.com/watch?v=a&list=PL1"))
	assert.False(t, LooksLikePlaylist("https://www.youtube.com/watch?v=a"))
}

func TestClassifyRecognized(t *testing.T) {
	prober := &fakeProber{}
	c := New(prober, nil)

	res, err := c.Classify(context.Background(), " youtube.com/watch?v=abc ", false)
	require.NoError(t, err)
	assert.Equal(t, "https://youtube.com/watch?v=abc", res.URL)
	assert.True(t, res.Recognized)
	assert.Equal(t, 0, prober.calls)
	assert.False(t, res.Playlist())
}

func TestClassifyProbed(t *testing.T) {
	prober := &fakeProber{title: "Some clip"}
	c := New(prober, nil)

	res, err := c.Classify(context.Background(), "https://vimeo.com/1", false)
	require.NoError(t, err)
	assert.True(t, res.Probed)
	assert.Equal(t, "Some clip", res.Title)
	assert.Equal(t, 1, prober.calls)
}

func TestClassifyRejected(t *testing.T) {
	c := New(&fakeProber{err: errors.New("unsupported")}, nil)

	res, err := c.Classify(context.Background(), "https://example.com/nothing", false)
	assert.ErrorIs(t, err, ErrUnsupportedURL)
	require.NotNil(t, res)
	assert.Equal(t, "https://example.com/nothing", res.URL)
}

func TestClassifyForced(t *testing.T) {
	prober := &fakeProber{err: errors.New("unsupported")}
	c := New(prober, nil)

	res, err := c.Classify(context.Background(), "example.com/nothing", true)
	require.NoError(t, err)
	assert.True(t, res.Forced)
	assert.Equal(t, 0, prober.calls)
}

func TestClassifyNoProber(t *testing.T) {
	_, err := New(nil, nil).Classify(context.Background(), "https://example.com/x", false)
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}

func TestClassifyEmpty(t *testing.T) {
	_, err := New(nil, nil).Classify(context.Background(), "  ", true)
	assert.ErrorIs(t, err, ErrEmptyURL)
}
