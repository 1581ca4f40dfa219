package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AliEhsanian/YouTube-Downloader/internal/classify"
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
	"github.com/AliEhsanian/YouTube-Downloader/internal/naming"
	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

// ErrAborted is returned when the input ends before a question is answered
var ErrAborted = errors.New("input closed")

// Default is the answer assumed for an empty reply to a yes/no question
type Default int

const (
	// NoDefault repeats the question on an empty reply
	NoDefault Default = iota
	DefaultYes
	DefaultNo
)

// Classifier validates URLs
type Classifier interface {
	Classify(ctx context.Context, raw string, force bool) (*classify.Result, error)
}

// InfoFetcher retrieves metadata for confirmation
type InfoFetcher interface {
	Fetch(ctx context.Context, url string) (*model.MediaInfo, error)
}

// Prompter asks questions on out and reads answers from in
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Printf writes a message to the output
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the output
func (p *Prompter) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

// Ask prints label and returns the trimmed reply
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrAborted
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question until a valid answer is given
func (p *Prompter) Confirm(question string, def Default) (bool, error) {
	label := question + " (y/n)"
	switch def {
	case DefaultYes:
		label += " [default: y]"
	case DefaultNo:
		label += " [default: n]"
	}
	label += ": "

	for {
		answer, err := p.Ask(label)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "":
			if def == DefaultYes {
				return true, nil
			}
			if def == DefaultNo {
				return false, nil
			}
		}
		p.Println("Please enter 'y' or 'n'")
	}
}

// ConfirmUnsupported explains that url was not recognized and asks whether
// to try it anyway
func (p *Prompter) ConfirmUnsupported(url string) (bool, error) {
	p.Printf("❓ URL format not recognized: %s\n", url)
	p.Println("This might still be a valid YouTube link or supported video platform.")
	ok, err := p.Confirm("Try to download anyway?", NoDefault)
	if err != nil {
		return false, err
	}
	if ok {
		p.Println("⚠️  Attempting download with unverified URL...")
	}
	return ok, nil
}

// URL asks for a media URL until one is accepted. The returned metadata is
// nil when it could not be retrieved.
func (p *Prompter) URL(ctx context.Context, classifier Classifier, fetcher InfoFetcher) (string, *model.MediaInfo, error) {
	for {
		raw, err := p.Ask("\nEnter video URL (YouTube or other supported platforms): ")
		if err != nil {
			return "", nil, err
		}
		if raw == "" {
			p.Println("URL cannot be empty. Please try again.")
			continue
		}

		res, err := classifier.Classify(ctx, raw, false)
		switch {
		case errors.Is(err, classify.ErrUnsupportedURL):
			ok, err := p.ConfirmUnsupported(res.URL)
			if err != nil {
				return "", nil, err
			}
			if !ok {
				p.Println("❌ Skipping this URL. Please try another one.")
				continue
			}
			if res, err = classifier.Classify(ctx, raw, true); err != nil {
				return "", nil, err
			}
		case errors.Is(err, classify.ErrEmptyURL):
			p.Println("URL cannot be empty. Please try again.")
			continue
		case err != nil:
			return "", nil, err
		}

		p.Println("🔍 Getting video information...")
		info, fetchErr := fetcher.Fetch(ctx, res.URL)
		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}

		var ok bool
		if fetchErr == nil {
			p.Printf("✅ Found: %s\n", info.DisplayTitle())
			p.Printf("   By: %s\n", info.DisplayUploader())
			ok, err = p.Confirm("Proceed with this video?", DefaultYes)
		} else {
			info = nil
			p.Println("⚠️  Could not retrieve video information, but URL might still work.")
			ok, err = p.Confirm("Try to download anyway?", NoDefault)
		}
		if err != nil {
			return "", nil, err
		}
		if ok {
			return res.URL, info, nil
		}
	}
}

// Quality shows the quality menu. An empty reply selects the first entry.
func (p *Prompter) Quality() (policy.Quality, error) {
	p.Println("\nSelect download quality:")
	for i, q := range policy.Qualities {
		p.Printf("%d. %s\n", i+1, q.Label())
	}

	index, err := p.choose(len(policy.Qualities))
	if err != nil {
		return "", err
	}
	return policy.Qualities[index], nil
}

// FormatPreference shows the format menu. Only MP4 asks whether to force a
// re-encode; every other format is always converted.
func (p *Prompter) FormatPreference() (policy.Format, bool, error) {
	p.Println("\nVideo format preference:")
	for i, f := range policy.Formats {
		p.Printf("%d. %s\n", i+1, f.Label())
	}

	index, err := p.choose(len(policy.Formats))
	if err != nil {
		return "", false, err
	}
	format := policy.Formats[index]
	if format != policy.FormatMP4 {
		return format, true, nil
	}

	p.Println("\n🔄 Format conversion options:")
	p.Println("YouTube often provides high-quality videos in WebM format.")
	force, err := p.Confirm("Force conversion to MP4 even if it means re-encoding?", DefaultNo)
	if err != nil {
		return "", false, err
	}
	if force {
		p.Println("⚠️  Note: This may take longer and slightly reduce quality")
	}
	return format, force, nil
}

func (p *Prompter) choose(n int) (int, error) {
	label := fmt.Sprintf("\nEnter choice (1-%d) [default: 1]: ", n)
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, nil
		}
		if choice, err := strconv.Atoi(answer); err == nil && choice >= 1 && choice <= n {
			return choice - 1, nil
		}
		p.Printf("Invalid choice. Please enter 1-%d.\n", n)
	}
}

// Playlist asks whether to download a whole playlist
func (p *Prompter) Playlist(url string, info *model.MediaInfo) (bool, error) {
	if classify.LooksLikePlaylist(url) {
		p.Println("🎵 Playlist detected!")
		return p.Confirm("Download entire playlist?", DefaultNo)
	}
	if info.IsPlaylist() {
		p.Println("🎵 This URL contains a playlist!")
		return p.Confirm("Download entire playlist?", DefaultNo)
	}
	return p.Confirm("\nDownload as playlist?", DefaultNo)
}

// OutputSettings asks for the output directory and an optional custom
// filename. An empty directory reply keeps defaultDir.
func (p *Prompter) OutputSettings(defaultDir string, info *model.MediaInfo) (string, string, error) {
	dir, err := p.Ask(fmt.Sprintf("\nOutput directory [default: %s]: ", defaultDir))
	if err != nil {
		return "", "", err
	}
	if dir == "" {
		dir = defaultDir
	}

	var suggestion string
	if info != nil && strings.TrimSpace(info.Title) != "" {
		suggestion = fmt.Sprintf(" [suggested: %s]", naming.SuggestFilename(info.Title))
	}
	name, err := p.Ask(fmt.Sprintf("Custom filename (optional)%s: ", suggestion))
	if err != nil {
		return "", "", err
	}
	return dir, name, nil
}
