package launcher

import (
	"context"
	"errors"
	"io"

	"github.com/pkg/browser"
)

// ErrNoURL is returned when asked to open an empty URL.
var ErrNoURL = errors.New("no tool URL")

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct {
	// Disabled turns Open into a no-op (PORTAL_NO_BROWSER).
	Disabled bool
}

func (o BrowserOpener) Open(ctx context.Context, url string) error {
	if url == "" {
		return ErrNoURL
	}
	if o.Disabled {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// The browser helper writes its child's output to these; keep the TUI clean.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// RecordingOpener remembers opened URLs instead of launching anything.
type RecordingOpener struct {
	URLs []string
	Err  error
}

func (o *RecordingOpener) Open(_ context.Context, url string) error {
	if url == "" {
		return ErrNoURL
	}
	if o.Err != nil {
		return o.Err
	}
	o.URLs = append(o.URLs, url)
	return nil
}
