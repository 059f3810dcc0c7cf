package termart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRetries   = 2
	DefaultUserAgent = "go-termart/1.0"
	MaxImageBytes    = 32 << 20 // 32MB
)

// Fetcher retrieves encoded images over HTTP(S)
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Retries   int           // extra attempts after a network error or 5xx answer
	Backoff   time.Duration // delay before the first retry, doubled after each
}

// NewFetcher returns a Fetcher with a client bounded by timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: DefaultUserAgent,
		Retries:   DefaultRetries,
		Backoff:   250 * time.Millisecond,
	}
}

// Fetch downloads and decodes the image at url. Every failure wraps ErrRenderUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, string, error) {
	data, err := f.get(ctx, url)
	if err != nil {
		return nil, "", err
	}
	return Decode(bytes.NewReader(data))
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	backoff := f.Backoff
	var lastErr error
	for attempt := 0; attempt <= f.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, unavailable("fetch %s: %w", url, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		data, retry, err := f.once(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, unavailable("fetch %s: %w", url, lastErr)
}

// once performs a single GET and reports whether a failure is worth retrying
func (f *Fetcher) once(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode >= 500, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, false, fmt.Errorf("image larger than %d bytes", MaxImageBytes)
	}
	return data, false, nil
}

// Decode decodes an encoded image and returns it with its format name.
// Failures wrap ErrRenderUnavailable.
func Decode(r io.Reader) (image.Image, string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, MaxImageBytes)); err != nil {
		return nil, "", unavailable("failed to read image: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, "", unavailable("failed to decode image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(buf.Bytes()), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", unavailable("failed to decode image: %w", err)
	}
	return img, format, nil
}

// IsURL reports whether locator should be fetched over the network
func IsURL(locator string) bool {
	l := strings.ToLower(locator)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Load resolves locator to a decoded image. It accepts an http(s) URL, "-"
// for stdin, or a file path. A nil fetcher uses NewFetcher(DefaultTimeout).
func Load(ctx context.Context, locator string, f *Fetcher) (image.Image, string, error) {
	switch {
	case locator == "":
		return nil, "", unavailable("empty image locator")
	case IsURL(locator):
		if f == nil {
			f = NewFetcher(DefaultTimeout)
		}
		return f.Fetch(ctx, locator)
	case locator == "-":
		return Decode(os.Stdin)
	}

	file, err := os.Open(locator)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", unavailable("image not found: %s", locator)
		}
		return nil, "", unavailable("failed to open file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}
