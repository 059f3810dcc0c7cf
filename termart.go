package termart

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
)

// Image is a terminal image with a fluent API for configuration
type Image struct {
	source  image.Image
	format  string
	reader  io.Reader
	locator string

	// Configuration
	width   int
	fetcher *Fetcher
}

// New creates a new Image from an image.Image
func New(img image.Image) *Image {
	if img == nil {
		return nil
	}
	return &Image{source: img}
}

// Open creates a new Image from a file path
func Open(path string) (*Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	return &Image{locator: path}, nil
}

// From creates a new Image from an io.Reader
func From(r io.Reader) *Image {
	if r == nil {
		return nil
	}
	return &Image{reader: r}
}

// FromURL creates a new Image fetched from an http(s) URL
func FromURL(url string) (*Image, error) {
	if !IsURL(url) {
		return nil, fmt.Errorf("not an http(s) URL: %q", url)
	}
	return &Image{locator: url}, nil
}

// LoadImage creates a new Image from any locator accepted by Load
func LoadImage(locator string) (*Image, error) {
	if locator == "" {
		return nil, fmt.Errorf("locator cannot be empty")
	}
	return &Image{locator: locator}, nil
}

// Width sets the target width in character cells. Zero means derive it from
// the terminal width.
func (i *Image) Width(w int) *Image {
	if w < 0 {
		w = 0
	}
	i.width = w
	return i
}

// Fetcher sets the fetcher used for URL locators
func (i *Image) Fetcher(f *Fetcher) *Image {
	i.fetcher = f
	return i
}

// Source loads (once) and returns the decoded image and its format
func (i *Image) Source(ctx context.Context) (image.Image, string, error) {
	if i.source != nil {
		return i.source, i.format, nil
	}

	var (
		img    image.Image
		format string
		err    error
	)
	switch {
	case i.reader != nil:
		img, format, err = Decode(i.reader)
	case i.locator != "":
		img, format, err = Load(ctx, i.locator, i.fetcher)
	default:
		return nil, "", fmt.Errorf("no image source configured")
	}
	if err != nil {
		return nil, "", err
	}

	i.source, i.format = img, format
	return img, format, nil
}

// TargetWidth returns the configured width, or the terminal derived default
func (i *Image) TargetWidth() (int, error) {
	if i.width > 0 {
		return i.width, nil
	}
	return DefaultWidth(TerminalWidth())
}

// Grid loads the image and renders it into a cell grid
func (i *Image) Grid(ctx context.Context) (*Grid, error) {
	img, _, err := i.Source(ctx)
	if err != nil {
		return nil, err
	}
	width, err := i.TargetWidth()
	if err != nil {
		return nil, err
	}
	return Render(img, width)
}

// Render generates the styled string for the image
func (i *Image) Render(ctx context.Context) (string, error) {
	grid, err := i.Grid(ctx)
	if err != nil {
		return "", err
	}
	return grid.String(), nil
}

// Print outputs the image to stdout
func (i *Image) Print(ctx context.Context) error {
	out, err := i.Render(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}

// Convenience functions for quick rendering

// RenderFile renders an image file with default settings
func RenderFile(path string) (string, error) {
	img, err := Open(path)
	if err != nil {
		return "", err
	}
	return img.Render(context.Background())
}

// RenderURL fetches and renders an image with default settings
func RenderURL(ctx context.Context, url string) (string, error) {
	img, err := FromURL(url)
	if err != nil {
		return "", err
	}
	return img.Render(ctx)
}

// PrintFile prints an image file with default settings
func PrintFile(path string) error {
	img, err := Open(path)
	if err != nil {
		return err
	}
	return img.Print(context.Background())
}
