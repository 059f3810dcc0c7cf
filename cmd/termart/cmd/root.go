/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	termart "github.com/blacktop/go-termart"
	"github.com/blacktop/go-termart/pkg/panel"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	opts    options
)

// options holds the flag values for a single run
type options struct {
	size      int
	title     string
	id        string
	noBorder  bool
	info      bool
	timeout   time.Duration
	retries   int
	userAgent string
}

func init() {
	log.SetHandler(clihander.Default)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.Flags().IntVarP(&opts.size, "size", "s", 0, "Output width in characters (default: terminal width - 4, max 100)")
	rootCmd.Flags().StringVarP(&opts.title, "title", "t", "", "Display name shown in the panel border")
	rootCmd.Flags().StringVarP(&opts.id, "id", "i", "", "Numeric identifier shown next to the title")
	rootCmd.Flags().BoolVar(&opts.noBorder, "no-border", false, "Print the art without a surrounding panel")
	rootCmd.Flags().BoolVar(&opts.info, "info", false, "Print a table with image details")
	rootCmd.Flags().DurationVar(&opts.timeout, "timeout", termart.DefaultTimeout, "HTTP fetch timeout")
	rootCmd.Flags().IntVar(&opts.retries, "retries", termart.DefaultRetries, "Retries after network errors or 5xx responses")
	rootCmd.Flags().StringVar(&opts.userAgent, "user-agent", termart.DefaultUserAgent, "User-Agent header for HTTP fetches")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "termart [flags] LOCATOR",
	Short: "Render an image as colored half-block terminal art",
	Long: `Render an image as colored half-block terminal art.

LOCATOR is an http(s) URL, a local file path, or "-" to read from stdin.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		if opts.size < 0 {
			return fmt.Errorf("--size must be positive: %w", termart.ErrInvalidWidth)
		}
		return run(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
	},
}

// run loads, renders and prints a single image
func run(ctx context.Context, w io.Writer, locator string, o options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fetcher := termart.NewFetcher(o.timeout)
	fetcher.Retries = o.retries
	fetcher.UserAgent = o.userAgent

	var (
		img     image.Image
		format  string
		loadErr error
	)
	load := func() {
		img, format, loadErr = termart.Load(ctx, locator, fetcher)
	}

	log.WithField("locator", locator).Debug("Loading image")
	if termart.IsURL(locator) && termart.IsTerminal() {
		if err := spinner.New().Title("Fetching image...").Action(load).Run(); err != nil {
			return fmt.Errorf("spinner error: %w", err)
		}
	} else {
		load()
	}

	title := panel.Title(o.title, o.id)

	if loadErr != nil {
		if errors.Is(loadErr, termart.ErrRenderUnavailable) {
			fmt.Fprintln(w, frame(panel.Error(fmt.Sprintf("Error loading image: %v", loadErr)), title, o.noBorder))
		}
		return loadErr
	}

	bounds := img.Bounds()
	log.WithFields(log.Fields{
		"format": format,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}).Debug("Decoded image")

	width := o.size
	if width == 0 {
		var err error
		if width, err = termart.DefaultWidth(termart.TerminalWidth()); err != nil {
			return err
		}
	}

	grid, err := termart.Render(img, width)
	if err != nil {
		return fmt.Errorf("failed to render image: %w", err)
	}
	log.WithFields(log.Fields{
		"cols": grid.Cols(),
		"rows": grid.Rows(),
	}).Debug("Rendered grid")

	fmt.Fprintln(w, frame(grid.String(), title, o.noBorder))

	if o.info {
		rw, rh := termart.ResampledSize(bounds.Dx(), bounds.Dy(), width)
		fmt.Fprintln(w, panel.InfoTable("Image Details", []panel.Row{
			{Category: "Source", Value: locator},
			{Category: "Format", Value: format},
			{Category: "Decoded", Value: fmt.Sprintf("%dx%d px", bounds.Dx(), bounds.Dy())},
			{Category: "Resampled", Value: fmt.Sprintf("%dx%d px", rw, rh)},
			{Category: "Grid", Value: fmt.Sprintf("%dx%d cells", grid.Cols(), grid.Rows())},
		}, 0))
	}

	return nil
}

// frame wraps body in a titled panel unless borders are disabled
func frame(body, title string, noBorder bool) string {
	if noBorder {
		return body
	}
	return panel.Render(body, panel.Options{Title: title})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
