/*
Package termart renders raster images as 24-bit colored Unicode half-block
art for terminal emulators.

Every character cell carries two vertically stacked pixels: the upper sample
is drawn with the cell background color and the lower sample with the glyph
ink, which doubles the vertical resolution of the output. Samples whose alpha
is 128 or less are treated as transparent, so images with transparent
backgrounds keep the terminal background visible around them.

Main features:

  - Lanczos resampling with alpha, grid height corrected for monospace cells
  - Immutable cell grids that can be inspected or emitted as ANSI text
  - Image loading from http(s) URLs, files, or stdin (PNG, JPEG, GIF, WebP, BMP)
  - Default widths derived from the terminal width

Basic Usage:

	// Simple one-liner
	termart.PrintFile("image.png")

	// Explicit pipeline
	img, _, err := termart.Load(ctx, "https://example.com/sprite.png", nil)
	if err != nil {
	    log.Fatal(err)
	}
	grid, err := termart.Render(img, 40)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(grid)

Fluent API:

	img, err := termart.FromURL("https://example.com/sprite.png")
	if err != nil {
	    log.Fatal(err)
	}
	out, err := img.Width(60).Fetcher(termart.NewFetcher(5 * time.Second)).Render(ctx)

Errors:

Render returns ErrInvalidImage for rasters with a zero dimension and never a
partial grid. Every fetch or decode failure from Load, Decode or a Fetcher
wraps ErrRenderUnavailable so callers can show an inline message in place of
the art:

	if errors.Is(err, termart.ErrRenderUnavailable) {
	    fmt.Println("Error loading image:", err)
	}
*/
package termart
