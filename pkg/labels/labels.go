// Package labels is the public entry point for writing label sheets.
//
// Give it a label source and a destination path; the file extension
// selects the output format:
//
//	src := grid.Sequence([]string{
//	    "10 nM\nsample1\n22-03-09",
//	    "10 nM\nsample2\n22-03-09",
//	}, grid.OrderRow)
//	err := labels.WriteFile("labels.pdf", src)
//
// Supported extensions are .pdf, .svg, and .png. Rendering happens
// fully in memory; the destination is written in one step, so a failed
// render never leaves a partial document behind.
package labels

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mlandt/labelator/pkg/errors"
	"github.com/mlandt/labelator/pkg/grid"
	"github.com/mlandt/labelator/pkg/layout"
	"github.com/mlandt/labelator/pkg/render/sink"
	"github.com/mlandt/labelator/pkg/sheet"
)

// Format is a supported output document format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// DetectFormat maps a destination path to its output format by
// extension, case-insensitively. Unrecognized or missing extensions
// yield an UNSUPPORTED_FORMAT error.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".svg":
		return FormatSVG, nil
	case ".pdf":
		return FormatPDF, nil
	case ".png":
		return FormatPNG, nil
	case "":
		return "", errors.New(errors.ErrCodeUnsupportedFormat, "file name %q has no extension; must end in .pdf, .svg, or .png", path)
	}
	return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported file extension %q; must end in .pdf, .svg, or .png", ext)
}

// Option configures one render call.
type Option func(*config)

type config struct {
	sheet    sheet.Sheet
	sinkOpts []sink.Option
}

// WithSheet selects the label-paper calibration. Default:
// [sheet.Flexilabels260].
func WithSheet(s sheet.Sheet) Option {
	return func(c *config) { c.sheet = s }
}

// WithParams sets the layout parameters (font, offsets, line height,
// stroke width, circle visibility).
func WithParams(p sink.Params) Option {
	return func(c *config) { c.sinkOpts = append(c.sinkOpts, sink.WithParams(p)) }
}

// WithGuides draws calibration crosshairs through each circle center.
func WithGuides() Option {
	return func(c *config) { c.sinkOpts = append(c.sinkOpts, sink.WithGuides()) }
}

// WithPNGScale sets the PNG resolution factor (default 2.0).
func WithPNGScale(s float64) Option {
	return func(c *config) { c.sinkOpts = append(c.sinkOpts, sink.WithScale(s)) }
}

// Render renders the label source to an in-memory document in the
// given format.
func Render(format Format, src grid.Source, opts ...Option) ([]byte, error) {
	cfg := config{sheet: sheet.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.sheet.Validate(); err != nil {
		return nil, err
	}

	g, err := grid.Normalize(src, cfg.sheet)
	if err != nil {
		return nil, err
	}
	l := layout.Build(g, cfg.sheet)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, cfg.sinkOpts...), nil
	case FormatPDF:
		return sink.RenderPDF(l, cfg.sinkOpts...)
	case FormatPNG:
		return sink.RenderPNG(l, cfg.sinkOpts...)
	}
	return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", string(format))
}

// WriteFile renders the label source and writes the document to path.
// The extension selects the format. Nothing is written when rendering
// fails.
func WriteFile(path string, src grid.Source, opts ...Option) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := Render(format, src, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailure, err, "write %s", path)
	}
	return nil
}
