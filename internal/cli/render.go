package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/mlandt/labelator/pkg/errors"
	"github.com/mlandt/labelator/pkg/grid"
	"github.com/mlandt/labelator/pkg/labels"
	"github.com/mlandt/labelator/pkg/render/sink"
	"github.com/mlandt/labelator/pkg/sheet"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path; extension selects the format
	order       string  // fill order for flat label lists: "row" or "col"
	sheetName   string  // sheet calibration name or TOML file path
	paramsPath  string  // TOML parameters file
	fontSize    float64 // font size override (px)
	fontFamily  string  // font family override
	fontWeight  string  // font weight override
	dxText      float64 // horizontal text offset (em)
	dyText      float64 // vertical text offset (em)
	lineHeight  float64 // line height multiplier (em)
	strokeWidth float64 // circle outline width (px)
	noCircles   bool    // hide circle outlines
	guides      bool    // draw calibration guides
	pngScale    float64 // raster supersampling factor
}

// newRenderCmd creates the render command for generating label sheets.
// The output format (SVG, PDF, or PNG) is selected by the output file
// extension.
//
// Default settings:
//   - output: input file name with a .pdf extension
//   - sheet: flexilabels-260 (A4, 20 rows of 13 circular stickers)
//   - order: row (flat lists fill left to right, top to bottom)
//   - png-scale: 2.0
func newRenderCmd() *cobra.Command {
	opts := renderOpts{pngScale: 2.0}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a labels file to a printable sheet",
		Long: `Render reads labels from a file and lays them out on a calibrated
sticker sheet. Plain text files hold one label per line (use a literal
\n for line breaks within a label). JSON files hold either an object
keyed by "row,col", a 2D array of rows, or a flat array filled in
--order. The output extension selects the format: .svg, .pdf, or .png.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file; extension selects svg, pdf, or png (default: input name with .pdf)")
	cmd.Flags().StringVar(&opts.order, "order", "", "fill order for flat label lists: row (default), col")
	cmd.Flags().StringVarP(&opts.sheetName, "sheet", "s", "", "sheet calibration name or TOML file (default: flexilabels-260)")
	cmd.Flags().StringVarP(&opts.paramsPath, "params", "p", "", "TOML file with layout parameters")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "font size in px (default: sheet calibration)")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", "", "font family (default: Helvetica)")
	cmd.Flags().StringVar(&opts.fontWeight, "font-weight", "", "font weight (default: normal)")
	cmd.Flags().Float64Var(&opts.dxText, "dx", 0, "horizontal text offset in em")
	cmd.Flags().Float64Var(&opts.dyText, "dy", 0, "vertical text offset in em")
	cmd.Flags().Float64Var(&opts.lineHeight, "line-height", 0, "line height multiplier in em")
	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke-width", 0, "circle outline width in px")
	cmd.Flags().BoolVar(&opts.noCircles, "no-circles", false, "hide circle outlines")
	cmd.Flags().BoolVar(&opts.guides, "guides", false, "draw calibration crosshairs")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "raster supersampling factor for PNG output")

	return cmd
}

// runRender loads the labels, resolves the sheet and parameters, and
// writes the rendered document.
func runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	order, err := grid.ParseOrder(opts.order)
	if err != nil {
		return err
	}

	src, count, err := readLabels(input, order)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d labels from %s", count, input)

	sh, err := resolveSheet(opts.sheetName)
	if err != nil {
		return err
	}

	params, err := buildParams(cmd, opts, sh)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}
	format, err := labels.DetectFormat(output)
	if err != nil {
		return err
	}

	writeOpts := []labels.Option{
		labels.WithSheet(sh),
		labels.WithParams(params),
		labels.WithPNGScale(opts.pngScale),
	}
	if opts.guides {
		writeOpts = append(writeOpts, labels.WithGuides())
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	err = labels.WriteFile(output, src, writeOpts...)
	if spinner.Cancelled() {
		spinner.Stop()
		return context.Canceled
	}
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Rendering failed: %v", err))
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s sheet", sh.Name)
	printFile(output)
	printStats(count, sh.Count(), false)
	prog.done(fmt.Sprintf("Rendered %d labels", count))
	return nil
}

// resolveSheet turns the --sheet flag value into a calibration. Values
// ending in .toml are loaded as files, anything else is looked up in the
// named registry. An empty value selects the default sheet.
func resolveSheet(value string) (sheet.Sheet, error) {
	if value == "" {
		return sheet.Default(), nil
	}
	if strings.EqualFold(filepath.Ext(value), ".toml") {
		return sheet.Load(value)
	}
	if sh, ok := sheet.Named(value); ok {
		return sh, nil
	}
	return sheet.Sheet{}, apperrors.New(apperrors.ErrCodeInvalidSheet,
		"unknown sheet %q (available: %s)", value, strings.Join(sheet.Names(), ", "))
}

// buildParams layers the parameter sources: defaults, then the params
// file, then explicit flags.
func buildParams(cmd *cobra.Command, opts *renderOpts, sh sheet.Sheet) (sink.Params, error) {
	params := sink.DefaultParams()
	params.FontSize = sh.FontSize

	if opts.paramsPath != "" {
		var err error
		params, err = loadParams(opts.paramsPath, params)
		if err != nil {
			return params, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("font-size") {
		params.FontSize = opts.fontSize
	}
	if flags.Changed("font-family") {
		params.FontFamily = opts.fontFamily
	}
	if flags.Changed("font-weight") {
		params.FontWeight = opts.fontWeight
	}
	if flags.Changed("dx") {
		params.DXText = opts.dxText
	}
	if flags.Changed("dy") {
		params.DYText = opts.dyText
	}
	if flags.Changed("line-height") {
		params.LineHeight = opts.lineHeight
	}
	if flags.Changed("stroke-width") {
		params.StrokeWidth = opts.strokeWidth
	}
	if opts.noCircles {
		params.HideCircles = true
	}

	if params.FontSize < 0 {
		return params, apperrors.New(apperrors.ErrCodeInvalidParam, "font size must not be negative, got %g", params.FontSize)
	}
	if params.LineHeight < 0 {
		return params, apperrors.New(apperrors.ErrCodeInvalidParam, "line height must not be negative, got %g", params.LineHeight)
	}
	return params, nil
}
