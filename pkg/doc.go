// Package pkg provides the core libraries for labelator sheet rendering.
//
// # Overview
//
// Labelator turns lists of text labels into printable sheets of circular
// stickers. The pkg directory is organized along the render pipeline:
//
//  1. [sheet] - Calibration parameters for label-paper products
//  2. [grid] - Input shapes normalized onto a row/column grid
//  3. [layout] - Circle centers and line placement on the page
//  4. [render] - Canvas backends and format conversion
//  5. [labels] - The high-level facade tying the pipeline together
//
// # Architecture
//
// The typical data flow:
//
//	labels file / HTTP form
//	         ↓
//	grid.Source ──normalize──→ grid.Grid
//	         ↓
//	layout.Build (sheet calibration)
//	         ↓
//	render/sink ──→ SVG ──→ PDF (rsvg-convert)
//	              └─→ PNG (in-process raster)
//
// The [cache], [errors], and [buildinfo] packages provide supporting
// infrastructure shared by the CLI and the preview server.
package pkg
