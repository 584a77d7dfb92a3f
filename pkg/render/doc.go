// Package render turns computed layouts into output documents.
//
// # Overview
//
// The rendering pipeline is: [layout.Layout] -> draw calls on a
// [canvas.Canvas] -> encoded document. The [sink] subpackage performs
// the draw pass and exposes one renderer per output format:
//
//	svg := sink.RenderSVG(l, sink.WithParams(p))
//	pdf, err := sink.RenderPDF(l, sink.WithParams(p))
//	png, err := sink.RenderPNG(l, sink.WithParams(p), sink.WithScale(2.0))
//
// # Format Conversion
//
// SVG is the native format and is written directly. PDF is derived from
// the SVG using the external rsvg-convert tool (from librsvg) via
// [ToPDF]. PNG is rasterized in-process through the [canvas.Raster]
// backend, so it needs no external tool but does need a resolvable
// system font.
//
// [sink]: github.com/mlandt/labelator/pkg/render/sink
// [canvas.Canvas]: github.com/mlandt/labelator/pkg/render/canvas
package render
