// Package render turns lattices into pictures.
//
// The [nodelink] subpackage writes Graphviz DOT and renders it to SVG in
// process. [ToPDF] and [ToPNG] convert that SVG further with the external
// rsvg-convert tool (from librsvg):
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// Formats lists the output formats the renderers know about.
package render

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Formats is every supported output format.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG, FormatPDF}
