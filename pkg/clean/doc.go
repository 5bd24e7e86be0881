/*
Package clean implements the per-file-type cleaning engine of webclean.

	               +-----------+
	               |  Options  |
	               | (per run) |
	               +-----+-----+
	                     |
	    +----------------+----------------+
	    |                |                |
	+---+----+     +-----+------+    +----+---+
	| Markup |     | Stylesheet |    | Script |
	+---+----+     +-----+------+    +----+---+
	    |                |                |
	    +----------------+----------------+
	                     |
	               +-----+-----+
	               | Watermark |
	               +-----------+

🎯 Purpose:
- Turns the raw text of one .html, .css or .js file into cleaned text
- Applies an ordered list of text passes chosen by Options
- Prepends the Watermark banner to every output

🔄 Flow:
1. Registry.Lookup picks the Pipeline for a path by extension
2. Pipeline.Clean runs its passes over the content
3. Prepend adds the banner

⚡ Behavior worth knowing:
- Comment stripping for scripts and stylesheets is regex based (PatternStripper).
  It does not understand string or regex literals and will remove comment-like
  text inside them.
- Scripts and stylesheets always drop blank lines. Markup only does so when
  RemoveEmptyLines is set.
- OptimizeStyle is accepted and ignored. Unused-selector pruning is not implemented.
- Markup is always re-serialized in an indented layout, whatever the flags say.

🔍 Example:

	reg := clean.DefaultRegistry()
	p, ok := reg.Lookup("site/index.html")
	if !ok {
		return nil // not ours
	}
	out, err := p.Clean(ctx, content, clean.DefaultOptions())
*/
package clean
