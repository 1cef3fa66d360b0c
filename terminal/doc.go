// @focus: #sys { term }
// Package terminal defines the character-cell output contract used by the engine.
//
// Features:
//   - Cell with a glyph and a packed 4-bit foreground / 4-bit background attribute
//   - Fixed 16-entry console palette with named colors
//   - Surface interface: atomic full-buffer present anchored at the origin
//   - tcell-backed surface with palette or true color output
//   - Raw ANSI surface that redraws only changed cells on any io.Writer
//   - Clean terminal restoration on exit/panic
//
// The engine never touches process-wide display state directly; window title,
// screen buffers and color output all go through a Surface.
package terminal
