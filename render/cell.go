package render

import (
	"github.com/lixenwraith/circle-art/terminal"
)

// Cell and Attr alias the terminal types so buffers present without conversion
type Cell = terminal.Cell
type Attr = terminal.Attr
