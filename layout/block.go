package layout

import (
	"fmt"

	"github.com/c2h5oh/datasize"
)

// BlockKind identifies a metadata block.
type BlockKind int

// Enumeration of block kinds in the order they are emitted.
const (
	KindAppName BlockKind = iota
	KindAPILevel
	KindAppIcon
)

func (k BlockKind) String() string {
	switch k {
	case KindAppName:
		return "app name"
	case KindAPILevel:
		return "api level"
	case KindAppIcon:
		return "app icon"
	default:
		return "unknown"
	}
}

// MetadataBlock is a fixed-layout byte region placed in a link section.
type MetadataBlock struct {
	Kind BlockKind

	// Section is the name of the link section the block is placed in.
	Section string

	// Symbol is the name of the global holding the block.
	Symbol string

	// Length is the size of the block in bytes.  It always equals len(Bytes).
	Length int

	// Bytes is the exact content of the block.
	Bytes []byte
}

func newBlock(kind BlockKind, section, symbol string, data []byte) *MetadataBlock {
	return &MetadataBlock{
		Kind:    kind,
		Section: section,
		Symbol:  symbol,
		Length:  len(data),
		Bytes:   data,
	}
}

func (b *MetadataBlock) String() string {
	return fmt.Sprintf("%s (%s in %s, %s)", b.Kind, b.Symbol, b.Section, datasize.ByteSize(b.Length).HumanReadable())
}
