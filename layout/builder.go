package layout

import (
	"encoding/binary"

	"eadkc/common"
	"eadkc/config"

	"github.com/rs/zerolog/log"
)

// Layout is the complete set of metadata blocks of an application image.
type Layout struct {
	AppName  *MetadataBlock
	APILevel *MetadataBlock
	AppIcon  *MetadataBlock
}

// Blocks returns the blocks of the layout in emission order.
func (l *Layout) Blocks() []*MetadataBlock {
	return []*MetadataBlock{l.AppName, l.APILevel, l.AppIcon}
}

// Build computes the metadata layout for cfg and the resolved icon.
func Build(cfg *config.BuildConfig, icon *config.Icon) *Layout {
	l := &Layout{
		AppName:  newBlock(KindAppName, common.AppNameSection, common.AppNameSymbol, NameBytes(cfg.Name)),
		APILevel: newBlock(KindAPILevel, common.APILevelSection, common.APILevelSymbol, APILevelBytes(cfg.APILevel)),
		AppIcon:  newBlock(KindAppIcon, common.AppIconSection, common.AppIconSymbol, iconBytes(icon)),
	}

	for _, b := range l.Blocks() {
		log.Debug().
			Str("section", b.Section).
			Str("symbol", b.Symbol).
			Int("length", b.Length).
			Msg("built metadata block")
	}

	return l
}

// NameBytes returns the zero-terminated UTF-8 encoding of name.  The
// terminator is present even if name is empty.
func NameBytes(name string) []byte {
	data := make([]byte, len(name)+1)
	copy(data, name)
	return data
}

// APILevelBytes returns the target encoding of the API level.
func APILevelBytes(level uint32) []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, level)
	return data
}

// iconBytes returns a copy of the icon contents so the block never aliases
// the resolver's buffer.
func iconBytes(icon *config.Icon) []byte {
	data := make([]byte, len(icon.Data))
	copy(data, icon.Data)
	return data
}
