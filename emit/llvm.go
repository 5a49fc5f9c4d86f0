package emit

import (
	"encoding/binary"

	"eadkc/build"
	"eadkc/common"
	"eadkc/layout"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// MetadataModule generates the LLVM module holding the metadata blocks of the
// image.  Each block is a constant global in its link section.  All of them
// are listed in `@llvm.used` so the linker keeps them even though nothing in
// the application references them.
func MetadataModule(unit *build.ImageUnit) *ir.Module {
	mod := ir.NewModule()
	mod.SourceFilename = unit.Entry.File.ReprPath
	mod.DataLayout = common.TargetDataLayout
	mod.TargetTriple = common.TargetTriple

	var used []constant.Constant
	for _, b := range unit.Layout.Blocks() {
		glob := mod.NewGlobalDef(b.Symbol, blockInit(b))
		glob.Immutable = true
		glob.Section = b.Section
		glob.Align = blockAlign(b)

		used = append(used, constant.NewBitCast(glob, types.I8Ptr))
	}

	usedGlob := mod.NewGlobalDef("llvm.used", constant.NewArray(types.NewArray(uint64(len(used)), types.I8Ptr), used...))
	usedGlob.Linkage = enum.LinkageAppending
	usedGlob.Section = "llvm.metadata"

	return mod
}

// blockInit returns the initializer of a block's global.  The API level is an
// `i32` so the loader can read it as a word; everything else is a byte array.
func blockInit(b *layout.MetadataBlock) constant.Constant {
	if b.Kind == layout.KindAPILevel {
		return constant.NewInt(types.I32, int64(binary.LittleEndian.Uint32(b.Bytes)))
	}

	return constant.NewCharArray(b.Bytes)
}

func blockAlign(b *layout.MetadataBlock) ir.Align {
	if b.Kind == layout.KindAPILevel {
		return ir.Align(4)
	}

	return ir.Align(1)
}
