package emit

import (
	"os"
	"path/filepath"

	"eadkc/build"
	"eadkc/common"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// OutputMode selects the form of the metadata output.
type OutputMode int

// Enumeration of output modes.
const (
	OutModeLLVM OutputMode = iota // Output the metadata as LLVM IR text (default).
	OutModeObj                    // Output the metadata as an object file compiled by llc.
)

// ParseOutputMode converts an output mode name into an output mode.
func ParseOutputMode(name string) (OutputMode, bool) {
	switch name {
	case "llvm", "":
		return OutModeLLVM, true
	case "obj":
		return OutModeObj, true
	default:
		return OutModeLLVM, false
	}
}

// WriteImage writes unit into outDir and returns the paths of the files it
// produced: the Go sources in the order of GoSources, then the metadata
// output.  llcPath is only used in OutModeObj.
func WriteImage(unit *build.ImageUnit, outDir string, mode OutputMode, llcPath string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	goFiles, err := GoSources(unit)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, gf := range goFiles {
		fpath := filepath.Join(outDir, gf.Name)
		if err := writeOutputFile(fpath, gf.Content); err != nil {
			return nil, err
		}

		paths = append(paths, fpath)
	}

	mod := MetadataModule(unit)

	var metaPath string
	switch mode {
	case OutModeObj:
		if llcPath == "" {
			llcPath = DefaultLLC
		}

		metaPath = filepath.Join(outDir, common.ObjOutputName)
		if err := CompileModule(llcPath, mod, metaPath); err != nil {
			return nil, err
		}
	default:
		metaPath = filepath.Join(outDir, common.IROutputName)
		if err := writeOutputFile(metaPath, []byte(mod.String())); err != nil {
			return nil, err
		}
	}

	log.Debug().Strs("go", paths).Str("meta", metaPath).Msg("wrote image")

	return append(paths, metaPath), nil
}

// writeOutputFile is used to quickly write an output file.
func writeOutputFile(fpath string, content []byte) error {
	if err := os.WriteFile(fpath, content, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write output to file `%s`", fpath)
	}

	return nil
}
