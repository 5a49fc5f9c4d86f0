package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Icon is the compiled icon artifact.  Its contents are opaque.
type Icon struct {
	// Path is the path the artifact was read from.
	Path string

	// Size is the size of the artifact in bytes at build time.
	Size int64

	// Data is the raw contents of the artifact.
	Data []byte
}

// ResolveIcon probes the compiled icon artifact at path and reads it.
func ResolveIcon(path string) (*Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: IconMissing, Path: path, Err: err}
	}
	defer f.Close()

	finfo, err := f.Stat()
	if err != nil {
		return nil, &Error{Kind: IconMissing, Path: path, Err: err}
	}

	if finfo.IsDir() {
		return nil, &Error{Kind: IconMissing, Path: path, Err: errors.New("icon artifact is a directory")}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &Error{Kind: IconMissing, Path: path, Err: err}
	}

	// the artifact must not change size while it is being read: the recorded
	// length and the embedded bytes have to agree
	if int64(len(data)) != finfo.Size() {
		return nil, &Error{
			Kind: IconMissing,
			Path: path,
			Err:  errors.Errorf("icon artifact changed while reading: expected %d bytes, read %d", finfo.Size(), len(data)),
		}
	}

	log.Debug().Str("path", path).Int64("size", finfo.Size()).Msg("resolved icon artifact")

	return &Icon{Path: path, Size: finfo.Size(), Data: data}, nil
}

// StaleIcon returns whether the icon source named by the config is newer than
// the compiled icon artifact.  A missing source is not considered stale.
func StaleIcon(cfg *BuildConfig, icon *Icon) bool {
	srcInfo, err := os.Stat(cfg.Resolve(cfg.Icon))
	if err != nil {
		return false
	}

	artInfo, err := os.Stat(icon.Path)
	if err != nil {
		return false
	}

	return srcInfo.ModTime().After(artInfo.ModTime())
}
