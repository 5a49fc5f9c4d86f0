// Package build assembles application images: it runs the entry validator,
// the configuration resolver, the layout builder and the handler generator in
// order and collects their outputs into an ImageUnit.
package build

import (
	"go/token"

	"eadkc/config"
	"eadkc/handler"
	"eadkc/layout"
	"eadkc/validate"
)

// ImageUnit is the assembled application image.  It is the terminal artifact
// of a transform: emitters read it but nothing modifies it.
type ImageUnit struct {
	// Layout holds the metadata blocks, each bound to its link section.
	Layout *layout.Layout

	// Handler is the selected fatal handler and the entry wrapper.
	Handler *handler.Handler

	// Entry is the validated entry function.  Its parameter list is empty.
	Entry *validate.Entry

	// Sources are all the application sources in the order they were loaded.
	// The entry file is one of them.
	Sources []*validate.SourceFile

	// Config and Icon are the resolved build configuration.
	Config *config.BuildConfig
	Icon   *config.Icon

	// Fset is the file set the sources were parsed into.
	Fset *token.FileSet
}
