// Package emit writes an assembled application image to disk: the Go sources
// of the application with the entry function normalized, the generated
// handler file, and the metadata module placing each metadata block in its
// link section.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"eadkc/build"
	"eadkc/common"
	"eadkc/validate"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ast/astutil"
)

// GeneratedFile is a Go source file of the output package.
type GeneratedFile struct {
	// Name is the file name within the output directory.
	Name string

	// Content is the formatted source.
	Content []byte
}

// GoSources generates the Go sources of the image: every application source,
// the entry file carrying the normalized entry function, followed by the
// handler file.  Together they form one package that replaces the original
// sources.  Sources from sub directories are flattened into the output
// directory.
func GoSources(unit *build.ImageUnit) ([]*GeneratedFile, error) {
	var files []*GeneratedFile
	seen := map[string]string{common.GoOutputName: "generated handler"}

	for _, src := range unit.Sources {
		name := OutputName(src.ReprPath)
		if prev, ok := seen[name]; ok {
			return nil, errors.Errorf("`%s` and %s both map to `%s` in the output", src.ReprPath, prev, name)
		}
		seen[name] = fmt.Sprintf("`%s`", src.ReprPath)

		content, err := appSource(unit.Fset, src)
		if err != nil {
			return nil, err
		}

		files = append(files, &GeneratedFile{Name: name, Content: content})
	}

	content, err := HandlerSource(unit)
	if err != nil {
		return nil, err
	}

	return append(files, &GeneratedFile{Name: common.GoOutputName, Content: content}), nil
}

// OutputName returns the name of the output file of the source at reprPath.
func OutputName(reprPath string) string {
	return strings.ReplaceAll(filepath.ToSlash(reprPath), "/", "_")
}

// appSource prints an application source as it is after validation.
func appSource(fset *token.FileSet, src *validate.SourceFile) ([]byte, error) {
	buff := &bytes.Buffer{}
	fmt.Fprintf(buff, "// Code generated by eadkc from %s. DO NOT EDIT.\n\n", src.ReprPath)
	if err := format.Node(buff, fset, src.AST); err != nil {
		return nil, errors.Wrapf(err, "printing `%s`", src.ReprPath)
	}

	out, err := format.Source(buff.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "formatting `%s`", src.ReprPath)
	}

	return out, nil
}

// HandlerSource generates the handler file: the handler, the exported entry
// wrapper and the imports they need, in the package of the entry function.
func HandlerSource(unit *build.ImageUnit) ([]byte, error) {
	pkg := unit.Entry.File.AST.Name.Name

	src := append([]byte("package "+pkg+"\n\n"), unit.Handler.Source...)
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, common.GoOutputName, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrap(err, "parsing generated handler")
	}

	names := make([]string, 0, len(unit.Handler.Imports))
	for name := range unit.Handler.Imports {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ipath := unit.Handler.Imports[name]
		if path.Base(ipath) == name {
			astutil.AddImport(fset, file, ipath)
		} else {
			astutil.AddNamedImport(fset, file, name, ipath)
		}
	}

	buff := &bytes.Buffer{}
	buff.WriteString("// Code generated by eadkc. DO NOT EDIT.\n\n")
	if err := format.Node(buff, fset, file); err != nil {
		return nil, errors.Wrap(err, "printing generated handler")
	}

	out, err := format.Source(buff.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "formatting generated handler")
	}

	return out, nil
}
