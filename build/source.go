package build

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"eadkc/common"
	"eadkc/handler"
	"eadkc/report"
	"eadkc/validate"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultSourcePattern selects the application sources within the source
// directory.
const DefaultSourcePattern = "*.go"

// LoadSources parses the Go files of dir matching pattern.  Test files and
// previously generated output are skipped.  Syntax errors are returned as a
// *multierror.Error of *report.LocalCompileError.
func LoadSources(fset *token.FileSet, dir, pattern string) ([]*validate.SourceFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "error calculating absolute path of `%s`", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(absDir), pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid source pattern `%s`", pattern)
	}
	sort.Strings(matches)

	var files []*validate.SourceFile
	var errs *multierror.Error
	for _, match := range matches {
		if !isSourceFile(match) {
			continue
		}

		absPath := filepath.Join(absDir, filepath.FromSlash(match))
		file, err := parser.ParseFile(fset, absPath, nil, parser.ParseComments)
		if err != nil {
			errs = multierror.Append(errs, syntaxErrors(err, absPath, match)...)
			continue
		}

		log.Debug().Str("path", match).Msg("parsed source file")
		files = append(files, &validate.SourceFile{AbsPath: absPath, ReprPath: match, AST: file})
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, multierror.Append(nil, report.Raise(nil, "no Go source files match `%s`", pattern).InFile(absDir, dir))
	}

	return files, nil
}

// isSourceFile returns whether a matched path is an application source.
func isSourceFile(match string) bool {
	base := filepath.Base(match)
	return strings.HasSuffix(base, ".go") &&
		!strings.HasSuffix(base, "_test.go") &&
		base != common.GoOutputName
}

// syntaxErrors converts a parser error into compile errors.
func syntaxErrors(err error, absPath, reprPath string) []error {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		return []error{err}
	}

	errs := make([]error, len(list))
	for i, serr := range list {
		end := serr.Pos
		end.Column++
		errs[i] = report.Raise(report.SpanFromPositions(serr.Pos, end), "%s", serr.Msg).InFile(absPath, reprPath)
	}

	return errs
}

// checkPackage reports sources that do not belong to the same package as the
// first source.  The output is compiled as a single package.
func checkPackage(fset *token.FileSet, files []*validate.SourceFile) error {
	var errs *multierror.Error

	want := files[0].AST.Name.Name
	for _, file := range files[1:] {
		if name := file.AST.Name; name.Name != want {
			errs = multierror.Append(errs, report.Raise(
				report.SpanFromPositions(fset.Position(name.Pos()), fset.Position(name.End())),
				"source file belongs to package `%s`, expected `%s`", name.Name, want,
			).InFile(file.AbsPath, file.ReprPath))
		}
	}

	return errs.ErrorOrNil()
}

// checkReservedNames reports top-level declarations that would collide with
// the generated code.
func checkReservedNames(fset *token.FileSet, files []*validate.SourceFile) error {
	var errs *multierror.Error

	raise := func(file *validate.SourceFile, ident *ast.Ident) {
		for _, name := range handler.ReservedNames() {
			if ident.Name == name {
				pos := fset.Position(ident.Pos())
				errs = multierror.Append(errs, report.Raise(
					report.SpanFromPositions(pos, fset.Position(ident.End())),
					"`%s` is reserved for generated code", name,
				).InFile(file.AbsPath, file.ReprPath))
			}
		}
	}

	for _, file := range files {
		for _, decl := range file.AST.Decls {
			switch v := decl.(type) {
			case *ast.FuncDecl:
				if v.Recv == nil {
					raise(file, v.Name)
				}
			case *ast.GenDecl:
				for _, spec := range v.Specs {
					switch s := spec.(type) {
					case *ast.ValueSpec:
						for _, name := range s.Names {
							raise(file, name)
						}
					case *ast.TypeSpec:
						raise(file, s.Name)
					}
				}
			}
		}
	}

	return errs.ErrorOrNil()
}
