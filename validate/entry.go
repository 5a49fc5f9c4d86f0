package validate

import (
	"go/ast"
	"go/token"
	"strings"

	"eadkc/common"
	"eadkc/report"

	"github.com/hashicorp/go-multierror"
)

// SourceFile is a parsed Go source file of the application.
type SourceFile struct {
	// AbsPath is the absolute path to the file.
	AbsPath string

	// ReprPath is the path used to refer to the file in diagnostics and in
	// generated code.
	ReprPath string

	// AST is the parsed file.
	AST *ast.File
}

// Entry is a validated entry function and the file declaring it.
type Entry struct {
	File *SourceFile
	Decl *ast.FuncDecl
}

// FindEntry locates the entry function among files and validates its
// signature.  The entry function is the only function whose doc comment
// carries the entry directive.  All diagnostics found are returned together as
// a *multierror.Error of *report.LocalCompileError.
func FindEntry(fset *token.FileSet, files []*SourceFile) (*Entry, error) {
	var candidates []*Entry
	for _, file := range files {
		for _, decl := range file.AST.Decls {
			if fdecl, ok := decl.(*ast.FuncDecl); ok && hasEntryDirective(fdecl) {
				candidates = append(candidates, &Entry{File: file, Decl: fdecl})
			}
		}
	}

	if len(candidates) == 0 {
		lce := report.Raise(nil, "no entry function: mark a function with `%s`", common.EntryDirective)
		if len(files) > 0 {
			lce.InFile(files[0].AbsPath, files[0].ReprPath)
		}

		return nil, multierror.Append(nil, lce)
	}

	var errs *multierror.Error

	entry := candidates[0]
	for _, dup := range candidates[1:] {
		firstPos := fset.Position(entry.Decl.Pos())
		errs = multierror.Append(errs, report.Raise(
			signatureSpan(fset, dup.Decl),
			"multiple entry functions: `%s` is already marked at %s:%d",
			entry.Decl.Name.Name,
			entry.File.ReprPath,
			firstPos.Line,
		).InFile(dup.File.AbsPath, dup.File.ReprPath))
	}

	// the first entry is validated even if there are duplicates so that all
	// errors are reported at once
	if lce := VerifySignature(fset, entry.Decl); lce != nil {
		errs = multierror.Append(errs, lce.InFile(entry.File.AbsPath, entry.File.ReprPath))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return entry, nil
}

// hasEntryDirective returns whether the doc comment of decl contains the
// entry directive on a line of its own.
func hasEntryDirective(decl *ast.FuncDecl) bool {
	if decl.Doc == nil {
		return false
	}

	for _, c := range decl.Doc.List {
		if strings.TrimRight(c.Text, " \t") == common.EntryDirective {
			return true
		}
	}

	return false
}

// Diagnostics flattens an error returned by FindEntry into its compile errors.
// Errors that are not compile errors are returned in the second slice.
func Diagnostics(err error) ([]*report.LocalCompileError, []error) {
	var lces []*report.LocalCompileError
	var others []error

	var errs []error
	if merr, ok := err.(*multierror.Error); ok {
		errs = merr.Errors
	} else if err != nil {
		errs = []error{err}
	}

	for _, e := range errs {
		if lce, ok := e.(*report.LocalCompileError); ok {
			lces = append(lces, lce)
		} else {
			others = append(others, e)
		}
	}

	return lces, others
}
