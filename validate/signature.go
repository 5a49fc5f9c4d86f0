// Package validate checks the shape of the application entry function.
package validate

import (
	"go/ast"
	"go/token"

	"eadkc/report"
)

// VerifySignature checks that decl is a valid entry function: it must take
// exactly one parameter of type `[]byte`.  A method receiver counts as a
// parameter.  The result list is not constrained.  On success, the parameter
// list of decl is cleared: the loader calls the entry with no declared
// parameters.  On failure, decl is left untouched and the returned error spans
// the function signature.
func VerifySignature(fset *token.FileSet, decl *ast.FuncDecl) *report.LocalCompileError {
	span := signatureSpan(fset, decl)

	if n := paramCount(decl); n != 1 {
		return report.Raise(span, "expected only 1 argument to main function, found %d", n)
	}

	// the only "parameter" is the receiver or the function is generic: these
	// are not typed arguments the loader can supply
	if decl.Recv != nil || decl.Type.TypeParams != nil {
		return report.Raise(span, "invalid main function signature")
	}

	param := decl.Type.Params.List[0]
	if _, ok := param.Type.(*ast.Ellipsis); ok {
		return report.Raise(span, "invalid main function signature")
	}

	if !isByteSlice(param.Type) {
		return report.Raise(span, "invalid function signature, expected argument of type []byte")
	}

	decl.Type.Params.List = nil
	return nil
}

// paramCount counts the parameters of decl including its receiver.  Each name
// in a grouped field is a separate parameter.
func paramCount(decl *ast.FuncDecl) int {
	return decl.Recv.NumFields() + decl.Type.Params.NumFields()
}

// byteElemNames are the spellings of the slice element type that are accepted.
var byteElemNames = map[string]struct{}{
	"byte":  {},
	"uint8": {},
}

// isByteSlice returns whether expr is a slice of bytes.  The element type is
// matched only on its final name so `[]byte`, `[]uint8` and `[]pkg.byte` are
// all accepted.  An unrelated type named `byte` or `uint8` in another package
// also matches.
func isByteSlice(expr ast.Expr) bool {
	for {
		paren, ok := expr.(*ast.ParenExpr)
		if !ok {
			break
		}

		expr = paren.X
	}

	arr, ok := expr.(*ast.ArrayType)
	if !ok || arr.Len != nil {
		return false
	}

	var name string
	switch elem := arr.Elt.(type) {
	case *ast.Ident:
		name = elem.Name
	case *ast.SelectorExpr:
		name = elem.Sel.Name
	default:
		return false
	}

	_, ok = byteElemNames[name]
	return ok
}

// signatureSpan returns the span of the signature of decl: from the `func`
// keyword to the end of the result list.
func signatureSpan(fset *token.FileSet, decl *ast.FuncDecl) *report.TextSpan {
	return report.SpanFromPositions(fset.Position(decl.Type.Pos()), fset.Position(decl.Type.End()))
}
