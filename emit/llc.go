package emit

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/pkg/errors"
)

// DefaultLLC is the name of the LLVM static compiler looked up on the PATH.
const DefaultLLC = "llc"

// CompileModule takes an LLVM module and an output path and attempts to
// compile it to an object file using LLC.  The textual module is written next
// to the object file first.  It returns an error if it fails.
func CompileModule(llcPath string, mod *ir.Module, objFilePath string) error {
	// write LLVM module to text file
	modFilePath := strings.TrimSuffix(objFilePath, ".o") + ".ll"
	if err := writeOutputFile(modFilePath, []byte(mod.String())); err != nil {
		return err
	}

	// compile LLVM module using LLC
	llc := exec.Command(llcPath, "-filetype", "obj", "-o", objFilePath, modFilePath)
	stderrBuff := bytes.Buffer{}
	llc.Stderr = &stderrBuff

	if err := llc.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return errors.Errorf("llc failed on `%s`:\n%s", modFilePath, stderrBuff.String())
		}

		return errors.Wrapf(err, "failed to run llc (`%s`)", llcPath)
	}

	// the object file supersedes the textual module
	if err := os.Remove(modFilePath); err != nil {
		return errors.Wrapf(err, "failed to remove `%s`", modFilePath)
	}

	return nil
}
