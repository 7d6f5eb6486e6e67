// compileinfoprint is imported for the side effect of printing the build
// provenance of the binary to os.Stderr
package compileinfoprint

import (
	"os"

	"github.com/carbocation/popcapacity/compileinfo"
)

func init() {
	compileinfo.Fprint(os.Stderr)
}
