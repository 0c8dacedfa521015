package probe

import (
	"fmt"

	"github.com/mutagen-io/fsprobe/pkg/sysraw"
)

// RenameReport is the observed outcome of a direct rename system call.
type RenameReport struct {
	sysraw.Result
}

// String implements fmt.Stringer.String, rendering the report in the
// "ret=<int> errno=<int> errstr=<string>" format.
func (r RenameReport) String() string {
	return fmt.Sprintf("ret=%d errno=%d errstr=%s", r.Return, int(r.Errno), sysraw.Describe(r.Errno))
}

// Rename invokes the rename system call directly with the specified paths and
// reports the raw outcome. It makes no assertions: failure is a result to be
// reported, not an error.
func Rename(source, target string) RenameReport {
	return RenameReport{sysraw.Rename(source, target)}
}
