// Package compileinfo reports the build provenance of the running binary, so
// that result files can be traced back to the code that produced them.
package compileinfo

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

type CompileInfo struct {
	Binary    string
	Module    string
	Version   string
	GoVersion string
	Revision  string
	Time      string
	Modified  bool
}

func (c CompileInfo) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "%s (module %s %s) built with %s", c.Binary, c.Module, c.Version, c.GoVersion)
	if c.Revision != "" {
		fmt.Fprintf(&b, " at commit %s from %s", c.Revision, c.Time)
	}
	if c.Modified {
		b.WriteString(", with uncommitted changes")
	}

	return b.String()
}

// Get reads the build information embedded by the Go toolchain. Fields stay
// empty when it is unavailable.
func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		Binary:    z.Path,
		Module:    z.Main.Path,
		Version:   z.Main.Version,
		GoVersion: z.GoVersion,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.Time = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the build provenance of the running binary as one line.
func Fprint(w io.Writer) {
	fmt.Fprintln(w, Get())
}
