// Package debug provides env-gated debug logging for the update
// engine. Set DOCMOD_DEBUG_<AREA>=1 to enable an area.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Resolve  bool
	Modifier bool
	Driver   bool
	Oplog    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("DOCMOD_DEBUG_RESOLVE")
	d.Modifier = boolEnv("DOCMOD_DEBUG_MODIFIER")
	d.Driver = boolEnv("DOCMOD_DEBUG_DRIVER")
	d.Oplog = boolEnv("DOCMOD_DEBUG_OPLOG")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Modifier() bool {
	return d.Modifier
}
func Driver() bool {
	return d.Driver
}
func Oplog() bool {
	return d.Oplog
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
