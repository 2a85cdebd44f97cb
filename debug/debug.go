package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Connect bool
	Select  bool
	Render  bool
	Decode  bool
	Query   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Connect = boolEnv("OUTTREE_DEBUG_CONNECT")
	d.Select = boolEnv("OUTTREE_DEBUG_SELECT")
	d.Render = boolEnv("OUTTREE_DEBUG_RENDER")
	d.Decode = boolEnv("OUTTREE_DEBUG_DECODE")
	d.Query = boolEnv("OUTTREE_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Connect reports whether child slot mutations are logged.
func Connect() bool {
	return d.Connect
}

// Select reports whether template selection is logged.
func Select() bool {
	return d.Select
}
func Render() bool {
	return d.Render
}
func Decode() bool {
	return d.Decode
}
func Query() bool {
	return d.Query
}
