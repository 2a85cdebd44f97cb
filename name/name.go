// Package name holds the naming values produced by name resolution. The IR
// carries them without interpreting them beyond their text.
package name

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolved identifies a declaration after name resolution. Two Resolved
// values name the same declaration iff they are equal.
type Resolved struct {
	Base string
	UID  int
}

func (r Resolved) IsZero() bool { return r == Resolved{} }

// String returns Base for names without a UID, otherwise Base__UID.
func (r Resolved) String() string {
	if r.UID == 0 {
		return r.Base
	}
	return fmt.Sprintf("%s__%d", r.Base, r.UID)
}

// Parse is the inverse of String.
func Parse(s string) Resolved {
	i := strings.LastIndex(s, "__")
	if i <= 0 {
		return Resolved{Base: s}
	}
	uid, err := strconv.Atoi(s[i+2:])
	if err != nil || uid <= 0 {
		return Resolved{Base: s}
	}
	return Resolved{Base: s[:i], UID: uid}
}

// Target is a name as it will be spelled in the translated program.
type Target string

// Spell returns the target spelling if there is one, else the resolved
// name.
func Spell(r Resolved, t Target) string {
	if t != "" {
		return string(t)
	}
	return r.String()
}
