package tmpl

import (
	"fmt"
	"path"
	"strings"
)

// RelativeModulePath returns the output path of the module named target
// relative to the output path of the module enclosing from, as an import
// specifier: "./x.js" for the same directory, "../lib/x.js" above it.
//
// The target is looked up among the modules of the ModuleSet enclosing
// from's module, so the result does not depend on how deep from is. Both
// output paths must be absolute, or both relative.
func RelativeModulePath(from *Node, target string) (string, error) {
	m := EnclosingModule(from)
	if m == nil {
		return "", ErrNoEnclosingModule
	}
	set := NearestOfKind(m, ModuleSet)
	if set == nil {
		return "", fmt.Errorf("%w: %s", ErrNoModuleSet, AttrOf[string](m, "name"))
	}
	to := FindModule(set, target)
	if to == nil {
		return "", fmt.Errorf("%w: %s", ErrModuleNotFound, target)
	}
	src, dst := AttrOf[string](m, "path"), AttrOf[string](to, "path")
	if path.IsAbs(src) != path.IsAbs(dst) {
		return "", fmt.Errorf("%w: %q and %q", ErrMixedPaths, src, dst)
	}
	return relativePath(src, dst), nil
}

// FindModule returns the module of set with the given name, or nil.
func FindModule(set *Node, name string) *Node {
	for _, m := range set.slots[info(set.kind).slot("FindModule", "modules")] {
		if AttrOf[string](m, "name") == name {
			return m
		}
	}
	return nil
}

// relativePath returns to relative to the directory of from. Both are
// absolute or both are relative.
func relativePath(from, to string) string {
	dir := segments(path.Dir(path.Clean(from)))
	dst := segments(path.Clean(to))
	i := 0
	for i < len(dir) && i < len(dst)-1 && dir[i] == dst[i] {
		i++
	}
	var parts []string
	for range dir[i:] {
		parts = append(parts, "..")
	}
	if len(parts) == 0 {
		parts = append(parts, ".")
	}
	parts = append(parts, dst[i:]...)
	return strings.Join(parts, "/")
}

func segments(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "." || p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
