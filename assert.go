//go:build !vecdebug

package vec

// assert checks preconditions only in builds with the vecdebug tag.
func assert(bool, string, ...any) {}
