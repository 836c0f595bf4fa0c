//go:build !dev
// +build !dev

package lncfg

// ExperimentalRouting is a sub-config that houses experimental path finding
// behavior that also requires a build-tag to activate. Outside of the dev
// build, no experimental routing behavior is available.
type ExperimentalRouting struct {
}

// RandomizeOrder reports whether the route composer should randomize its
// rotation order rather than use the default deterministic one. Outside of
// the dev build this is always false.
func (e ExperimentalRouting) RandomizeOrder() bool {
	return false
}
