//go:build bitbufdebug

package bitbuf

// debugChecks enables assertions in the unchecked fast paths. Build with
// -tags bitbufdebug while developing code that calls them.
const debugChecks = true
