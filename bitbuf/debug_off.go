//go:build !bitbufdebug

package bitbuf

// debugChecks is false in regular builds; unchecked paths trust the caller.
const debugChecks = false
