package bitbuf

func debugAssert(cond bool, msg string) {
	if debugChecks && !cond {
		panic("bitbuf: assertion failed: " + msg)
	}
}
