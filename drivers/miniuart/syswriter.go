//go:build noos

package miniuart

import _ "unsafe" // for go:linkname

// DefaultWrite implements a failsafe method to write to the development
// console. It's rather slow because it busy waits on the FIFO, but it can
// be used at any point at runtime, which makes print() and panics visible
// when nothing else is. Output is dropped until [Setup] has run.
//
//go:nowritebarrierrec
//go:nosplit
//go:linkname DefaultWrite runtime.defaultWrite
func DefaultWrite(fd int, p []byte) int {
	if aux.enables.Load()&1 == 0 {
		return len(p)
	}
	for _, c := range p {
		putByte(c)
	}
	return len(p)
}

type defaultWriter int

// DefaultWriter provides [DefaultWrite] as an [io.Writer].
const DefaultWriter defaultWriter = 0

func (w defaultWriter) Write(p []byte) (n int, err error) {
	return DefaultWrite(int(w), p), nil
}
