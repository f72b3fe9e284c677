package encryption

import (
	"sync"
)

const chunkSize = 64 * 1024 // 64KiB read chunk, a multiple of BlockSize

// bufferPool provides reusable chunk buffers. The spare block of capacity lets the
// final chunk take its padding in place.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, chunkSize, chunkSize+BlockSize)
	},
}

func getBuffer() []byte {
	return bufferPool.Get().([]byte)[:chunkSize] //nolint:forcetypeassert
}

func putBuffer(buf []byte) {
	clear(buf[:cap(buf)])
	bufferPool.Put(buf[:chunkSize])
}
