// Package wire implements the length-prefixed JSON framing protocol shared
// by the storage, lobby and match services.
//
// Every message on the wire is a four-byte big-endian unsigned length prefix
// followed by that many bytes of UTF-8 JSON. The maximum body size is 64
// KiB; a length outside (0, 65536] is a protocol violation and the
// connection must be closed by the caller.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

const (
	// HeaderSize is the length of the frame's length prefix, in bytes.
	HeaderSize = 4

	// MaxBodySize is the largest JSON body accepted on the wire.
	MaxBodySize = 65536
)

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 4096)
		return &b
	},
}

func getBuf(size int) []byte {
	p := bufPool.Get().(*[]byte)
	b := *p
	if cap(b) < size {
		return make([]byte, size)
	}
	return b[:size]
}

func putBuf(b []byte) {
	b = b[:0]
	bufPool.Put(&b)
}

// WriteMessage frames body and writes it to w.
func WriteMessage(w io.Writer, body []byte) error {
	if len(body) == 0 || len(body) > MaxBodySize {
		return fmt.Errorf("wire: body size %d outside (0, %d]", len(body), MaxBodySize)
	}

	buf := getBuf(HeaderSize + len(body))
	defer putBuf(buf)

	binary.BigEndian.PutUint32(buf[:HeaderSize], uint32(len(body)))
	copy(buf[HeaderSize:], body)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("wire: write frame: %w", err)
	}
	return nil
}

// ReadMessage reads one length-prefixed frame from r and returns its body.
// It returns an error for a length outside (0, MaxBodySize] without
// attempting to read a body the caller did not promise; the caller must
// close the connection on any returned error.
func ReadMessage(r io.Reader) ([]byte, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("wire: read header: %w", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length == 0 || length > MaxBodySize {
		return nil, fmt.Errorf("wire: invalid body length %d", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("wire: read body: %w", err)
	}
	return body, nil
}
