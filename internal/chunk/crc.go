package chunk

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// VerifyCRC reads the chunk's type and payload, computes the IEEE CRC-32
// over both, reads the trailing 4-byte CRC, and reports whether they match.
// The loader does not call this function, whether or not
// Loader.VerifyCRC is enabled.
func VerifyCRC(chunkType [4]byte, payload []byte, r io.Reader) (bool, error) {
	var trailer [4]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return false, pkgerrors.Wrap(err, "chunk: read CRC trailer")
	}
	want := binary.BigEndian.Uint32(trailer[:])

	crc := crc32.NewIEEE()
	crc.Write(chunkType[:])
	crc.Write(payload)
	got := crc.Sum32()

	return got == want, nil
}
