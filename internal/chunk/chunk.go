// Package chunk implements the PNG signature and chunk-header scanning
// shared by the metadata parser and the image loader's container scanner.
// Reads tolerate a short underlying reader: on a partial read the scanner
// seeks back to its starting position and reports ErrNeedMoreData so the
// caller can retry once more bytes have arrived, matching the "re-enter
// the same state" contract the loader's state machine relies on.
package chunk

import (
	"encoding/binary"
	"errors"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// ErrNeedMoreData signals a short read at a chunk or signature boundary.
// It is never returned to the caller of the root package; the loader
// translates it into its own "continue, need more bytes" result.
var ErrNeedMoreData = errors.New("chunk: need more data")

// Signature is the fixed 8-byte PNG file signature.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Header is a chunk's 4-byte big-endian length and 4-byte type code.
type Header struct {
	Length uint32
	Type   [4]byte
}

func (h Header) TypeString() string { return string(h.Type[:]) }

// readFull reads exactly len(buf) bytes, seeking back to the reader's
// position on entry and returning ErrNeedMoreData if the underlying reader
// is short. io.EOF and io.ErrUnexpectedEOF are both treated as "need more
// data"; any other error is wrapped with a stack trace via pkg/errors, the
// one third-party dependency this module wires at its I/O boundary.
func readFull(r io.ReadSeeker, buf []byte) error {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return pkgerrors.Wrap(err, "chunk: seek current position")
	}
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if _, seekErr := r.Seek(start, io.SeekStart); seekErr != nil {
				return pkgerrors.Wrap(seekErr, "chunk: seek back after short read")
			}
			return ErrNeedMoreData
		}
		_ = n
		return pkgerrors.Wrap(err, "chunk: read")
	}
	return nil
}

// ReadExact reads exactly len(buf) bytes, seeking back to the reader's
// entry position and reporting ErrNeedMoreData on a short read, so the
// caller can retry the identical field once more bytes have arrived. This
// is the payload-sized sibling of ReadSignature/ReadHeader, exported for
// the loader's own fixed-and-variable-length field reads (IHDR, PLTE,
// tRNS payloads).
func ReadExact(r io.ReadSeeker, buf []byte) error { return readFull(r, buf) }

// ReadAvailable performs a single best-effort Read into buf, returning
// however many bytes were actually available (possibly 0, possibly less
// than len(buf)). Unlike readFull this never seeks back and never returns
// ErrNeedMoreData: it is used to drain whatever of a chunk's payload the
// caller's reader currently has buffered into the loader's compressed-data
// ring, where partial delivery is the normal case rather than a retry
// condition. An io.EOF from the underlying reader is treated as "nothing
// more available right now," not an error, since callers re-invoke the
// loader with a longer-prefixed reader as more bytes arrive.
func ReadAvailable(r io.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if err != nil && errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}

// ReadSignature consumes and validates the 8-byte PNG signature.
func ReadSignature(r io.ReadSeeker) error {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return err
	}
	if buf != Signature {
		return errBadSignature
	}
	return nil
}

var errBadSignature = errors.New("chunk: bad PNG signature")

// ErrBadSignature reports whether err is the bad-signature sentinel.
func ErrBadSignature(err error) bool { return errors.Is(err, errBadSignature) }

// ReadHeader reads one chunk's length + type fields (8 bytes). The CRC
// trailer and payload are the caller's responsibility to skip or consume.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return Header{}, err
	}
	var h Header
	h.Length = binary.BigEndian.Uint32(buf[0:4])
	copy(h.Type[:], buf[4:8])
	return h, nil
}

// SkipPayloadAndCRC advances past a chunk's payload and trailing CRC, given
// the chunk's declared length. It is not partial-read tolerant by design:
// callers only use it once they know the whole chunk can be skipped in one
// seek (the loader only calls it from states that can re-enter on error).
func SkipPayloadAndCRC(r io.Seeker, length uint32) error {
	_, err := r.Seek(int64(length)+4, io.SeekCurrent)
	if err != nil {
		return pkgerrors.Wrap(err, "chunk: skip payload and CRC")
	}
	return nil
}

// SkipCRC advances past a chunk's 4-byte trailing CRC.
func SkipCRC(r io.Seeker) error {
	_, err := r.Seek(4, io.SeekCurrent)
	if err != nil {
		return pkgerrors.Wrap(err, "chunk: skip CRC")
	}
	return nil
}
