package chunk

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"
)

func TestReadSignatureOK(t *testing.T) {
	r := bytes.NewReader(Signature[:])
	if err := ReadSignature(r); err != nil {
		t.Fatalf("ReadSignature: %v", err)
	}
}

func TestReadSignatureBad(t *testing.T) {
	bad := append([]byte{}, Signature[:]...)
	bad[0] = 0x00
	r := bytes.NewReader(bad)
	err := ReadSignature(r)
	if err == nil || !ErrBadSignature(err) {
		t.Fatalf("expected bad signature error, got %v", err)
	}
}

func TestReadSignatureShort(t *testing.T) {
	r := bytes.NewReader(Signature[:4])
	err := ReadSignature(r)
	if err != ErrNeedMoreData {
		t.Fatalf("expected ErrNeedMoreData, got %v", err)
	}
	// Position must be unchanged after a short read so a retry re-reads
	// the same bytes.
	pos, _ := r.Seek(0, 1)
	if pos != 0 {
		t.Fatalf("reader position advanced on short read: %d", pos)
	}
}

func TestReadHeaderRoundTrip(t *testing.T) {
	buf := []byte{0, 0, 0, 13, 'I', 'H', 'D', 'R'}
	r := bytes.NewReader(buf)
	h, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Length != 13 || h.TypeString() != "IHDR" {
		t.Fatalf("got length=%d type=%q", h.Length, h.TypeString())
	}
}

func TestReadExactNeedsMoreData(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3})
	var buf [5]byte
	err := ReadExact(r, buf[:])
	if err != ErrNeedMoreData {
		t.Fatalf("expected ErrNeedMoreData, got %v", err)
	}
	pos, _ := r.Seek(0, 1)
	if pos != 0 {
		t.Fatalf("reader position should be unchanged, got %d", pos)
	}

	// Retry with the full data available: must succeed and return the
	// same bytes regardless of the earlier short attempt.
	r2 := bytes.NewReader([]byte{1, 2, 3, 4, 5})
	if err := ReadExact(r2, buf[:]); err != nil {
		t.Fatalf("ReadExact on full data: %v", err)
	}
	if !bytes.Equal(buf[:], []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("got %v", buf)
	}
}

func TestReadAvailablePartial(t *testing.T) {
	r := bytes.NewReader([]byte{9, 9, 9})
	buf := make([]byte, 10)
	n, err := ReadAvailable(r, buf)
	if err != nil {
		t.Fatalf("ReadAvailable: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 bytes available, got %d", n)
	}
}

func TestReadAvailableEmpty(t *testing.T) {
	r := bytes.NewReader(nil)
	buf := make([]byte, 10)
	n, err := ReadAvailable(r, buf)
	if err != nil {
		t.Fatalf("ReadAvailable on empty reader should not error, got %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 bytes, got %d", n)
	}
}

func TestVerifyCRC(t *testing.T) {
	chunkType := [4]byte{'I', 'D', 'A', 'T'}
	payload := []byte("hello world")

	crc := crc32.NewIEEE()
	crc.Write(chunkType[:])
	crc.Write(payload)
	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], crc.Sum32())

	ok, err := VerifyCRC(chunkType, payload, bytes.NewReader(trailer[:]))
	if err != nil {
		t.Fatalf("VerifyCRC: %v", err)
	}
	if !ok {
		t.Fatalf("expected CRC to match")
	}

	trailer[0] ^= 0xFF
	ok, err = VerifyCRC(chunkType, payload, bytes.NewReader(trailer[:]))
	if err != nil {
		t.Fatalf("VerifyCRC: %v", err)
	}
	if ok {
		t.Fatalf("expected corrupted CRC to mismatch")
	}
}

func TestSkipPayloadAndCRC(t *testing.T) {
	buf := make([]byte, 10+4+20)
	r := bytes.NewReader(buf)
	if err := SkipPayloadAndCRC(r, 10); err != nil {
		t.Fatalf("SkipPayloadAndCRC: %v", err)
	}
	pos, _ := r.Seek(0, 1)
	if pos != 14 {
		t.Fatalf("expected position 14, got %d", pos)
	}
}
