package inflate

import (
	"bytes"
	"compress/zlib"
	"testing"
)

// decodeAll drives an Inflater to completion against a zlib stream,
// feeding input and collecting output in small chunks so the resumable
// suspend/resume paths (not just a single large call) get exercised.
func decodeAll(t *testing.T, compressed []byte, outChunk int) []byte {
	t.Helper()
	inf := NewZlib()
	var result []byte
	in := compressed
	out := make([]byte, outChunk)

	for {
		consumed, produced, status, err := inf.Decompress(in, out)
		if status == StatusError {
			t.Fatalf("decompress error: %v", err)
		}
		result = append(result, out[:produced]...)
		in = in[consumed:]

		switch status {
		case StatusStreamEnd:
			return result
		case StatusNeedMoreInput:
			if len(in) > 0 {
				t.Fatalf("NeedMoreInput reported with %d input bytes still unconsumed", len(in))
			}
			t.Fatalf("ran out of input before the stream finished")
		case StatusNeedMoreOutput, StatusOK:
			// loop again; more output room or another work unit is needed.
		}
	}
}

func zlibCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("zlib.Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zlib.Close: %v", err)
	}
	return buf.Bytes()
}

func TestDecompressStoredBlockRoundTrip(t *testing.T) {
	// compress/zlib with no compression forces literal (stored) DEFLATE
	// blocks, exercising stStoredLen/stStoredCopy.
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.NoCompression)
	if err != nil {
		t.Fatalf("NewWriterLevel: %v", err)
	}
	data := []byte("the quick brown fox jumps over the lazy dog, 0123456789")
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got := decodeAll(t, buf.Bytes(), 8)
	if !bytes.Equal(got, data) {
		t.Fatalf("got %q want %q", got, data)
	}
}

func TestDecompressDefaultCompressionRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("PNG scanlines compress well when they repeat. "), 200)
	compressed := zlibCompress(t, data)

	got := decodeAll(t, compressed, 4096)
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}

func TestDecompressSmallOutputChunks(t *testing.T) {
	data := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaabbbbbbbbbbbbbbbbbbbbbbccccccccc")
	compressed := zlibCompress(t, data)

	got := decodeAll(t, compressed, 1)
	if !bytes.Equal(got, data) {
		t.Fatalf("got %q want %q", got, data)
	}
}

func TestDecompressFeedOneByteAtATime(t *testing.T) {
	data := []byte("resumable decode must tolerate one byte of input per call")
	compressed := zlibCompress(t, data)

	inf := NewZlib()
	var result []byte
	out := make([]byte, 4096)
	i := 0
	for {
		var in []byte
		if i < len(compressed) {
			in = compressed[i : i+1]
		}
		consumed, produced, status, err := inf.Decompress(in, out)
		if status == StatusError {
			t.Fatalf("decompress error: %v", err)
		}
		result = append(result, out[:produced]...)
		i += consumed
		if status == StatusStreamEnd {
			break
		}
		if consumed == 0 && i >= len(compressed) {
			t.Fatalf("stream did not finish after all input was fed")
		}
	}
	if !bytes.Equal(result, data) {
		t.Fatalf("got %q want %q", result, data)
	}
}

func TestDecompressAfterStreamEndReturnsStreamEnd(t *testing.T) {
	data := []byte("x")
	compressed := zlibCompress(t, data)
	inf := NewZlib()
	out := make([]byte, 64)
	_, _, status, _ := inf.Decompress(compressed, out)
	if status != StatusStreamEnd {
		t.Fatalf("expected immediate stream end for tiny input, got %v", status)
	}
	_, produced, status2, err := inf.Decompress(nil, out)
	if status2 != StatusStreamEnd || produced != 0 || err != nil {
		t.Fatalf("calling Decompress again after StreamEnd should be a no-op, got produced=%d status=%v err=%v", produced, status2, err)
	}
}
