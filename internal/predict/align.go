package predict

import "unsafe"

// uintptrOf returns the address of a slice's first byte, mirroring the
// original source's address_is_properly_aligned / aligned_offset_for_slice
// pointer-arithmetic checks (ImageLoader pads scanline buffers so this is
// always a multiple of 16 past the leading filter byte).
func uintptrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
