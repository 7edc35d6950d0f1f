package predict

// paeth implements the Paeth predictor: of the three neighbor bytes a
// (left), b (above), c (above-left), it returns whichever minimizes the L1
// distance to p = a+b-c, breaking ties in favor of a, then b, then c.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
