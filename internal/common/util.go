package common

// WipeByteArray overwrites b with zeros. Use it for passwords read from
// the terminal once they have been sent.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
