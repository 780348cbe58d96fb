package common

import "testing"

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	b := []byte("Secret123")
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %x", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
