package sane

import "testing"

func TestWordRoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 42, -42, 1 << 30, -(1 << 30), 2147483647, -2147483648}
	for _, n := range cases {
		got := DecodeWord(EncodeInt(n))
		if got != n {
			t.Fatalf("DecodeWord(EncodeInt(%d)) = %d", n, got)
		}
	}
}

func TestDecodeWordPanicsOnShortInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected DecodeWord to panic on a non-4-byte input")
		}
	}()
	DecodeWord([]byte{1, 2, 3})
}

func TestEncodeVersion(t *testing.T) {
	cases := []struct {
		major, minor, build int32
	}{
		{1, 0, 3},
		{2, 5, 100},
		{0xFF, 0xFF, 0xFFFF},
	}
	for _, tc := range cases {
		got := EncodeVersion(tc.major, tc.minor, tc.build)
		wantMajor := (got >> 24) & 0xFF
		wantMinor := (got >> 16) & 0xFF
		wantBuild := got & 0xFFFF
		if wantMajor != tc.major&0xFF || wantMinor != tc.minor&0xFF || wantBuild != tc.build&0xFFFF {
			t.Fatalf("EncodeVersion(%d,%d,%d) = %#x, bit layout mismatch", tc.major, tc.minor, tc.build, got)
		}
	}
}

func TestEncodeVersionKnownValue(t *testing.T) {
	got := EncodeVersion(1, 0, 3)
	want := int32(0x01000003)
	if got != want {
		t.Fatalf("EncodeVersion(1,0,3) = %#x, want %#x", got, want)
	}
}
