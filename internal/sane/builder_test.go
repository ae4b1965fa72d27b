package sane

import (
	"reflect"
	"testing"
)

func rgbFrame(t FrameType, data []byte, isLast bool) Frame {
	return Frame{
		Params: FrameParams{
			Type:          t,
			IsLast:        isLast,
			BytesPerLine:  int32(len(data)),
			PixelsPerLine: int32(len(data)),
			LineCount:     1,
			Depth:         8,
		},
		Data: data,
	}
}

func TestImageBuilderOrderAgnosticForRGBTrio(t *testing.T) {
	red := []byte{1, 2, 3}
	green := []byte{4, 5, 6}
	blue := []byte{7, 8, 9}

	perms := [][]FrameType{
		{FrameRed, FrameGreen, FrameBlue},
		{FrameRed, FrameBlue, FrameGreen},
		{FrameGreen, FrameRed, FrameBlue},
		{FrameGreen, FrameBlue, FrameRed},
		{FrameBlue, FrameRed, FrameGreen},
		{FrameBlue, FrameGreen, FrameRed},
	}
	byType := map[FrameType][]byte{FrameRed: red, FrameGreen: green, FrameBlue: blue}

	var reference *Image
	for _, perm := range perms {
		b := NewImageBuilder()
		for i, ft := range perm {
			if err := b.AddFrame(rgbFrame(ft, byType[ft], i == len(perm)-1)); err != nil {
				t.Fatalf("AddFrame(%v): %v", ft, err)
			}
		}
		img, err := b.Build()
		if err != nil {
			t.Fatalf("Build() for perm %v: %v", perm, err)
		}
		gotOrder := []FrameType{img.Frames[0].Params.Type, img.Frames[1].Params.Type, img.Frames[2].Params.Type}
		wantOrder := []FrameType{FrameRed, FrameGreen, FrameBlue}
		if !reflect.DeepEqual(gotOrder, wantOrder) {
			t.Fatalf("perm %v produced order %v, want %v", perm, gotOrder, wantOrder)
		}
		if reference == nil {
			reference = img
			continue
		}
		for i := range img.Frames {
			// IsLast records arrival position, which differs per permutation
			// by construction; everything else must be identical.
			got, ref := img.Frames[i], reference.Frames[i]
			got.Params.IsLast, ref.Params.IsLast = false, false
			if !reflect.DeepEqual(got, ref) {
				t.Fatalf("perm %v produced a different assembled image than the reference permutation", perm)
			}
		}
	}
}

func TestImageBuilderRejectsDuplicateType(t *testing.T) {
	b := NewImageBuilder()
	if err := b.AddFrame(rgbFrame(FrameRed, []byte{1}, false)); err != nil {
		t.Fatalf("first AddFrame: %v", err)
	}
	err := b.AddFrame(rgbFrame(FrameRed, []byte{2}, false))
	if !IsKind(err, KindIncompleteImage) {
		t.Fatalf("duplicate type: got %v, want KindIncompleteImage", err)
	}
}

func TestImageBuilderRejectsSingletonMixedWithOthers(t *testing.T) {
	b := NewImageBuilder()
	if err := b.AddFrame(rgbFrame(FrameGray, []byte{1, 2}, true)); err != nil {
		t.Fatalf("AddFrame(GRAY): %v", err)
	}
	err := b.AddFrame(rgbFrame(FrameRed, []byte{1, 2}, false))
	if !IsKind(err, KindIncompleteImage) {
		t.Fatalf("singleton+other: got %v, want KindIncompleteImage", err)
	}

	b2 := NewImageBuilder()
	if err := b2.AddFrame(rgbFrame(FrameRed, []byte{1, 2}, false)); err != nil {
		t.Fatalf("AddFrame(RED): %v", err)
	}
	err = b2.AddFrame(rgbFrame(FrameGray, []byte{1, 2}, true))
	if !IsKind(err, KindIncompleteImage) {
		t.Fatalf("other+singleton: got %v, want KindIncompleteImage", err)
	}
}

func TestImageBuilderRejectsMismatchedPayloadLength(t *testing.T) {
	b := NewImageBuilder()
	if err := b.AddFrame(rgbFrame(FrameRed, []byte{1, 2, 3}, false)); err != nil {
		t.Fatalf("AddFrame(RED): %v", err)
	}
	err := b.AddFrame(rgbFrame(FrameGreen, []byte{1, 2}, false))
	if !IsKind(err, KindIncompleteImage) {
		t.Fatalf("mismatched length: got %v, want KindIncompleteImage", err)
	}
}

func TestImageBuilderRejectsMismatchedGeometry(t *testing.T) {
	b := NewImageBuilder()
	f1 := rgbFrame(FrameRed, []byte{1, 2, 3}, false)
	if err := b.AddFrame(f1); err != nil {
		t.Fatalf("AddFrame(RED): %v", err)
	}
	f2 := rgbFrame(FrameGreen, []byte{1, 2, 3}, false)
	f2.Params.Depth = 16
	err := b.AddFrame(f2)
	if !IsKind(err, KindIncompleteImage) {
		t.Fatalf("mismatched depth: got %v, want KindIncompleteImage", err)
	}
}

func TestImageBuilderIncompleteTrioFailsToBuild(t *testing.T) {
	b := NewImageBuilder()
	if err := b.AddFrame(rgbFrame(FrameRed, []byte{1, 2, 3}, false)); err != nil {
		t.Fatalf("AddFrame(RED): %v", err)
	}
	if err := b.AddFrame(rgbFrame(FrameGreen, []byte{1, 2, 3}, false)); err != nil {
		t.Fatalf("AddFrame(GREEN): %v", err)
	}
	_, err := b.Build()
	if !IsKind(err, KindIncompleteImage) {
		t.Fatalf("Build with 2/3 frames: got %v, want KindIncompleteImage", err)
	}
}

func TestImageBuilderSingleGrayFrame(t *testing.T) {
	b := NewImageBuilder()
	data := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}
	f := Frame{
		Params: FrameParams{Type: FrameGray, IsLast: true, BytesPerLine: 4, PixelsPerLine: 4, LineCount: 2, Depth: 8},
		Data:   data,
	}
	if err := b.AddFrame(f); err != nil {
		t.Fatalf("AddFrame: %v", err)
	}
	img, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(img.Frames) != 1 || img.Width != 4 || img.Height != 2 || img.Depth != 8 || img.BytesPerLine != 4 {
		t.Fatalf("unexpected image: %+v", img)
	}
	if !reflect.DeepEqual(img.Frames[0].Data, data) {
		t.Fatalf("frame data mismatch")
	}
}
