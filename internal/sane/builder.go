package sane

// writeOnce models a scalar that can be set exactly once and thereafter
// only re-checked for equality (spec §9's "write-once scalars" note): an
// optional value plus a fused set-or-check operation, rather than a
// wrapper object.
type writeOnce struct {
	set   bool
	value int32
}

func (w *writeOnce) setOrCheck(name string, v int32) error {
	if !w.set {
		w.set = true
		w.value = v
		return nil
	}
	if w.value != v {
		return newErr(KindIncompleteImage, name+" is inconsistent across frames")
	}
	return nil
}

// ImageBuilder accumulates the frames of one acquisition and, once
// complete, assembles them into an Image. It is stack-local to a single
// acquisition and is never shared (spec §3, §5).
type ImageBuilder struct {
	frames      []Frame
	haveType    map[FrameType]bool
	haveSingle  bool
	depth       writeOnce
	width       writeOnce
	height      writeOnce
	bytesPerLen writeOnce
}

// NewImageBuilder returns an empty builder.
func NewImageBuilder() *ImageBuilder {
	return &ImageBuilder{haveType: make(map[FrameType]bool)}
}

// AddFrame validates f against the invariants in spec §3/§4.6 and appends
// it. Frames may arrive in any order; canonical ordering is applied at
// Build time.
func (b *ImageBuilder) AddFrame(f Frame) error {
	if b.haveType[f.Params.Type] {
		return newErr(KindIncompleteImage, "duplicate frame type "+f.Params.Type.String())
	}
	if b.haveSingle {
		return newErr(KindIncompleteImage, "a singleton frame is already present; no further frames may be added")
	}
	if f.Params.Type.isSingleton() && len(b.frames) > 0 {
		return newErr(KindIncompleteImage, "singleton frame type "+f.Params.Type.String()+" cannot be mixed with other frames")
	}
	if len(b.frames) > 0 && len(f.Data) != len(b.frames[0].Data) {
		return newErr(KindIncompleteImage, "frame payload length differs from the first frame's")
	}
	if err := b.depth.setOrCheck("depth", f.Params.Depth); err != nil {
		return err
	}
	if err := b.width.setOrCheck("pixels_per_line", f.Params.PixelsPerLine); err != nil {
		return err
	}
	if err := b.height.setOrCheck("line_count", f.Params.LineCount); err != nil {
		return err
	}
	if err := b.bytesPerLen.setOrCheck("bytes_per_line", f.Params.BytesPerLine); err != nil {
		return err
	}

	b.haveType[f.Params.Type] = true
	if f.Params.Type.isSingleton() {
		b.haveSingle = true
	}
	b.frames = append(b.frames, f)
	return nil
}

// Image is the result of a completed acquisition: a canonically ordered
// set of frames plus the scalars all frames agreed on (spec §3).
type Image struct {
	Frames       []Frame
	Width        int32
	Height       int32
	Depth        int32
	BytesPerLine int32
	// ByteOrder is the server's reported sample byte order for this
	// acquisition (from the START RPC), needed by the raster
	// materializer to correct 16-bit samples (spec §4.7, §9).
	ByteOrder ByteOrder
}

var rgbOrder = []FrameType{FrameRed, FrameGreen, FrameBlue}

// Build checks that the accumulated frames form one of the two acceptable
// configurations — a single singleton frame, or a complete RGB trio — and
// returns the assembled Image. For a trio, frames are reordered into
// canonical RED, GREEN, BLUE order regardless of arrival order
// (spec §3, §4.6, testable property 5).
func (b *ImageBuilder) Build() (*Image, error) {
	switch len(b.frames) {
	case 1:
		if !b.frames[0].Params.Type.isSingleton() {
			return nil, newErr(KindIncompleteImage, "single frame present but it is not a singleton type")
		}
		return b.assemble(b.frames), nil
	case 3:
		ordered := make([]Frame, 0, 3)
		for _, t := range rgbOrder {
			found := false
			for _, f := range b.frames {
				if f.Params.Type == t {
					ordered = append(ordered, f)
					found = true
					break
				}
			}
			if !found {
				return nil, newErr(KindIncompleteImage, "missing "+t.String()+" plane for RGB trio")
			}
		}
		return b.assemble(ordered), nil
	default:
		return nil, newErr(KindIncompleteImage, "incomplete set of frames")
	}
}

func (b *ImageBuilder) assemble(frames []Frame) *Image {
	return &Image{
		Frames:       frames,
		Width:        b.width.value,
		Height:       b.height.value,
		Depth:        b.depth.value,
		BytesPerLine: b.bytesPerLen.value,
	}
}
