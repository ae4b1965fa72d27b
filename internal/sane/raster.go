package sane

// ColorModel tags the interpretation of a Raster's sample bytes for a host
// raster consumer (spec §6 collaborator interface).
type ColorModel int

const (
	ColorModelGray ColorModel = iota
	ColorModelLinearRGB
	ColorModelBinary
)

func (c ColorModel) String() string {
	switch c {
	case ColorModelGray:
		return "gray"
	case ColorModelLinearRGB:
		return "linear_rgb"
	case ColorModelBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Raster is a uniform description of an assembled image's output buffer:
// the logical pixel matrix plus enough layout metadata for a host raster
// consumer to map (x, y, channel) to a byte offset (spec §4.7). Converting
// this into any platform-specific image container is outside this package
// (spec §1 Non-goals).
type Raster struct {
	ColorModel ColorModel
	Width      int
	Height     int
	Depth      int // bits per sample
	Stride     int // row stride in bytes, per plane

	// Planes holds one []byte per band. Banded RGB layouts (three
	// frames) have three planes with BandOffsets (0,0,0) each, meaning
	// sample x of row y lives at offset y*Stride + x*bytesPerSample
	// within its own plane. Interleaved layouts (one frame) have a
	// single plane; for interleaved RGB, BandOffsets gives the position
	// of each channel within one pixel counted in samples, not bytes
	// (0, 1, 2 at any depth). Gray and binary layouts leave it nil.
	Planes      [][]byte
	BandOffsets []int
	Samples     int // samples per pixel
}

// ByteOrder mirrors the word START returns: the server's native byte order
// for 16-bit samples. 0 means big-endian (network/wire order, the same
// order this package's own codec uses); any other value means little-endian.
type ByteOrder int32

const (
	ByteOrderBigEndian    ByteOrder = 0
	ByteOrderLittleEndian ByteOrder = 1
)

// NewRaster translates an assembled Image into a Raster, applying the
// layout policy of spec §4.7.
//
// REDESIGN (spec §9, open question #2): img.ByteOrder, as returned by
// START, is honored here: 16-bit samples are byte-swapped when the
// server's order differs from this package's own (big-endian) wire order.
// The protocol this is modeled on is flagged there for ignoring byte
// order; this implementation does not reproduce that defect.
func NewRaster(img *Image) (*Raster, error) {
	width := int(img.Width)
	height := int(img.Height)
	depth := int(img.Depth)
	stride := int(img.BytesPerLine)
	byteOrder := img.ByteOrder

	switch len(img.Frames) {
	case 3:
		if depth != 8 && depth != 16 {
			return nil, newErr(KindUnsupportedImageLayout, "RGB planar frames require depth 8 or 16")
		}
		planes := make([][]byte, 3)
		for i, f := range img.Frames {
			planes[i] = maybeSwap16(f.Data, depth, byteOrder)
		}
		return &Raster{
			ColorModel: ColorModelLinearRGB,
			Width:      width,
			Height:     height,
			Depth:      depth,
			Stride:     stride,
			Planes:     planes,
			BandOffsets: []int{0, 0, 0},
			Samples:    1,
		}, nil

	case 1:
		f := img.Frames[0]
		switch {
		case depth == 1:
			return &Raster{
				ColorModel: ColorModelBinary,
				Width:      width,
				Height:     height,
				Depth:      1,
				Stride:     stride,
				Planes:     [][]byte{f.Data},
				Samples:    1,
			}, nil
		case f.Params.Type == FrameGray && (depth == 8 || depth == 16):
			return &Raster{
				ColorModel: ColorModelGray,
				Width:      width,
				Height:     height,
				Depth:      depth,
				Stride:     stride,
				Planes:     [][]byte{maybeSwap16(f.Data, depth, byteOrder)},
				Samples:    1,
			}, nil
		case f.Params.Type == FrameRGB && (depth == 8 || depth == 16):
			return &Raster{
				ColorModel: ColorModelLinearRGB,
				Width:      width,
				Height:     height,
				Depth:      depth,
				Stride:     stride,
				Planes:     [][]byte{maybeSwap16(f.Data, depth, byteOrder)},
				BandOffsets: []int{0, 1, 2},
				Samples:    3,
			}, nil
		default:
			return nil, newErr(KindUnsupportedImageLayout, "unsupported single-frame depth/type combination")
		}

	default:
		return nil, newErr(KindUnsupportedImageLayout, "unsupported frame count")
	}
}

// maybeSwap16 returns data with adjacent byte pairs swapped when depth is
// 16 and order indicates the samples are not already in this package's
// big-endian wire order. For any other depth, data is returned unchanged.
func maybeSwap16(data []byte, depth int, order ByteOrder) []byte {
	if depth != 16 || order == ByteOrderBigEndian {
		return data
	}
	swapped := make([]byte, len(data))
	copy(swapped, data)
	for i := 0; i+1 < len(swapped); i += 2 {
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
	}
	return swapped
}
