// Package sane provides a small public surface for reusing this module's
// SANE network client as a library. The implementation lives in
// internal/sane and may change without notice.
package sane

import (
	"net"

	internal "sane-client/internal/sane"
)

// --- Session lifecycle ---

type Session = internal.Session

type Option = internal.Option

// Connect dials a SANE daemon at addr (host, or host:port; port defaults
// to DefaultPort) and performs the INIT handshake.
func Connect(addr string, opts ...Option) (*Session, error) {
	return internal.Connect(addr, opts...)
}

// DefaultPort is the SANE daemon's default TCP port.
const DefaultPort = internal.DefaultPort

func WithIdentityProvider(p IdentityProvider) Option {
	return internal.WithIdentityProvider(p)
}

func WithDialFunc(dial func(network, address string) (net.Conn, error)) Option {
	return internal.WithDialFunc(dial)
}

// --- Identity ---

type IdentityProvider = internal.IdentityProvider

func StaticIdentity(name string) IdentityProvider { return internal.StaticIdentity(name) }

// --- Data model ---

type Device = internal.Device

type DeviceHandle = internal.DeviceHandle

type FrameType = internal.FrameType

const (
	FrameGray  = internal.FrameGray
	FrameRGB   = internal.FrameRGB
	FrameRed   = internal.FrameRed
	FrameGreen = internal.FrameGreen
	FrameBlue  = internal.FrameBlue
)

type FrameParams = internal.FrameParams

type Frame = internal.Frame

type Image = internal.Image

// --- Raster ---

type Raster = internal.Raster

type ColorModel = internal.ColorModel

const (
	ColorModelGray      = internal.ColorModelGray
	ColorModelLinearRGB = internal.ColorModelLinearRGB
	ColorModelBinary    = internal.ColorModelBinary
)

type ByteOrder = internal.ByteOrder

const (
	ByteOrderBigEndian    = internal.ByteOrderBigEndian
	ByteOrderLittleEndian = internal.ByteOrderLittleEndian
)

// NewRaster translates an assembled Image into a Raster description,
// applying the server's reported byte order to 16-bit samples.
func NewRaster(img *Image) (*Raster, error) {
	return internal.NewRaster(img)
}

// --- Errors ---

type Kind = internal.Kind

const (
	KindIO                     = internal.KindIO
	KindTruncatedStream        = internal.KindTruncatedStream
	KindProtocolStatus         = internal.KindProtocolStatus
	KindProtocolOverflow       = internal.KindProtocolOverflow
	KindInvalidArgument        = internal.KindInvalidArgument
	KindIllegalState           = internal.KindIllegalState
	KindIncompleteImage        = internal.KindIncompleteImage
	KindUnsupportedImageLayout = internal.KindUnsupportedImageLayout
	KindAuthRequired           = internal.KindAuthRequired
)

type Error = internal.Error

func IsKind(err error, kind Kind) bool { return internal.IsKind(err, kind) }
