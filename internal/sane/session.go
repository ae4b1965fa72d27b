package sane

import (
	"log"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// State is the session's position in the lifecycle spec §4.4 defines.
type State int

const (
	StateUnconnected State = iota
	StateInitialized
	StateDeviceOpen
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateInitialized:
		return "initialized"
	case StateDeviceOpen:
		return "device_open"
	default:
		return "unknown"
	}
}

// DefaultPort is the SANE daemon's default TCP port (spec §1, §6).
const DefaultPort = "6566"

type sessionConfig struct {
	identity IdentityProvider
	dial     dialFunc
}

// Option configures a Session at Connect time.
type Option func(*sessionConfig)

// WithIdentityProvider overrides the username source used by INIT. The
// default reads the OS user name (spec §6, §9).
func WithIdentityProvider(p IdentityProvider) Option {
	return func(c *sessionConfig) { c.identity = p }
}

// WithDialFunc overrides how the control connection (and, for each
// acquisition, the data connection) is dialed. Use this to inject a
// net.Dialer with a timeout, a context-aware dialer, or a fwmark-binding
// dialer (spec §5: "Callers control timeouts by configuring the transport
// layer they inject").
func WithDialFunc(dial func(network, address string) (net.Conn, error)) Option {
	return func(c *sessionConfig) { c.dial = dial }
}

// Session owns a control connection, its codec, and the lifecycle state.
// It does not hold device handles directly; OpenDevice returns a handle
// the caller supplies back for device-scoped operations (spec §3).
//
// A Session is not safe for concurrent use: spec §5 leaves concurrent
// invocation on one session undefined, so no internal locking is added
// here.
type Session struct {
	host     string
	dial     dialFunc
	identity IdentityProvider

	ctrl  *control
	state State
}

// Connect dials addr (host, or host:port; DefaultPort is assumed when no
// port is given), performs INIT with protocol version 1.0.3 and the
// caller's identity, and returns a Session in StateInitialized.
func Connect(addr string, opts ...Option) (*Session, error) {
	cfg := sessionConfig{identity: osIdentityProvider{}, dial: net.Dial}
	for _, o := range opts {
		o(&cfg)
	}

	hostPort := addr
	if _, _, err := net.SplitHostPort(addr); err != nil {
		hostPort = net.JoinHostPort(addr, DefaultPort)
	}
	host, _, err := net.SplitHostPort(hostPort)
	if err != nil {
		return nil, wrapErr(KindInvalidArgument, "invalid address "+addr, err)
	}

	ctrl, err := dialControl(cfg.dial, "tcp", hostPort)
	if err != nil {
		return nil, err
	}

	username, err := cfg.identity.Username()
	if err != nil {
		_ = ctrl.close()
		return nil, err
	}

	if err := ctrl.initRPC(username); err != nil {
		_ = ctrl.close()
		return nil, err
	}

	return &Session{
		host:     host,
		dial:     cfg.dial,
		identity: cfg.identity,
		ctrl:     ctrl,
		state:    StateInitialized,
	}, nil
}

func (s *Session) requireState(op string, want State) error {
	if s.state != want {
		return newErr(KindIllegalState, op+" requires state "+want.String()+", have "+s.state.String())
	}
	return nil
}

// ListDevices performs GET_DEVICES. Legal only in StateInitialized.
func (s *Session) ListDevices() ([]Device, error) {
	if err := s.requireState("list_devices", StateInitialized); err != nil {
		return nil, err
	}
	return s.ctrl.getDevicesRPC()
}

// OpenDevice performs OPEN and transitions to StateDeviceOpen. Legal only
// in StateInitialized. A non-empty resource string on the handle means
// authentication would be required, which this package does not perform;
// callers should treat AuthRequired as a hard stop.
func (s *Session) OpenDevice(name string) (*DeviceHandle, error) {
	if err := s.requireState("open_device", StateInitialized); err != nil {
		return nil, err
	}
	h, err := s.ctrl.openRPC(name)
	if err != nil {
		return nil, err
	}
	if h.AuthRequired {
		s.state = StateDeviceOpen
		return h, newErr(KindAuthRequired, "device "+name+" requires authentication")
	}
	s.state = StateDeviceOpen
	return h, nil
}

// CloseDevice performs CLOSE and transitions back to StateInitialized.
// Legal only in StateDeviceOpen.
func (s *Session) CloseDevice(h *DeviceHandle) error {
	if err := s.requireState("close_device", StateDeviceOpen); err != nil {
		return err
	}
	if err := s.ctrl.closeRPC(h); err != nil {
		return err
	}
	s.state = StateInitialized
	return nil
}

// AcquireImage runs one full scan: repeated START + GET_PARAMETERS + a
// data-socket frame read, until the server marks a frame as last, then
// assembles the accumulated frames into an Image. Legal only in
// StateDeviceOpen, and remains in StateDeviceOpen afterward so additional
// acquisitions can follow (spec §4.4, §4.6, §5).
//
// On any error during acquisition the data socket is dropped and the
// session stays in StateDeviceOpen, safe to retry or close (spec §7).
func (s *Session) AcquireImage(h *DeviceHandle) (*Image, error) {
	if err := s.requireState("acquire_image", StateDeviceOpen); err != nil {
		return nil, err
	}

	acqID := uuid.New().String()
	builder := NewImageBuilder()
	var lastByteOrder ByteOrder
	frameCount := 0
	var totalBytes int64
	start := time.Now()

	for {
		started, err := s.ctrl.startRPC(h)
		if err != nil {
			return nil, err
		}
		if started.Resource != "" {
			return nil, newErr(KindAuthRequired, "acquisition "+acqID+" requires authentication")
		}
		lastByteOrder = started.ByteOrder

		params, err := s.ctrl.getParametersRPC(h)
		if err != nil {
			return nil, err
		}

		frame, err := s.readDataFrame(started.Port, params)
		if err != nil {
			return nil, err
		}
		if err := builder.AddFrame(frame); err != nil {
			return nil, err
		}

		frameCount++
		totalBytes += int64(len(frame.Data))
		if params.IsLast {
			break
		}
	}

	img, err := builder.Build()
	if err != nil {
		return nil, err
	}
	img.ByteOrder = lastByteOrder
	log.Printf("sane: acquisition %s: %d frame(s), %d bytes, byte_order=%d, %s",
		acqID, frameCount, totalBytes, lastByteOrder, time.Since(start))
	return img, nil
}

func (s *Session) readDataFrame(port int32, params FrameParams) (Frame, error) {
	addr := net.JoinHostPort(s.host, strconv.Itoa(int(port)))
	conn, err := s.dial("tcp", addr)
	if err != nil {
		return Frame{}, wrapErr(KindIO, "dial data connection", err)
	}
	defer conn.Close()
	return readFrame(conn, params)
}

// Close sends EXIT and drops the control socket, returning the session to
// StateUnconnected. Calling Close on an already-unconnected session is a
// no-op (spec §9 supplemented behavior, matching real SANE client
// tolerance for repeated Close calls).
func (s *Session) Close() error {
	if s.state == StateUnconnected {
		return nil
	}
	exitErr := s.ctrl.exitRPC()
	closeErr := s.ctrl.close()
	s.state = StateUnconnected
	if exitErr != nil {
		return exitErr
	}
	return closeErr
}
