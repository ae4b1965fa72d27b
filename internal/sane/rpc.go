package sane

import "net"

// Opcodes for the control RPC layer (spec §4.3).
const (
	opInit           = 0
	opGetDevices     = 1
	opOpen           = 2
	opClose          = 3
	opGetParameters  = 6
	opStart          = 7
	opExit           = 10
)

const protocolVersionMajor = 1
const protocolVersionMinor = 0
const protocolVersionBuild = 3

// control issues numbered RPCs against a single TCP connection and parses
// their typed responses. It has no notion of session lifecycle; session
// owns one control and enforces legal transitions on top of it.
type control struct {
	conn net.Conn
	s    *stream
}

// dialFunc matches net.Dial's signature, injectable so callers can control
// timeouts and interface/fwmark binding (spec §5).
type dialFunc func(network, address string) (net.Conn, error)

func dialControl(dial dialFunc, network, addr string) (*control, error) {
	conn, err := dial(network, addr)
	if err != nil {
		return nil, wrapErr(KindIO, "dial control connection", err)
	}
	return &control{conn: conn, s: newStream(conn)}, nil
}

func (c *control) close() error {
	return c.conn.Close()
}

// initRPC performs the INIT RPC. Its response is ordered version-then-status
// rather than status-first like every other RPC (spec §4.3); the status
// word is still checked for a non-zero value.
func (c *control) initRPC(username string) error {
	if err := c.s.writeWord(opInit); err != nil {
		return err
	}
	version := EncodeVersion(protocolVersionMajor, protocolVersionMinor, protocolVersionBuild)
	if err := c.s.writeWord(version); err != nil {
		return err
	}
	if err := c.s.writeString(username); err != nil {
		return err
	}
	if _, err := c.s.readWord(); err != nil { // server's version word, unused beyond framing
		return err
	}
	status, err := c.s.readWord()
	if err != nil {
		return err
	}
	if status != 0 {
		return protocolStatusErr(status)
	}
	return nil
}

// getDevicesRPC performs GET_DEVICES.
func (c *control) getDevicesRPC() ([]Device, error) {
	if err := c.s.writeWord(opGetDevices); err != nil {
		return nil, err
	}
	status, err := c.s.readWord()
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, protocolStatusErr(status)
	}
	devices, err := c.s.readDeviceArray()
	if err != nil {
		return nil, err
	}
	if _, err := c.s.readWord(); err != nil { // trailing word, discarded
		return nil, err
	}
	return devices, nil
}

// openRPC performs OPEN.
func (c *control) openRPC(name string) (*DeviceHandle, error) {
	if err := c.s.writeWord(opOpen); err != nil {
		return nil, err
	}
	if err := c.s.writeString(name); err != nil {
		return nil, err
	}
	status, err := c.s.readWord()
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, protocolStatusErr(status)
	}
	handle, err := c.s.readWord()
	if err != nil {
		return nil, err
	}
	resource, err := c.s.readString()
	if err != nil {
		return nil, err
	}
	return &DeviceHandle{handle: handle, Resource: resource, AuthRequired: resource != ""}, nil
}

// closeRPC performs CLOSE. The single response word is an unspecified
// "dummy" value (spec §9) and is never interpreted as a status.
func (c *control) closeRPC(h *DeviceHandle) error {
	if err := c.s.writeWord(opClose); err != nil {
		return err
	}
	if err := c.s.writeWord(h.handle); err != nil {
		return err
	}
	_, err := c.s.readWord()
	return err
}

// getParametersRPC performs GET_PARAMETERS.
func (c *control) getParametersRPC(h *DeviceHandle) (FrameParams, error) {
	if err := c.s.writeWord(opGetParameters); err != nil {
		return FrameParams{}, err
	}
	if err := c.s.writeWord(h.handle); err != nil {
		return FrameParams{}, err
	}
	status, err := c.s.readWord()
	if err != nil {
		return FrameParams{}, err
	}
	if status != 0 {
		return FrameParams{}, protocolStatusErr(status)
	}
	return c.s.readFrameParams()
}

// startResult is the response to a START RPC (spec §4.3).
type startResult struct {
	Port       int32
	ByteOrder  ByteOrder
	Resource   string
}

// startRPC performs START.
func (c *control) startRPC(h *DeviceHandle) (*startResult, error) {
	if err := c.s.writeWord(opStart); err != nil {
		return nil, err
	}
	if err := c.s.writeWord(h.handle); err != nil {
		return nil, err
	}
	status, err := c.s.readWord()
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, protocolStatusErr(status)
	}
	port, err := c.s.readWord()
	if err != nil {
		return nil, err
	}
	byteOrder, err := c.s.readWord()
	if err != nil {
		return nil, err
	}
	resource, err := c.s.readString()
	if err != nil {
		return nil, err
	}
	return &startResult{Port: port, ByteOrder: ByteOrder(byteOrder), Resource: resource}, nil
}

// exitRPC performs EXIT. The server closes the connection in response; no
// response is read (spec §4.3).
func (c *control) exitRPC() error {
	return c.s.writeWord(opExit)
}
