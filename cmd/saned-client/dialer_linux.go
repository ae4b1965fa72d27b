//go:build linux

package main

import (
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// newDialer returns a dial function that binds the outgoing control/data
// sockets to fwmark when it is non-zero, mirroring the teacher project's
// own setSocketMark helper but built on golang.org/x/sys/unix instead of
// the raw syscall constants.
func newDialer(timeout time.Duration, fwmark uint32) func(network, address string) (net.Conn, error) {
	d := &net.Dialer{Timeout: timeout}
	if fwmark != 0 {
		d.Control = func(_, _ string, c syscall.RawConn) error {
			var ctrlErr error
			if err := c.Control(func(fd uintptr) {
				ctrlErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_MARK, int(fwmark))
			}); err != nil {
				return err
			}
			if ctrlErr != nil {
				return fmt.Errorf("setsockopt SO_MARK=%d: %w", fwmark, ctrlErr)
			}
			return nil
		}
	}
	return d.Dial
}
