//go:build !linux

package main

import (
	"log"
	"net"
	"time"
)

// newDialer returns a dial function honoring the configured timeout.
// fwmark binding is Linux-only; a non-zero value is logged and ignored.
func newDialer(timeout time.Duration, fwmark uint32) func(network, address string) (net.Conn, error) {
	if fwmark != 0 {
		log.Printf("fwmark is supported only on linux; ignoring fwmark=%d", fwmark)
	}
	d := &net.Dialer{Timeout: timeout}
	return d.Dial
}
