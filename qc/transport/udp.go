package transport

import (
	"net"
)

// UDPConfig configures the OS-level socket buffer sizes backing a Conn.
// Bind applies each buffer size only when it is positive; a zero size
// leaves the OS default (internal/config's 8 MiB
// transport.udp_send_buffer_bytes/recv values are not read here). Bind
// sets no reuse-address option, and the Broadcast field is not applied
// to the socket.
type UDPConfig struct {
	SendBufferBytes int
	RecvBufferBytes int
	Broadcast       bool
}

// Conn is the OS-level UDP abstraction: bind, then SendTo/RecvFrom are the
// only I/O primitives, implemented directly over net.UDPConn.
type Conn struct {
	pc *net.UDPConn
}

// Bind opens a UDP socket at addr ("host:port", or ":port" to listen on
// all interfaces) configured per cfg.
func Bind(addr string, cfg UDPConfig) (*Conn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	pc, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	if cfg.SendBufferBytes > 0 {
		_ = pc.SetWriteBuffer(cfg.SendBufferBytes)
	}
	if cfg.RecvBufferBytes > 0 {
		_ = pc.SetReadBuffer(cfg.RecvBufferBytes)
	}
	return &Conn{pc: pc}, nil
}

// SendTo writes b to addr.
func (c *Conn) SendTo(b []byte, addr *net.UDPAddr) (int, error) {
	return c.pc.WriteToUDP(b, addr)
}

// RecvFrom reads into buf, returning the number of bytes read and the
// sender's address.
func (c *Conn) RecvFrom(buf []byte) (int, *net.UDPAddr, error) {
	n, addr, err := c.pc.ReadFromUDP(buf)
	return n, addr, err
}

// LocalAddr returns the socket's bound local address.
func (c *Conn) LocalAddr() net.Addr { return c.pc.LocalAddr() }

// Close releases the underlying socket.
func (c *Conn) Close() error { return c.pc.Close() }
