package electrum

import (
	"fmt"
	"net"
	"net/url"
)

// Supported endpoint schemes.
const (
	SchemeTCP = "tcp"
	SchemeSSL = "ssl"
)

// DefaultServer is the public endpoint used when none is configured.
const DefaultServer = "tcp://electrum.blockstream.info:50001"

// Endpoint is a parsed server URL such as tcp://host:50001 or ssl://host:50002.
type Endpoint struct {
	Scheme  string
	Address string // host:port
}

func (e Endpoint) String() string {
	return e.Scheme + "://" + e.Address
}

// Host returns the host part of the address, used as the TLS server name.
func (e Endpoint) Host() string {
	host, _, err := net.SplitHostPort(e.Address)
	if err != nil {
		return e.Address
	}
	return host
}

// ParseEndpoint validates raw and splits it into scheme and host:port.
// The port is required; Electrum has no single well-known port.
func ParseEndpoint(raw string) (Endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid server url %q: %w", raw, err)
	}
	if u.Scheme != SchemeTCP && u.Scheme != SchemeSSL {
		return Endpoint{}, fmt.Errorf("invalid server url scheme %q (expected tcp or ssl)", u.Scheme)
	}
	if u.Hostname() == "" {
		return Endpoint{}, fmt.Errorf("invalid server url %q (missing host)", raw)
	}
	if u.Port() == "" {
		return Endpoint{}, fmt.Errorf("invalid server url %q (missing port)", raw)
	}
	return Endpoint{Scheme: u.Scheme, Address: u.Host}, nil
}
