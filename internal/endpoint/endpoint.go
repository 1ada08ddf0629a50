// internal/endpoint/endpoint.go
package endpoint

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every Parse and Validate failure.
var ErrMalformed = errors.New("endpoint: malformed")

// Descriptor identifies a remote master: display name, network address and port.
// Value type. No IO.
type Descriptor struct {
	Name    string
	Address string
	Port    string
}

// ParseError reports which input could not be decoded and why.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("endpoint: cannot parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformed }

// Parse decodes a display string produced by Format.
//
// Accepted forms:
//
//	name (address:port)
//	address:port
//
// IPv6 addresses must be bracketed ("[fe80::1]:50002").
// Parse never panics; anything it cannot decode is a *ParseError.
func Parse(display string) (Descriptor, error) {
	s := strings.TrimSpace(display)
	if s == "" {
		return Descriptor{}, &ParseError{Input: display, Reason: "empty selection"}
	}

	var d Descriptor
	hostport := s

	// Name is everything before the LAST " (" so names may carry parentheses.
	if strings.HasSuffix(s, ")") {
		open := strings.LastIndex(s, " (")
		if open < 0 {
			if !strings.HasPrefix(s, "(") {
				return Descriptor{}, &ParseError{Input: display, Reason: "unbalanced parenthesis"}
			}
			open = -1
		}
		if open >= 0 {
			d.Name = strings.TrimSpace(s[:open])
			hostport = s[open+2 : len(s)-1]
		} else {
			hostport = s[1 : len(s)-1]
		}
	}

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostport))
	if err != nil {
		return Descriptor{}, &ParseError{Input: display, Reason: err.Error()}
	}
	d.Address = host
	d.Port = port

	if err := d.Validate(); err != nil {
		return Descriptor{}, &ParseError{Input: display, Reason: err.Error()}
	}
	return d, nil
}

// Format is the canonical inverse of Parse.
func Format(d Descriptor) string {
	hostport := net.JoinHostPort(d.Address, d.Port)
	if d.Name == "" {
		return hostport
	}
	return d.Name + " (" + hostport + ")"
}

// String implements fmt.Stringer using Format.
func (d Descriptor) String() string { return Format(d) }

// SameTarget reports whether d and o point at the same address and port.
// The name is deliberately not compared.
func (d Descriptor) SameTarget(o Descriptor) bool {
	return d.Address == o.Address && d.Port == o.Port
}

// IsZero reports whether no field is set.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

// Validate checks that d survives a Format/Parse round trip unchanged.
func (d Descriptor) Validate() error {
	if d.Address == "" {
		return fmt.Errorf("%w: address required", ErrMalformed)
	}
	if strings.ContainsAny(d.Address, " ()[]") {
		return fmt.Errorf("%w: address %q contains reserved characters", ErrMalformed, d.Address)
	}

	p, err := strconv.Atoi(d.Port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("%w: port %q must be 1..65535", ErrMalformed, d.Port)
	}
	// Leading zeros and signs do not round-trip.
	if strconv.Itoa(p) != d.Port {
		return fmt.Errorf("%w: port %q is not canonical", ErrMalformed, d.Port)
	}

	if d.Name != strings.TrimSpace(d.Name) {
		return fmt.Errorf("%w: name has surrounding whitespace", ErrMalformed)
	}
	if strings.ContainsAny(d.Name, "\r\n") {
		return fmt.Errorf("%w: name contains a line break", ErrMalformed)
	}
	return nil
}
