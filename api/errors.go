package api

import "fmt"

// TransportError wraps a failure of the underlying HTTP exchange, including
// timeouts and connection errors. The driver never retries on its own.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response the driver could not accept: a non-2xx
// HTTP status, an unparseable document, a missing SOAP body, or a router
// ResponseCode other than success.
type ProtocolError struct {
	Op         string
	StatusCode int    // set when the HTTP status was at fault
	Code       string // set when the router reported a failure code
	Err        error  // set when the document did not parse
}

func (e *ProtocolError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected HTTP status %d", e.Op, e.StatusCode)
	case e.Code != "":
		return fmt.Sprintf("%s: router response code %s", e.Op, e.Code)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: protocol error", e.Op)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// DiscoveryError means the control port could not be established because the
// settings page was unreachable or did not decode. Nothing else works until
// discovery succeeds.
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover control port: %v", e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
