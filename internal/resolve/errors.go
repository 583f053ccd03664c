package resolve

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// Kind classifies why a short URL failed to resolve.
type Kind string

const (
	KindTimeout    Kind = "timeout"
	KindDNS        Kind = "dns"
	KindConnection Kind = "connection"
	KindRedirect   Kind = "redirect"
	KindRequest    Kind = "request" // the short URL itself is unusable
	KindOther      Kind = "other"
)

// Error is a failed resolution of one short URL.
type Error struct {
	URL  string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return "resolve " + e.URL + " (" + string(e.Kind) + "): " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errTooManyRedirects is returned by the client's redirect policy.
var errTooManyRedirects = errors.New("too many redirects")

// classify maps a transport error onto a Kind. It walks the error chain
// first and falls back to message heuristics for wrapped client errors.
func classify(err error) Kind {
	if err == nil {
		return KindOther
	}

	if errors.Is(err, errTooManyRedirects) {
		return KindRedirect
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return KindTimeout
		}
		return KindDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return KindConnection
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such host"),
		strings.Contains(msg, "temporary failure in name resolution"):
		return KindDNS
	case strings.Contains(msg, "i/o timeout"),
		strings.Contains(msg, "tls handshake timeout"),
		strings.Contains(msg, "deadline exceeded"):
		return KindTimeout
	case strings.Contains(msg, "connection reset by peer"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "server closed idle connection"),
		strings.Contains(msg, "eof"):
		return KindConnection
	case strings.Contains(msg, "too many redirects"):
		return KindRedirect
	case strings.Contains(msg, "unsupported protocol scheme"),
		strings.Contains(msg, "no host in request url"):
		return KindRequest
	}

	return KindOther
}
