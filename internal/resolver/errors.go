package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type ErrorKind string

const (
	ErrorKindUnknown             ErrorKind = "unknown"
	ErrorKindValidation          ErrorKind = "validation"
	ErrorKindRedirect            ErrorKind = "redirect"
	ErrorKindUpstreamProvider    ErrorKind = "upstream_provider"
	ErrorKindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	ErrorKindNoMedia             ErrorKind = "no_media"
	ErrorKindCanceled            ErrorKind = "canceled"
	ErrorKindTimeout             ErrorKind = "timeout"
)

type Error struct {
	Kind     ErrorKind
	Platform string
	URL      string
	Msg      string
	Err      error
}

func (e Error) Error() string {
	base := e.Msg
	if base == "" && e.Err != nil {
		base = e.Err.Error()
	}
	if base == "" {
		base = string(e.Kind)
	}
	if e.Platform != "" && e.URL != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Platform, base, e.URL)
	}
	if e.Platform != "" {
		return fmt.Sprintf("%s: %s", e.Platform, base)
	}
	return base
}

func (e Error) Unwrap() error { return e.Err }

func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return ErrorKindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindTimeout
	}
	var re Error
	if errors.As(err, &re) && re.Kind != "" {
		return re.Kind
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrorKindTimeout
	}
	return ErrorKindUnknown
}

func NewValidationError(msg string) error {
	return Error{Kind: ErrorKindValidation, Msg: msg}
}

func NewRedirectError(platform, url string, err error) error {
	return Error{Kind: ErrorKindRedirect, Platform: platform, URL: url, Msg: "failed to resolve short link", Err: err}
}

func NewUpstreamProviderError(platform, url, providerMsg string) error {
	return Error{Kind: ErrorKindUpstreamProvider, Platform: platform, URL: url, Msg: providerMsg}
}

func NewUpstreamUnavailableError(platform, url string, err error) error {
	return Error{Kind: ErrorKindUpstreamUnavailable, Platform: platform, URL: url, Err: err}
}

func NewNoMediaError(platform, url string) error {
	return Error{Kind: ErrorKindNoMedia, Platform: platform, URL: url, Msg: "no usable media found"}
}
