package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes application errors.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the request body was malformed.
	InvalidInput
	// InvalidURL indicates the submitted address could not be parsed as an absolute URL.
	InvalidURL
	// BlockedURL indicates the target host is local or private and refused by policy.
	BlockedURL

	// Timeout indicates the target took longer than the fetch budget.
	Timeout
	// NotFound indicates the target answered 404.
	NotFound
	// Forbidden indicates the target answered 403.
	Forbidden
	// ServerError indicates the target answered 5xx.
	ServerError
	// ClientError indicates the target answered a 4xx other than 403 and 404.
	ClientError
	// HTTPError indicates any other non-2xx final status.
	HTTPError
	// NotHTML indicates the response Content-Type is not text/html.
	NotHTML
	// TooLarge indicates the response body exceeded the size cap.
	TooLarge
	// EmptyBody indicates the response carried no body at all.
	EmptyBody
	// Unreachable indicates a transport failure (DNS, refused, redirect policy, blocked dial).
	Unreachable
)

var kindNames = map[Kind]string{
	Unknown:      "unknown",
	InvalidInput: "invalid_input",
	InvalidURL:   "invalid_url",
	BlockedURL:   "blocked_url",
	Timeout:      "timeout",
	NotFound:     "not_found",
	Forbidden:    "forbidden",
	ServerError:  "server_error",
	ClientError:  "client_error",
	HTTPError:    "http_error",
	NotHTML:      "not_html",
	TooLarge:     "too_large",
	EmptyBody:    "empty_body",
	Unreachable:  "unreachable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsFetch reports whether k belongs to the page fetch family.
func (k Kind) IsFetch() bool {
	return k >= Timeout && k <= Unreachable
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // HTTP status code returned by the target domain
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of the first AppError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
