package api

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type (
	ServerError struct {
		statusCode int
		cause      error
	}

	// LogsLimitExceededError is returned when a multi-block log query would return more than Limit logs.
	// [FromBlock, SafeToBlock] is a range guaranteed to stay within the limit.
	LogsLimitExceededError struct {
		Limit       int
		FromBlock   uint64
		SafeToBlock uint64
	}

	// SubmitTransactionError is returned when the sandbox or the submission pipeline rejects a transaction.
	// Reason is a machine-readable tag used for metrics; Data carries the optional revert payload.
	SubmitTransactionError struct {
		Reason  string
		Message string
		Data    []byte
	}

	// InternalError wraps an unexpected collaborator failure with the name of the failing method.
	InternalError struct {
		Method string
		cause  error
	}

	grpcError interface {
		GRPCStatus() *status.Status
	}
)

const (
	// StatusCanceled is returned when a client cancels the request while it is being processed.
	// Ref: https://www.webfx.com/web-development/glossary/http-status-codes/what-is-a-499-status-code/
	StatusCanceled = 499

	ReasonOversizedData = "oversized-data"
	ReasonProxyError    = "proxy-error"
	ReasonExecution     = "execution-reverted"
	ReasonUnknown       = "unknown"
)

var (
	ErrNoBlock            = xerrors.New("Block with such an ID doesn't exist yet")
	ErrFilterNotFound     = xerrors.New("Filter not found")
	ErrTooManyTopics      = xerrors.New("Too many topics")
	ErrMethodNotSupported = xerrors.New("Method not implemented")
	ErrInvalidTransaction = xerrors.New("Failed to parse transaction")
	ErrInvalidArgument    = xerrors.New("invalid argument")

	_ grpcError     = (*ServerError)(nil)
	_ fmt.Formatter = (*ServerError)(nil)
	_ error         = (*LogsLimitExceededError)(nil)
	_ error         = (*SubmitTransactionError)(nil)
	_ error         = (*InternalError)(nil)
)

func NewServerError(statusCode int, cause error) *ServerError {
	return &ServerError{
		statusCode: statusCode,
		cause:      cause,
	}
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("%v %v", e.statusCode, http.StatusText(e.statusCode))
	if e.cause != nil {
		msg = fmt.Sprintf("%v\n%v", msg, e.cause.Error())
	}

	return msg
}

// HTTPStatus is used as the status code of the HTTP response.
func (e *ServerError) HTTPStatus() int {
	return e.statusCode
}

func (e *ServerError) GRPCStatus() *status.Status {
	var code codes.Code
	switch e.statusCode {
	case http.StatusNotFound:
		code = codes.NotFound
	case http.StatusUnauthorized:
		code = codes.Unauthenticated
	case StatusCanceled:
		code = codes.Canceled
	default:
		if e.statusCode >= http.StatusBadRequest && e.statusCode < http.StatusInternalServerError {
			// Map the rest of 4xx to InvalidArgument, e.g.
			// - StatusBadRequest if "failed to read request"
			// - StatusMethodNotAllowed if method is PUT or DELETE
			// - StatusUnsupportedMediaType if content type is invalid
			code = codes.InvalidArgument
		} else {
			code = codes.Internal
		}
	}
	return status.New(code, e.Error())
}

// Format provides the "errorVerbose" field in Datadog.
func (e *ServerError) Format(state fmt.State, verb rune) {
	if verb == 'v' && state.Flag('+') {
		_, _ = fmt.Fprintf(state, "%v\n", e.Error())
		if e.cause != nil {
			_, _ = fmt.Fprintf(state, "%+v\n", e.cause)
		}
	}
}

func NewLogsLimitExceededError(limit int, fromBlock uint64, safeToBlock uint64) *LogsLimitExceededError {
	return &LogsLimitExceededError{
		Limit:       limit,
		FromBlock:   fromBlock,
		SafeToBlock: safeToBlock,
	}
}

func (e *LogsLimitExceededError) Error() string {
	return fmt.Sprintf("Query returned more than %d results. Try with this block range [%#x, %#x].", e.Limit, e.FromBlock, e.SafeToBlock)
}

func NewSubmitTransactionError(reason string, message string, data []byte) *SubmitTransactionError {
	return &SubmitTransactionError{
		Reason:  reason,
		Message: message,
		Data:    data,
	}
}

func (e *SubmitTransactionError) Error() string {
	return e.Message
}

// HexData returns the revert payload as a 0x-prefixed hex string, or an empty string if there is none.
func (e *SubmitTransactionError) HexData() string {
	if len(e.Data) == 0 {
		return ""
	}

	return "0x" + hex.EncodeToString(e.Data)
}

// NewInternalError wraps err with the method name, unless err already carries a user-visible kind.
func NewInternalError(method string, err error) error {
	if err == nil || IsUserError(err) {
		return err
	}

	var internalErr *InternalError
	if xerrors.As(err, &internalErr) {
		return err
	}

	return &InternalError{
		Method: method,
		cause:  err,
	}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%v: %v", e.Method, e.cause)
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

// IsUserError returns true if err is one of the structured kinds reported to the client as-is.
func IsUserError(err error) bool {
	var logsLimitErr *LogsLimitExceededError
	var submitErr *SubmitTransactionError
	return xerrors.Is(err, ErrNoBlock) ||
		xerrors.Is(err, ErrFilterNotFound) ||
		xerrors.Is(err, ErrTooManyTopics) ||
		xerrors.Is(err, ErrMethodNotSupported) ||
		xerrors.Is(err, ErrInvalidTransaction) ||
		xerrors.Is(err, ErrInvalidArgument) ||
		xerrors.As(err, &logsLimitErr) ||
		xerrors.As(err, &submitErr)
}
