// Package errors provides pilot's structured application error, carrying one
// of the spec's stable numeric error codes (spec.md §6) alongside a slug and
// a human message.
package errors

import "fmt"

// Stable numeric error codes (spec.md §6). Values are part of the public
// contract and must never change.
const (
	NoError                  = 0
	WrongParam               = 2
	NoMem                    = 3
	IO                       = 5
	UnknownHook              = 6
	NotInit                  = 11
	WLFail                   = 12
	StoppedByDurationLimit   = 13
	StoppedByHook            = 14
	StoppedByRequest         = 15
	TooManyRejectedRounds    = 20
	NotEnoughData            = 30
	NotEnoughDataForCI       = 31
	NoDominantSegment        = 32
	RoundTooShort            = 33
	NoChangepoint            = 34
	NotImpl                  = 200
	LinkedWrongVer           = 201
)

// Messages is the "global error-message map" spec.md §7 requires, so an
// embedding layer can print a human string for any numeric code.
var Messages = map[int]string{
	NoError:                "no error",
	WrongParam:             "invalid parameter",
	NoMem:                  "out of memory",
	IO:                     "I/O error",
	UnknownHook:            "unknown hook",
	NotInit:                "workload not initialized",
	WLFail:                 "workload callback failed",
	StoppedByDurationLimit: "session stopped: duration limit reached",
	StoppedByHook:          "session stopped: hook returned false",
	StoppedByRequest:       "session stopped: stop requested",
	TooManyRejectedRounds:  "too many consecutive rejected rounds",
	NotEnoughData:          "not enough data",
	NotEnoughDataForCI:     "not enough data to satisfy confidence interval",
	NoDominantSegment:      "no dominant segment found",
	RoundTooShort:          "round duration below short-round threshold",
	NoChangepoint:          "no significant change-point found",
	NotImpl:                "not implemented",
	LinkedWrongVer:         "linked against incompatible library version",
}

// AppError is pilot's structured application error.
type AppError struct {
	// NumericCode is the stable numeric code from spec.md §6.
	NumericCode int
	// Code is a human-readable slug for the numeric code (e.g. "NOT_ENOUGH_DATA").
	Code string
	// Message is a human-readable description with call-site context.
	Message string
	// Cause is the wrapped underlying error, if any.
	Cause error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is/errors.As.
func (e *AppError) Unwrap() error { return e.Cause }

// New creates an AppError carrying the given numeric code and slug.
func New(numericCode int, code, message string) *AppError {
	return &AppError{NumericCode: numericCode, Code: code, Message: message}
}

// Wrap attaches additional context to err, preserving its numeric code when
// err is already an *AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{NumericCode: appErr.NumericCode, Code: appErr.Code, Message: message, Cause: appErr}
	}
	return &AppError{NumericCode: WrongParam, Code: "WRONG_PARAM", Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Code constructs an AppError for one of the stable numeric codes above,
// looking up its slug and default message from Messages.
func Code(numericCode int) *AppError {
	return &AppError{NumericCode: numericCode, Code: slug(numericCode), Message: Messages[numericCode]}
}

// Codef is Code with a formatted message overriding the default one.
func Codef(numericCode int, format string, args ...interface{}) *AppError {
	e := Code(numericCode)
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// GetNumericCode returns the numeric code if err is an *AppError, else -1.
func GetNumericCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.NumericCode
	}
	return -1
}

// Is reports whether err is an *AppError with the given numeric code.
func Is(err error, numericCode int) bool {
	return GetNumericCode(err) == numericCode
}

func slug(numericCode int) string {
	switch numericCode {
	case NoError:
		return "NO_ERROR"
	case WrongParam:
		return "WRONG_PARAM"
	case NoMem:
		return "NOMEM"
	case IO:
		return "IO"
	case UnknownHook:
		return "UNKNOWN_HOOK"
	case NotInit:
		return "NOT_INIT"
	case WLFail:
		return "WL_FAIL"
	case StoppedByDurationLimit:
		return "STOPPED_BY_DURATION_LIMIT"
	case StoppedByHook:
		return "STOPPED_BY_HOOK"
	case StoppedByRequest:
		return "STOPPED_BY_REQUEST"
	case TooManyRejectedRounds:
		return "TOO_MANY_REJECTED_ROUNDS"
	case NotEnoughData:
		return "NOT_ENOUGH_DATA"
	case NotEnoughDataForCI:
		return "NOT_ENOUGH_DATA_FOR_CI"
	case NoDominantSegment:
		return "NO_DOMINANT_SEGMENT"
	case RoundTooShort:
		return "ROUND_TOO_SHORT"
	case NoChangepoint:
		return "NO_CHANGEPOINT"
	case NotImpl:
		return "NOT_IMPL"
	case LinkedWrongVer:
		return "LINKED_WRONG_VER"
	default:
		return "UNKNOWN"
	}
}
