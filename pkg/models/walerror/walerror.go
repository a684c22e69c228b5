package walerror

import (
	"errors"
	"fmt"
)

const (
	WAL_UNEXPECTED       = "WALU"
	WAL_POOL_CLOSED      = "WALPC"
	WAL_DISTRESSED       = "WALDS"
	WAL_NO_SUCH_TABLE    = "WALNT"
	WAL_TABLE_EXISTS     = "WALTE"
	WAL_TABLE_DROPPED    = "WALTD"
	WAL_CORRUPTED        = "WALCR"
	WAL_STORAGE_ERROR    = "WALST"
	WAL_METADATA_INVALID = "WALMD"
)

var existingErrorCodeMap = map[string]string{
	WAL_POOL_CLOSED:      "pool is closed",
	WAL_DISTRESSED:       "sequencer is distressed",
	WAL_NO_SUCH_TABLE:    "no such table",
	WAL_TABLE_EXISTS:     "table already exists",
	WAL_TABLE_DROPPED:    "table is dropped",
	WAL_CORRUPTED:        "sequencer state is corrupted",
	WAL_STORAGE_ERROR:    "storage error",
	WAL_METADATA_INVALID: "invalid metadata change",
}

func GetMessageByCode(errorCode string) string {
	rep, ok := existingErrorCodeMap[errorCode]
	if ok {
		return rep
	}
	return "Unexpected error"
}

var _ error = &WalError{}

type WalError struct {
	Err error

	ErrorCode string
}

func New(errorCode string, errorMsg string) *WalError {
	return &WalError{
		Err:       errors.New(errorMsg),
		ErrorCode: errorCode,
	}
}

func Newf(errorCode string, format string, a ...any) *WalError {
	return &WalError{
		Err:       fmt.Errorf(format, a...),
		ErrorCode: errorCode,
	}
}

func (er *WalError) Error() string {
	return fmt.Sprintf("Code: %s. Name: %s. Description: %s.",
		er.ErrorCode, GetMessageByCode(er.ErrorCode), er.Err)
}

func (er *WalError) Unwrap() error {
	return er.Err
}

// Is matches any *WalError carrying the same code.
func (er *WalError) Is(target error) bool {
	t, ok := target.(*WalError)
	if !ok {
		return false
	}
	return t.ErrorCode == er.ErrorCode
}

// HasCode reports whether err or anything it wraps is a *WalError with code.
func HasCode(err error, code string) bool {
	var we *WalError
	if !errors.As(err, &we) {
		return false
	}
	return we.ErrorCode == code
}
