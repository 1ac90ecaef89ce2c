package iosource

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/errcode"
)

// FetchError is a failed upstream request: a network error or a
// response with a non-2xx status. StatusCode is 0 for network errors.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Code gives the error code of FetchError for user-facing reports.
func (e *FetchError) Code() gn.ErrorCode {
	return errcode.SourceFetchError
}

func DecodeError(url string, err error) error {
	msg := "Cannot decode response of <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: decode %s: %w", fn.Name(), url, err),
	}
}

func CacheError(path string, err error) error {
	msg := "Cannot open response cache <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cache %s: %w", fn.Name(), path, err),
	}
}
