package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCastKind 代表未知的类型转换
	ErrUnknownCastKind = errors.New("sift: unknown cast kind")
	// ErrMalformedTemporalValue 代表无法解析成时间或者日期的值
	ErrMalformedTemporalValue = errors.New("sift: malformed temporal value")
	// ErrMalformedValue 代表无法转换成 int, float 或者 string 的值
	ErrMalformedValue = errors.New("sift: malformed value")

	ErrBindCount           = errors.New("sift: wrong number of bind variables")
	ErrMissingParam        = errors.New("sift: missing value for named bind variable")
	ErrUnsupportedValue    = errors.New("sift: unsupported value type")
	ErrUnsupportedCriteria = errors.New("sift: unsupported criteria type")
	ErrUnsupportedDriver   = errors.New("sift: unsupported driver")

	// ErrPointerOnly 只支持一级指针作为输入，例如 *User
	ErrPointerOnly = errors.New("sift: only pointer to struct is supported, e.g. *User")
)

func NewErrUnknownCastKind(kind string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCastKind, kind)
}

func NewErrMalformedTemporalValue(val any, err error) error {
	return fmt.Errorf("%w: %v: %v", ErrMalformedTemporalValue, val, err)
}

func NewErrMalformedValue(val any, kind string, err error) error {
	return fmt.Errorf("%w: cannot cast %v to %s: %v", ErrMalformedValue, val, kind, err)
}

// NewErrBindCount 占位符数量和参数数量不一致
func NewErrBindCount(got, want int) error {
	return fmt.Errorf("%w (%d for %d)", ErrBindCount, got, want)
}

func NewErrMissingParam(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingParam, name)
}

func NewErrUnsupportedValue(val any) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedValue, val)
}

func NewErrUnsupportedCriteria(criteria any) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedCriteria, criteria)
}

func NewErrUnsupportedDriver(name string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedDriver, name)
}

func NewErrInvalidTagContent(pair string) error {
	return fmt.Errorf("sift: invalid tag content %s", pair)
}
