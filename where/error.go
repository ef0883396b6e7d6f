package where

import "github.com/coderi421/sift/internal/errs"

// 将内部的 sentinel error 暴露出去
var (
	ErrBindCount           = errs.ErrBindCount
	ErrMissingParam        = errs.ErrMissingParam
	ErrUnsupportedValue    = errs.ErrUnsupportedValue
	ErrUnsupportedCriteria = errs.ErrUnsupportedCriteria
	ErrUnsupportedDriver   = errs.ErrUnsupportedDriver
)
