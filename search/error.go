package search

import "github.com/coderi421/sift/internal/errs"

// 将内部的 sentinel error 暴露出去
var (
	ErrUnknownCastKind        = errs.ErrUnknownCastKind
	ErrMalformedTemporalValue = errs.ErrMalformedTemporalValue
	ErrMalformedValue         = errs.ErrMalformedValue
	ErrPointerOnly            = errs.ErrPointerOnly
)
