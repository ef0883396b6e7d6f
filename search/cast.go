package search

import (
	"database/sql/driver"
	"reflect"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/coderi421/sift/internal/errs"
	"github.com/spf13/cast"
)

// CastKind 决定从 FieldSource 中读出来的值要转换成什么类型
type CastKind string

const (
	// CastNone 不做转换
	CastNone   CastKind = ""
	CastArray  CastKind = "array"
	CastTime   CastKind = "time"
	CastDate   CastKind = "date"
	CastInt    CastKind = "int"
	CastFloat  CastKind = "float"
	CastString CastKind = "string"
)

// ParseCastKind 支持 i, integer, f 这些别名
func ParseCastKind(s string) (CastKind, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CastNone, nil
	case "array":
		return CastArray, nil
	case "time":
		return CastTime, nil
	case "date":
		return CastDate, nil
	case "i", "int", "integer":
		return CastInt, nil
	case "f", "float":
		return CastFloat, nil
	case "string":
		return CastString, nil
	default:
		return "", errs.NewErrUnknownCastKind(s)
	}
}

func (k CastKind) valid() bool {
	switch k {
	case CastNone, CastArray, CastTime, CastDate, CastInt, CastFloat, CastString:
		return true
	}
	return false
}

// castTo converts val to kind. nil and blank strings are returned as nil
// so that the filter is skipped instead of failing to parse.
func castTo(val any, kind CastKind) (any, error) {
	if !kind.valid() {
		return nil, errs.NewErrUnknownCastKind(string(kind))
	}

	val, err := unwrapValuer(val)
	if err != nil {
		return nil, err
	}
	if isNil(val) {
		return nil, nil
	}
	if s, ok := val.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}

	switch kind {
	case CastArray:
		return toArray(val), nil
	case CastTime:
		return toTime(val)
	case CastDate:
		t, err := toTime(val)
		if err != nil {
			return nil, err
		}
		return civil.DateOf(t), nil
	case CastInt:
		i, err := cast.ToInt64E(decimalString(val))
		if err != nil {
			return nil, errs.NewErrMalformedValue(val, string(kind), err)
		}
		return i, nil
	case CastFloat:
		f, err := cast.ToFloat64E(val)
		if err != nil {
			return nil, errs.NewErrMalformedValue(val, string(kind), err)
		}
		return f, nil
	case CastString:
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, errs.NewErrMalformedValue(val, string(kind), err)
		}
		return s, nil
	default:
		return val, nil
	}
}

// decimalString 表单里的 "08" 按十进制处理，去掉前导的 0
// 否则 cast 会按 0 / 0x 前缀当成八进制或者十六进制
func decimalString(val any) any {
	s, ok := val.(string)
	if !ok {
		return val
	}
	s = strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}
	return sign + s
}

// toTime 没有时区信息的时间按 UTC 处理
func toTime(val any) (time.Time, error) {
	if d, ok := val.(civil.Date); ok {
		return d.In(time.UTC), nil
	}
	t, err := cast.ToTimeInDefaultLocationE(val, time.UTC)
	if err != nil {
		return time.Time{}, errs.NewErrMalformedTemporalValue(val, err)
	}
	return t, nil
}

// toArray 非切片的值会被包装成只有一个元素的切片
func toArray(val any) []any {
	if _, ok := val.([]byte); ok {
		return []any{val}
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{val}
	}
	res := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		res = append(res, rv.Index(i).Interface())
	}
	return res
}

func unwrapValuer(val any) (any, error) {
	v, ok := val.(driver.Valuer)
	if !ok {
		return val, nil
	}
	if isNil(v) {
		return nil, nil
	}
	return v.Value()
}

func isNil(val any) bool {
	if val == nil {
		return true
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func isList(val any) bool {
	if _, ok := val.([]byte); ok {
		return false
	}
	k := reflect.ValueOf(val).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// isBlank nil, 空白字符串，空的切片和 map 都是 blank
func isBlank(val any) bool {
	if isNil(val) {
		return true
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return len(v) == 0
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer:
		return isBlank(rv.Elem().Interface())
	}
	return false
}
