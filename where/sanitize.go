package where

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/coderi421/sift/internal/errs"
)

const timeLayout = "2006-01-02 15:04:05.999999"

// sanitize 按顺序把 args 转成字面量替换掉 ? 占位符
// :name 占位符原样保留
func sanitize(d Dialect, tmpl string, args []any) (string, error) {
	t := parseTemplate(tmpl)
	if t.positional != len(args) {
		return "", errs.NewErrBindCount(len(args), t.positional)
	}

	var sb strings.Builder
	idx := 0
	for _, tk := range t.tokens {
		switch tk.kind {
		case tokenPositional:
			lit, err := formatValue(d, args[idx])
			if err != nil {
				return "", err
			}
			idx++
			sb.WriteString(lit)
		case tokenNamed:
			sb.WriteByte(':')
			sb.WriteString(tk.text)
		default:
			sb.WriteString(tk.text)
		}
	}
	return sb.String(), nil
}

// sanitizeNamed 把 :name 占位符替换成 params 中对应的值
// ? 占位符原样保留
func sanitizeNamed(d Dialect, tmpl string, params map[string]any) (string, error) {
	t := parseTemplate(tmpl)

	var sb strings.Builder
	for _, tk := range t.tokens {
		switch tk.kind {
		case tokenNamed:
			val, ok := params[tk.text]
			if !ok {
				return "", errs.NewErrMissingParam(tk.text)
			}
			lit, err := formatValue(d, val)
			if err != nil {
				return "", err
			}
			sb.WriteString(lit)
		default:
			sb.WriteString(tk.text)
		}
	}
	return sb.String(), nil
}

// formatValue 把 Go 的值转换成 SQL 字面量
// 切片会展开成逗号分隔的列表，空切片是 NULL
func formatValue(d Dialect, val any) (string, error) {
	switch v := val.(type) {
	case nil:
		return "NULL", nil
	case driver.Valuer:
		if isNil(v) {
			return "NULL", nil
		}
		dv, err := v.Value()
		if err != nil {
			return "", err
		}
		return formatValue(d, dv)
	case time.Time:
		return d.quoteString(v.Format(timeLayout)), nil
	case civil.Date:
		return d.quoteString(v.String()), nil
	case []byte:
		return d.quoteString(string(v)), nil
	case string:
		return d.quoteString(v), nil
	case bool:
		return d.boolLiteral(v), nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL", nil
		}
		return formatValue(d, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return formatList(d, rv)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.String:
		return d.quoteString(rv.String()), nil
	case reflect.Bool:
		return d.boolLiteral(rv.Bool()), nil
	}

	if s, ok := val.(fmt.Stringer); ok {
		return d.quoteString(s.String()), nil
	}
	return "", errs.NewErrUnsupportedValue(val)
}

func formatList(d Dialect, rv reflect.Value) (string, error) {
	if rv.Len() == 0 {
		return "NULL", nil
	}
	parts := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		lit, err := formatValue(d, rv.Index(i).Interface())
		if err != nil {
			return "", err
		}
		parts = append(parts, lit)
	}
	return strings.Join(parts, ","), nil
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

// isList []byte 被当成字符串，不是列表
func isList(val any) bool {
	if _, ok := val.([]byte); ok {
		return false
	}
	k := reflect.ValueOf(val).Kind()
	return k == reflect.Slice || k == reflect.Array
}
