package search

import (
	"reflect"
)

// FieldSource 按名字读取搜索参数
// 第二个返回值为 false 代表没有这个字段
type FieldSource interface {
	Field(name string) (any, bool)
}

// Map 把 map 当成 FieldSource
type Map map[string]any

func (m Map) Field(name string) (any, bool) {
	val, ok := m[name]
	return val, ok
}

// Func 把一个函数当成 FieldSource
type Func func(name string) (any, bool)

func (f Func) Field(name string) (any, bool) {
	return f(name)
}

// structSource 通过反射读取结构体的字段
type structSource struct {
	val  reflect.Value
	meta *structMeta
}

// Struct wraps a pointer to a struct. Fields are looked up by their
// `search:"param=..."` tag, their snake_case name or their Go name.
func Struct(ptr any) (FieldSource, error) {
	meta, err := defaultRegistry.get(ptr)
	if err != nil {
		return nil, err
	}
	return &structSource{
		val:  reflect.ValueOf(ptr).Elem(),
		meta: meta,
	}, nil
}

func (s *structSource) Field(name string) (any, bool) {
	fd, ok := s.meta.fields[name]
	if !ok {
		return nil, false
	}
	return s.val.FieldByIndex(fd.index).Interface(), true
}

// SourceOf accepts a FieldSource, a map[string]any or a pointer to a struct.
func SourceOf(v any) (FieldSource, error) {
	switch src := v.(type) {
	case FieldSource:
		return src, nil
	case map[string]any:
		return Map(src), nil
	default:
		return Struct(v)
	}
}
