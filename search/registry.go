package search

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/coderi421/sift/internal/errs"
)

const (
	tagSearch   = "search"
	tagKeyParam = "param"
)

type field struct {
	// param 读取搜索参数时使用的名字
	param  string
	goName string
	index  []int
}

type structMeta struct {
	// fields 同时用 param 和 Go 字段名作为 key
	fields map[string]*field
}

// registry 缓存结构体的元数据，reflect.Type 作为 key 可以避免重名的问题
type registry struct {
	metas sync.Map
}

var defaultRegistry = &registry{}

func (r *registry) get(val any) (*structMeta, error) {
	typ := reflect.TypeOf(val)
	m, ok := r.metas.Load(typ)
	if ok {
		return m.(*structMeta), nil
	}

	meta, err := r.parse(typ)
	if err != nil {
		return nil, err
	}
	r.metas.Store(typ, meta)
	return meta, nil
}

// parse 只支持一级指针，例如 *User
// search:"param=first_name"，search:"-" 代表忽略这个字段
func (r *registry) parse(typ reflect.Type) (*structMeta, error) {
	if typ == nil || typ.Kind() != reflect.Pointer || typ.Elem().Kind() != reflect.Struct {
		return nil, errs.ErrPointerOnly
	}
	typ = typ.Elem()

	numField := typ.NumField()
	fds := make(map[string]*field, numField*2)
	for i := 0; i < numField; i++ {
		fdStruct := typ.Field(i)
		if !fdStruct.IsExported() {
			continue
		}
		raw := fdStruct.Tag.Get(tagSearch)
		if raw == "-" {
			continue
		}
		tags, err := r.parseTag(raw)
		if err != nil {
			return nil, err
		}

		param := tags[tagKeyParam]
		if param == "" {
			// CreatedAtMin -> created_at_min
			param = underscoreName(fdStruct.Name)
		}
		f := &field{
			param:  param,
			goName: fdStruct.Name,
			index:  fdStruct.Index,
		}
		fds[f.goName] = f
		fds[f.param] = f
	}
	return &structMeta{fields: fds}, nil
}

func (r *registry) parseTag(tag string) (map[string]string, error) {
	if tag == "" {
		return map[string]string{}, nil
	}
	res := make(map[string]string, 1)
	pairs := strings.Split(tag, ",")
	for _, pair := range pairs {
		kv := strings.Split(pair, "=")
		if len(kv) != 2 {
			return nil, errs.NewErrInvalidTagContent(pair)
		}
		res[kv[0]] = kv[1]
	}
	return res, nil
}

// underscoreName UserName -> user_name, UserID -> user_id
// 连续的大写字母当成一个缩写，HTTPServer -> http_server
func underscoreName(name string) string {
	runes := []rune(name)
	buf := make([]rune, 0, len(runes)+4)
	for i, v := range runes {
		if unicode.IsUpper(v) {
			if i != 0 && (!unicode.IsUpper(runes[i-1]) ||
				i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				buf = append(buf, '_')
			}
			buf = append(buf, unicode.ToLower(v))
		} else {
			buf = append(buf, v)
		}
	}
	return string(buf)
}
