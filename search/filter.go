package search

import (
	"strings"

	"github.com/coderi421/sift/internal/errs"
	"github.com/coderi421/sift/where"
	"github.com/gotomicro/ekit/slice"
	"github.com/spf13/cast"
)

// filterSpec 一次过滤调用的参数，只在调用期间存在
type filterSpec struct {
	// param 读取值时使用的名字，默认和字段名一样
	param    string
	minParam string
	maxParam string

	cast    CastKind
	hasCast bool

	prefix    string
	hasPrefix bool
	suffix    string
	hasSuffix bool
}

type FilterOption func(spec *filterSpec)

// Param 从另一个参数读取值，例如 EqualOn("users.name", Param("q"))
func Param(name string) FilterOption {
	return func(spec *filterSpec) {
		spec.param = name
	}
}

// MinParam 只对 RangeOn 有效，默认是 <param>_min
func MinParam(name string) FilterOption {
	return func(spec *filterSpec) {
		spec.minParam = name
	}
}

// MaxParam 只对 RangeOn 有效，默认是 <param>_max
func MaxParam(name string) FilterOption {
	return func(spec *filterSpec) {
		spec.maxParam = name
	}
}

func Cast(kind CastKind) FilterOption {
	return func(spec *filterSpec) {
		spec.cast = kind
		spec.hasCast = true
	}
}

// Prefix 拼接在值前面，例如 LikeOn("name", Prefix("%")) 用于包含查询
func Prefix(s string) FilterOption {
	return func(spec *filterSpec) {
		spec.prefix = s
		spec.hasPrefix = true
	}
}

// Suffix LikeOn 默认是 %
func Suffix(s string) FilterOption {
	return func(spec *filterSpec) {
		spec.suffix = s
		spec.hasSuffix = true
	}
}

func newFilterSpec(opts []FilterOption) filterSpec {
	var spec filterSpec
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

// EqualOn appends "<field> = ?". The value is always cast to string.
func (b *Builder) EqualOn(field string, opts ...FilterOption) error {
	spec := newFilterSpec(opts)
	spec.cast = CastString
	spec.hasCast = true
	return b.process(field, "= ?", spec)
}

// LikeOn appends "<field> like ?" with the value suffixed by % unless
// Suffix says otherwise.
func (b *Builder) LikeOn(field string, opts ...FilterOption) error {
	spec := newFilterSpec(opts)
	if !spec.hasSuffix {
		spec.suffix = "%"
		spec.hasSuffix = true
	}
	return b.process(field, "like ?", spec)
}

// InOn appends "<field> in (?)". The value is cast to an array by default.
func (b *Builder) InOn(field string, opts ...FilterOption) error {
	spec := newFilterSpec(opts)
	if !spec.hasCast {
		spec.cast = CastArray
		spec.hasCast = true
	}
	return b.process(field, "in (?)", spec)
}

// RangeOn appends "<field> >= ?" and "<field> <= ?" read from <param>_min
// and <param>_max. Each bound is skipped on its own when blank.
func (b *Builder) RangeOn(field string, opts ...FilterOption) error {
	spec := newFilterSpec(opts)
	base := spec.param
	if base == "" {
		base = field
	}

	minSpec := spec
	minSpec.param = spec.minParam
	if minSpec.param == "" {
		minSpec.param = base + "_min"
	}
	if err := b.process(field, ">= ?", minSpec); err != nil {
		return err
	}

	maxSpec := spec
	maxSpec.param = spec.maxParam
	if maxSpec.param == "" {
		maxSpec.param = base + "_max"
	}
	return b.process(field, "<= ?", maxSpec)
}

// On appends "<field> <operator>" where operator contains one placeholder,
// e.g. On("users.age", "> ?", Cast(CastInt)).
func (b *Builder) On(field, operator string, opts ...FilterOption) error {
	return b.process(field, operator, newFilterSpec(opts))
}

func (b *Builder) process(field, operator string, spec filterSpec) error {
	param := spec.param
	if param == "" {
		param = field
	}
	val, err := b.valueFor(param, spec.cast)
	if err != nil {
		b.logger.Warn().Err(err).Str("field", field).Str("param", param).Msg("search: cast value failed")
		return err
	}
	return b.andUnlessBlank(where.C(b.prefix+field), operator, val, spec)
}

// andUnlessBlank 值为空的时候不追加任何条件
func (b *Builder) andUnlessBlank(col where.Column, operator string, val any, spec filterSpec) error {
	if isList(val) {
		val = slice.FilterMap(toArray(val), func(_ int, src any) (any, bool) {
			return src, !isBlank(src)
		})
	}
	if isBlank(val) {
		b.logger.Debug().Str("column", col.Name()).Str("operator", operator).Msg("search: blank value, filter skipped")
		return nil
	}

	if spec.hasPrefix || spec.hasSuffix {
		s, err := cast.ToStringE(val)
		if err != nil {
			return errs.NewErrMalformedValue(val, string(CastString), err)
		}
		val = spec.prefix + s + spec.suffix
	}

	before := b.where.Err()
	b.where.And(col.Op(operator, val))
	if err := b.where.Err(); err != nil && before == nil {
		return err
	}
	return nil
}

// valueFor users.first_name 只使用最后一段 first_name 读取值
func (b *Builder) valueFor(param string, kind CastKind) (any, error) {
	// 没有值的时候也要报告错误的 cast
	if !kind.valid() {
		return nil, errs.NewErrUnknownCastKind(string(kind))
	}
	if idx := strings.LastIndexByte(param, '.'); idx >= 0 {
		param = param[idx+1:]
	}
	if b.src == nil {
		return nil, nil
	}
	val, ok := b.src.Field(param)
	if !ok {
		return nil, nil
	}
	return castTo(val, kind)
}
