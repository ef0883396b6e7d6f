package where

import (
	"sort"
	"strings"

	"github.com/coderi421/sift/internal/errs"
	"github.com/gotomicro/ekit/mapx"
)

// Option 用于配置 Where
type Option func(w *Where)

// WithDialect 指定把值转换成 SQL 字面量时使用的方言，默认是 Standard
func WithDialect(d Dialect) Option {
	return func(w *Where) {
		w.sanitizer = d
	}
}

// WithSanitizer 使用自定义的 Sanitizer，例如数据库驱动提供的转义方法
func WithSanitizer(s Sanitizer) Option {
	return func(w *Where) {
		w.sanitizer = s
	}
}

// WithDefaultParams 设置默认的命名参数
// 没有传参数的条件，例如 "x = :x"，会使用这里的值
func WithDefaultParams(params map[string]any) Option {
	return func(w *Where) {
		w.defaultParams = params
	}
}

type clause struct {
	conj    conjunction
	content Expression
}

// Where 是一组按插入顺序排列的条件
// 不是并发安全的
type Where struct {
	clauses       []clause
	sanitizer     Sanitizer
	defaultParams map[string]any
	// err 记录第一次追加失败的原因，在 Render 的时候返回
	err error
}

// New creates an empty Where. An empty Where renders as "true".
func New(opts ...Option) *Where {
	w := &Where{
		sanitizer: Standard,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Of creates a Where with criteria as its first clause.
//
//	where.Of("x = ?", 5).String() // (x = 5)
func Of(criteria any, args ...any) *Where {
	return New().And(criteria, args...)
}

// Scoped creates a Where and passes it to fn before returning it.
func Scoped(fn func(w *Where), opts ...Option) *Where {
	w := New(opts...)
	fn(w)
	return w
}

// All 用 AND 把多个 Where 组合成一个新的 Where，每个都是一个分组
func All(ws ...*Where) *Where {
	res := New()
	for _, w := range ws {
		res.And(w)
	}
	return res
}

// Any 用 OR 把多个 Where 组合成一个新的 Where
func Any(ws ...*Where) *Where {
	res := New()
	for _, w := range ws {
		res.Or(w)
	}
	return res
}

// Not 创建一个只包含取反条件的 Where
func Not(criteria any, args ...any) *Where {
	return New().AndNot(criteria, args...)
}

// And appends criteria joined with AND. criteria can be:
//   - string: used as is without args, sanitized with args. A single
//     map[string]any arg binds :name placeholders.
//   - Literal or RawExpr
//   - *Where: appended as one parenthesized group
//   - func(*Where): populates a fresh child Where that is appended as a group
//   - map[string]any: each pair becomes key = value, joined by AND
//   - []any or []string: the first element is the criteria, the rest are its args
//
// Blank criteria are ignored.
func (w *Where) And(criteria any, args ...any) *Where {
	return w.append(conjAND, criteria, args)
}

func (w *Where) Or(criteria any, args ...any) *Where {
	return w.append(conjOR, criteria, args)
}

// AndNot 追加 AND NOT 条件，如果是第一个条件只输出 NOT
func (w *Where) AndNot(criteria any, args ...any) *Where {
	return w.append(conjANDNOT, criteria, args)
}

func (w *Where) OrNot(criteria any, args ...any) *Where {
	return w.append(conjORNOT, criteria, args)
}

// IsEmpty reports whether no clause has been appended.
func (w *Where) IsEmpty() bool {
	return w == nil || len(w.clauses) == 0
}

func (w *Where) Len() int {
	if w == nil {
		return 0
	}
	return len(w.clauses)
}

// Err returns the first error met while appending criteria.
func (w *Where) Err() error {
	if w == nil {
		return nil
	}
	return w.err
}

func (w *Where) append(conj conjunction, criteria any, args []any) *Where {
	e, err := w.expressionOf(criteria, args)
	if err != nil {
		if w.err == nil {
			w.err = err
		}
		return w
	}
	// 空的条件直接忽略
	if e == nil {
		return w
	}
	w.clauses = append(w.clauses, clause{
		conj:    conj,
		content: e,
	})
	return w
}

// expressionOf 把各种形式的 criteria 统一转换成 Expression
// 返回 nil 代表这是一个空条件
func (w *Where) expressionOf(criteria any, args []any) (Expression, error) {
	switch c := criteria.(type) {
	case nil:
		return nil, nil
	case string:
		return w.templateExpr(c, args)
	case Literal:
		if isBlankString(string(c)) {
			return nil, nil
		}
		// Literal 原样输出，不接受参数
		if len(args) > 0 {
			return nil, errs.NewErrBindCount(len(args), 0)
		}
		return c, nil
	case RawExpr:
		return w.templateExpr(c.raw, append(c.args[:len(c.args):len(c.args)], args...))
	case *Where:
		return groupOf(c)
	case func(*Where):
		if c == nil {
			return nil, nil
		}
		child := w.child()
		c(child)
		return groupOf(child)
	case map[string]any:
		return w.hashExpr(c)
	case []any:
		return w.listExpr(c, args)
	case []string:
		list := make([]any, 0, len(c))
		for _, v := range c {
			list = append(list, v)
		}
		return w.listExpr(list, args)
	default:
		return nil, errs.NewErrUnsupportedCriteria(criteria)
	}
}

// listExpr 第一个元素是 criteria，剩下的是它的参数
// 空的或者全部都是空白的列表直接忽略
func (w *Where) listExpr(list []any, args []any) (Expression, error) {
	blank := true
	for _, v := range list {
		if !isBlankCriteria(v) {
			blank = false
			break
		}
	}
	if blank {
		return nil, nil
	}
	params := make([]any, 0, len(list)-1+len(args))
	params = append(params, list[1:]...)
	params = append(params, args...)
	return w.expressionOf(list[0], params)
}

// groupOf 被追加的 Where 会被复制一份，之后再修改它不会影响当前的 Where
func groupOf(g *Where) (Expression, error) {
	if g == nil {
		return nil, nil
	}
	if g.err != nil {
		return nil, g.err
	}
	if g.IsEmpty() {
		return nil, nil
	}
	return g.clone(), nil
}

func (w *Where) templateExpr(template string, args []any) (Expression, error) {
	if isBlankString(template) {
		return nil, nil
	}
	var (
		res string
		err error
	)
	switch {
	case len(args) == 0 && len(w.defaultParams) == 0:
		return Literal(template), nil
	case len(args) == 0:
		res, err = w.sanitizer.SanitizeNamed(template, w.defaultParams)
	case len(args) == 1:
		if params, ok := args[0].(map[string]any); ok {
			res, err = w.sanitizer.SanitizeNamed(template, w.mergeParams(params))
			break
		}
		res, err = w.sanitizer.Sanitize(template, args)
	default:
		res, err = w.sanitizer.Sanitize(template, args)
	}
	if err != nil {
		return nil, err
	}
	return Literal(res), nil
}

// hashExpr {"a": 1, "b": nil} -> a = 1 AND b IS NULL
// key 按字典序排列，保证输出稳定
func (w *Where) hashExpr(m map[string]any) (Expression, error) {
	if len(m) == 0 {
		return nil, nil
	}
	keys := mapx.Keys(m)
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		val := m[k]
		if isNil(val) {
			parts = append(parts, k+" IS NULL")
			continue
		}
		tmpl := k + " = ?"
		if isList(val) {
			tmpl = k + " IN (?)"
		}
		s, err := w.sanitizer.Sanitize(tmpl, []any{val})
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return Literal(strings.Join(parts, " AND ")), nil
}

func (w *Where) mergeParams(params map[string]any) map[string]any {
	if len(w.defaultParams) == 0 {
		return params
	}
	res := make(map[string]any, len(w.defaultParams)+len(params))
	for k, v := range w.defaultParams {
		res[k] = v
	}
	for k, v := range params {
		res[k] = v
	}
	return res
}

// child 创建一个继承当前配置的 Where
func (w *Where) child() *Where {
	return &Where{
		sanitizer:     w.sanitizer,
		defaultParams: w.defaultParams,
	}
}

func (w *Where) clone() *Where {
	res := w.child()
	res.clauses = append([]clause(nil), w.clauses...)
	return res
}

func isBlankString(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isBlankCriteria(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case string:
		return isBlankString(c)
	case Literal:
		return isBlankString(string(c))
	case []any:
		for _, e := range c {
			if !isBlankCriteria(e) {
				return false
			}
		}
		return true
	}
	return false
}
