package where

// Expression 代表一个 clause 中可以渲染的片段
// 只有 Literal 和 *Where 两种
type Expression interface {
	expr()
}

// Literal 是已经把值嵌入进去的条件片段，不会再做任何处理
type Literal string

func (Literal) expr() {}

func (w *Where) expr() {}

// RawExpr 代表一个带占位符的原生表达式
// 追加到 Where 的时候，args 会通过 Sanitizer 替换进 raw
type RawExpr struct {
	raw  string
	args []any
}

// Raw 创建一个 RawExpr
func Raw(expr string, args ...any) RawExpr {
	return RawExpr{
		raw:  expr,
		args: args,
	}
}

func (r RawExpr) Template() string {
	return r.raw
}

func (r RawExpr) Args() []any {
	return r.args
}
