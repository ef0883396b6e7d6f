package where

import "strings"

// Mode 决定渲染的形式
type Mode uint8

const (
	// Plain 只输出条件表达式，空的 Where 输出 true
	Plain Mode = iota
	// WhereClause 输出 " WHERE <expr>"，空的 Where 输出空字符串
	WhereClause
)

const tautology = "true"

// Render renders the clauses in insertion order. It returns the first
// error recorded while appending criteria. A nil Where renders as empty.
func (w *Where) Render(mode Mode) (string, error) {
	if err := w.Err(); err != nil {
		return "", w.err
	}
	return w.render(mode), nil
}

// ToSQL 等价于 Render(Plain)
func (w *Where) ToSQL() (string, error) {
	return w.Render(Plain)
}

// ToWhereSQL 等价于 Render(WhereClause)
func (w *Where) ToWhereSQL() (string, error) {
	return w.Render(WhereClause)
}

// String renders the Where in Plain mode, ignoring any recorded error.
// Criteria that failed to append are simply absent.
func (w *Where) String() string {
	return w.render(Plain)
}

func (w *Where) render(mode Mode) string {
	var sb strings.Builder
	if mode == WhereClause {
		// 类似这种可有可无的部分，都要在前面加一个空格
		if w.IsEmpty() {
			return ""
		}
		sb.WriteString(" WHERE ")
	}
	w.build(&sb)
	return sb.String()
}

// build 第一个 clause 不输出连接词，但是取反的要输出 NOT
// 之后的 clause 输出 " <conj> (<content>)"
func (w *Where) build(sb *strings.Builder) {
	if w.IsEmpty() {
		sb.WriteString(tautology)
		return
	}
	for i, c := range w.clauses {
		if i == 0 {
			if c.conj.negated() {
				sb.WriteString("NOT ")
			}
		} else {
			sb.WriteByte(' ')
			sb.WriteString(c.conj.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('(')
		buildExpression(sb, c.content)
		sb.WriteByte(')')
	}
}

func buildExpression(sb *strings.Builder, e Expression) {
	switch expr := e.(type) {
	case Literal:
		sb.WriteString(string(expr))
	case *Where:
		// 嵌套的 Where 先完整渲染，外面的括号由调用方负责
		expr.build(sb)
	}
}
