package search

import (
	"github.com/coderi421/sift/where"
	"github.com/rs/zerolog"
)

// Option 用于配置 Builder
type Option func(b *Builder)

// AppendTo 把条件追加到已有的 Where 上，默认会创建一个新的
func AppendTo(w *where.Where) Option {
	return func(b *Builder) {
		b.where = w
	}
}

// WithDialect 只在没有使用 AppendTo 的时候生效
func WithDialect(d where.Dialect) Option {
	return func(b *Builder) {
		b.dialect = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// Builder 从 FieldSource 中读取搜索参数，拼接成 WHERE 条件
// 和 where.Where 一样，不是并发安全的
type Builder struct {
	src     FieldSource
	where   *where.Where
	dialect where.Dialect
	logger  zerolog.Logger
	// prefix 当前的表名前缀，例如 "users."
	prefix string
}

func New(src FieldSource, opts ...Option) *Builder {
	b := &Builder{
		src:    src,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.where == nil {
		if b.dialect != nil {
			b.where = where.New(where.WithDialect(b.dialect))
		} else {
			b.where = where.New()
		}
	}
	return b
}

// NewFrom is like New but accepts anything SourceOf accepts.
func NewFrom(v any, opts ...Option) (*Builder, error) {
	src, err := SourceOf(v)
	if err != nil {
		return nil, err
	}
	return New(src, opts...), nil
}

// ForTable 设置表名前缀，直到下一次调用 ForTable 之前都有效
// 传入空字符串会清掉前缀
func (b *Builder) ForTable(table string) *Builder {
	b.setTable(table)
	return b
}

// Within sets the table prefix for the filters added by fn only. The
// previous prefix is restored when fn returns, even if it fails.
func (b *Builder) Within(table string, fn func(b *Builder) error) error {
	last := b.prefix
	defer func() {
		b.prefix = last
	}()
	b.setTable(table)
	return fn(b)
}

func (b *Builder) TablePrefix() string {
	return b.prefix
}

func (b *Builder) setTable(table string) {
	if table == "" {
		b.prefix = ""
		return
	}
	b.prefix = table + "."
}

// Where returns the destination Where.
func (b *Builder) Where() *where.Where {
	return b.where
}

func (b *Builder) And(criteria any, args ...any) *Builder {
	b.where.And(criteria, args...)
	return b
}

func (b *Builder) Or(criteria any, args ...any) *Builder {
	b.where.Or(criteria, args...)
	return b
}

func (b *Builder) IsEmpty() bool {
	return b.where.IsEmpty()
}

func (b *Builder) ToSQL() (string, error) {
	return b.where.ToSQL()
}

func (b *Builder) ToWhereSQL() (string, error) {
	return b.where.ToWhereSQL()
}

func (b *Builder) String() string {
	return b.where.String()
}
