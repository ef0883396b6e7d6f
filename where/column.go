package where

// Column 代表一个列名，可以带表名前缀，例如 users.first_name
// 列名原样输出，不会加引号
type Column struct {
	name string
}

func C(name string) Column {
	return Column{name: name}
}

func (c Column) Name() string {
	return c.name
}

// EQ 例如 C("id").EQ(12) -> id = 12
func (c Column) EQ(arg any) RawExpr {
	return c.binary("= ?", arg)
}

func (c Column) NEQ(arg any) RawExpr {
	return c.binary("<> ?", arg)
}

func (c Column) LT(arg any) RawExpr {
	return c.binary("< ?", arg)
}

func (c Column) LTE(arg any) RawExpr {
	return c.binary("<= ?", arg)
}

func (c Column) GT(arg any) RawExpr {
	return c.binary("> ?", arg)
}

func (c Column) GTE(arg any) RawExpr {
	return c.binary(">= ?", arg)
}

// Like 例如 C("name").Like("Tim%") -> name like 'Tim%'
func (c Column) Like(arg any) RawExpr {
	return c.binary("like ?", arg)
}

// In 例如 C("id").In([]int{1, 2}) -> id in (1,2)
func (c Column) In(arg any) RawExpr {
	return c.binary("in (?)", arg)
}

func (c Column) IsNull() RawExpr {
	return Raw(c.name + " IS NULL")
}

func (c Column) IsNotNull() RawExpr {
	return Raw(c.name + " IS NOT NULL")
}

// Op 使用任意操作符，operator 中需要包含一个 ? 占位符
func (c Column) Op(operator string, arg any) RawExpr {
	return c.binary(operator, arg)
}

func (c Column) binary(operator string, arg any) RawExpr {
	return Raw(c.name+" "+operator, arg)
}
