package where

import (
	lru "github.com/hashicorp/golang-lru"
)

type tokenKind uint8

const (
	tokenText tokenKind = iota
	tokenPositional
	tokenNamed
)

type token struct {
	kind tokenKind
	// text 对于 tokenNamed 是参数名，不包含冒号
	text string
}

// parsedTemplate 是切分好的模板，同一个模板会被反复使用，所以缓存起来
type parsedTemplate struct {
	tokens     []token
	positional int
	named      int
}

const templateCacheSize = 512

// lru.Cache 本身是并发安全的
var templateCache, _ = lru.New(templateCacheSize)

func parseTemplate(s string) *parsedTemplate {
	if val, ok := templateCache.Get(s); ok {
		return val.(*parsedTemplate)
	}
	t := tokenize(s)
	templateCache.Add(s, t)
	return t
}

// tokenize 切分出 ? 和 :name 占位符
// 单引号字符串，双引号和反引号标识符里面的内容，以及 PostgreSQL 的 :: 类型转换都按普通文本处理
func tokenize(s string) *parsedTemplate {
	t := &parsedTemplate{}
	start := 0
	// quote 是当前所在的引号，0 代表不在引号里面
	var quote byte
	flush := func(end int) {
		if end > start {
			t.tokens = append(t.tokens, token{kind: tokenText, text: s[start:end]})
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '?':
			flush(i)
			t.tokens = append(t.tokens, token{kind: tokenPositional, text: "?"})
			t.positional++
			start = i + 1
		case c == ':':
			if i+1 < len(s) && s[i+1] == ':' {
				i++
				continue
			}
			if i+1 >= len(s) || !isNameStart(s[i+1]) {
				continue
			}
			j := i + 1
			for j < len(s) && isNamePart(s[j]) {
				j++
			}
			flush(i)
			t.tokens = append(t.tokens, token{kind: tokenNamed, text: s[i+1 : j]})
			t.named++
			start = j
			i = j - 1
		}
	}
	flush(len(s))
	return t
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNamePart(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '_'
}
