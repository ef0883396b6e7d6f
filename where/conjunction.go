package where

// conjunction 决定一个 clause 如何和前面的 clause 连接
type conjunction string

const (
	conjAND    conjunction = "AND"
	conjOR     conjunction = "OR"
	conjANDNOT conjunction = "AND NOT"
	conjORNOT  conjunction = "OR NOT"
)

func (c conjunction) String() string {
	return string(c)
}

// negated 第一个 clause 不输出 AND / OR，但是 NOT 依旧要保留
func (c conjunction) negated() bool {
	return c == conjANDNOT || c == conjORNOT
}
