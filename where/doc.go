// Package where 用来拼接 SQL WHERE 子句中的条件。
//
// A Where is an ordered list of clauses. Each clause carries a conjunction
// (AND, OR, AND NOT, OR NOT) relative to the clauses before it and a fragment
// that is either a literal-embedded predicate or a nested Where:
//
//	sql := where.Of("x = ?", 5).And(where.Of("x = ?", 6).Or("x = ?", 7)).String()
//	// (x = 5) AND ((x = 6) OR (x = 7))
//
// Blank criteria (nil, blank strings, empty trees) are ignored, so optional
// filters can be appended without checking them first:
//
//	w := where.New()
//	w.And("users.first_name like ?", firstName+"%")
//	w.And(statusTree) // no-op when statusTree is empty
//
// An empty Where renders as the tautology "true".
package where
