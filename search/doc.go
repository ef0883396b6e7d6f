// Package search derives WHERE clauses from a bag of optional search
// parameters.
//
// A Builder reads values by name from a FieldSource and appends one
// predicate per filter to a where.Where. Filters whose value is blank are
// skipped:
//
//	b := search.New(search.Map{"first_name": "Tim", "age_min": 18})
//	_ = b.LikeOn("users.first_name")
//	_ = b.RangeOn("users.age", search.Cast(search.CastInt))
//	b.String() // (users.first_name like 'Tim%') AND (users.age >= 18)
package search
