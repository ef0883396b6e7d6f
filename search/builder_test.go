package search

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/coderi421/sift/where"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Filters(t *testing.T) {
	testCases := []struct {
		name   string
		src    Map
		filter func(b *Builder) error
		want   string
	}{
		{
			name: "date range",
			src: Map{
				"created_at_min": "2007-01-02 05:30:00",
				"created_at_max": "2007-01-05 05:30:00",
			},
			filter: func(b *Builder) error {
				return b.RangeOn("proposals.created_at", Cast(CastDate))
			},
			want: "(proposals.created_at >= '2007-01-02') AND (proposals.created_at <= '2007-01-05')",
		},
		{
			name: "date range without values",
			src:  Map{},
			filter: func(b *Builder) error {
				return b.RangeOn("users.created_at", Cast(CastDate))
			},
			want: "true",
		},
		{
			name: "int range with leading zeros",
			src:  Map{"age_min": "08", "age_max": "065"},
			filter: func(b *Builder) error {
				return b.RangeOn("users.age", Cast(CastInt))
			},
			want: "(users.age >= 8) AND (users.age <= 65)",
		},
		{
			name: "range with min only",
			src:  Map{"age_min": "18"},
			filter: func(b *Builder) error {
				return b.RangeOn("users.age", Cast(CastInt))
			},
			want: "(users.age >= 18)",
		},
		{
			name: "range with max only",
			src:  Map{"age_min": "", "age_max": 65},
			filter: func(b *Builder) error {
				return b.RangeOn("users.age")
			},
			want: "(users.age <= 65)",
		},
		{
			name: "range with param",
			src:  Map{"years_min": 1, "years_max": 3},
			filter: func(b *Builder) error {
				return b.RangeOn("users.age", Param("years"))
			},
			want: "(users.age >= 1) AND (users.age <= 3)",
		},
		{
			name: "range with min and max params",
			src:  Map{"from": "2007-01-02 05:30:00", "to": "2007-01-05 05:30:00"},
			filter: func(b *Builder) error {
				return b.RangeOn("created_at", MinParam("from"), MaxParam("to"), Cast(CastTime))
			},
			want: "(created_at >= '2007-01-02 05:30:00') AND (created_at <= '2007-01-05 05:30:00')",
		},
		{
			name: "like",
			src:  Map{"first_name": "Tim"},
			filter: func(b *Builder) error {
				return b.LikeOn("users.first_name")
			},
			want: "(users.first_name like 'Tim%')",
		},
		{
			name: "like with prefix",
			src:  Map{"first_name": "Tim"},
			filter: func(b *Builder) error {
				return b.LikeOn("users.first_name", Prefix("%"))
			},
			want: "(users.first_name like '%Tim%')",
		},
		{
			name: "like with empty suffix",
			src:  Map{"first_name": "Tim"},
			filter: func(b *Builder) error {
				return b.LikeOn("users.first_name", Suffix(""))
			},
			want: "(users.first_name like 'Tim')",
		},
		{
			name: "equal",
			src:  Map{"first_name": "Tim"},
			filter: func(b *Builder) error {
				return b.EqualOn("users.first_name")
			},
			want: "(users.first_name = 'Tim')",
		},
		{
			name: "equal casts to string",
			src:  Map{"id": 42},
			filter: func(b *Builder) error {
				return b.EqualOn("id", Cast(CastInt))
			},
			want: "(id = '42')",
		},
		{
			name: "equal with param",
			src:  Map{"q": "Tim"},
			filter: func(b *Builder) error {
				return b.EqualOn("users.first_name", Param("q"))
			},
			want: "(users.first_name = 'Tim')",
		},
		{
			name: "equal with nil",
			src:  Map{"first_name": nil},
			filter: func(b *Builder) error {
				return b.EqualOn("users.first_name")
			},
			want: "true",
		},
		{
			name: "equal with blank string",
			src:  Map{"first_name": "   "},
			filter: func(b *Builder) error {
				return b.EqualOn("users.first_name")
			},
			want: "true",
		},
		{
			name: "equal with null valuer",
			src:  Map{"first_name": sql.NullString{}},
			filter: func(b *Builder) error {
				return b.EqualOn("users.first_name")
			},
			want: "true",
		},
		{
			name: "in",
			src:  Map{"value": []int{1, 2, 3, 4}},
			filter: func(b *Builder) error {
				return b.InOn("attributes.value")
			},
			want: "(attributes.value in (1,2,3,4))",
		},
		{
			name: "in with scalar",
			src:  Map{"status": "open"},
			filter: func(b *Builder) error {
				return b.InOn("status")
			},
			want: "(status in ('open'))",
		},
		{
			name: "in strips blanks",
			src:  Map{"tags": []any{"a", "", nil, "b", " "}},
			filter: func(b *Builder) error {
				return b.InOn("tags")
			},
			want: "(tags in ('a','b'))",
		},
		{
			name: "in with only blanks",
			src:  Map{"tags": []string{"", " "}},
			filter: func(b *Builder) error {
				return b.InOn("tags")
			},
			want: "true",
		},
		{
			name: "in with empty slice",
			src:  Map{"tags": []string{}},
			filter: func(b *Builder) error {
				return b.InOn("tags")
			},
			want: "true",
		},
		{
			name: "custom operator",
			src:  Map{"age": "18"},
			filter: func(b *Builder) error {
				return b.On("users.age", "> ?", Cast(CastInt))
			},
			want: "(users.age > 18)",
		},
		{
			name: "float",
			src:  Map{"score": "2.5"},
			filter: func(b *Builder) error {
				return b.On("score", ">= ?", Cast(CastFloat))
			},
			want: "(score >= 2.5)",
		},
		{
			name: "scoped table",
			src:  Map{"first_name": "Tim"},
			filter: func(b *Builder) error {
				return b.Within("users", func(b *Builder) error {
					return b.EqualOn("first_name")
				})
			},
			want: "(users.first_name = 'Tim')",
		},
		{
			name: "sticky table",
			src:  Map{"first_name": "Tim"},
			filter: func(b *Builder) error {
				b.ForTable("users")
				return b.EqualOn("first_name")
			},
			want: "(users.first_name = 'Tim')",
		},
		{
			name: "scoped table is restored",
			src:  Map{"first_name": "Tim", "last_name": "Harper"},
			filter: func(b *Builder) error {
				if err := b.Within("users", func(b *Builder) error {
					return b.EqualOn("first_name")
				}); err != nil {
					return err
				}
				return b.EqualOn("last_name")
			},
			want: "(users.first_name = 'Tim') AND (last_name = 'Harper')",
		},
		{
			name: "nested scoped tables",
			src:  Map{"a": 1, "b": 2, "c": 3},
			filter: func(b *Builder) error {
				return b.Within("t1", func(b *Builder) error {
					if err := b.Within("t2", func(b *Builder) error {
						return b.On("b", "= ?")
					}); err != nil {
						return err
					}
					return b.On("a", "= ?")
				})
			},
			want: "(t2.b = 2) AND (t1.a = 1)",
		},
		{
			name: "forwarded and or",
			src:  Map{"first_name": "Tim"},
			filter: func(b *Builder) error {
				b.And("active = ?", true)
				if err := b.EqualOn("first_name"); err != nil {
					return err
				}
				b.Or(where.Of("admin = ?", true))
				return nil
			},
			want: "(active = TRUE) AND (first_name = 'Tim') OR ((admin = TRUE))",
		},
		{
			name: "missing field",
			src:  Map{},
			filter: func(b *Builder) error {
				return b.LikeOn("users.first_name")
			},
			want: "true",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.src)
			require.NoError(t, tc.filter(b))
			res, err := b.ToSQL()
			require.NoError(t, err)
			assert.Equal(t, tc.want, res)
			assert.Equal(t, tc.want, b.String())
		})
	}
}

func TestBuilder_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     Map
		filter  func(b *Builder) error
		wantErr error
	}{
		{
			name: "unknown cast",
			src:  Map{"age": 1},
			filter: func(b *Builder) error {
				return b.On("age", "= ?", Cast("bogus"))
			},
			wantErr: ErrUnknownCastKind,
		},
		{
			name: "unknown cast without value",
			src:  Map{},
			filter: func(b *Builder) error {
				return b.On("age", "= ?", Cast("bogus"))
			},
			wantErr: ErrUnknownCastKind,
		},
		{
			name: "malformed date",
			src:  Map{"created_at_min": "not a date"},
			filter: func(b *Builder) error {
				return b.RangeOn("created_at", Cast(CastDate))
			},
			wantErr: ErrMalformedTemporalValue,
		},
		{
			name: "malformed int",
			src:  Map{"age": "abc"},
			filter: func(b *Builder) error {
				return b.On("age", "= ?", Cast(CastInt))
			},
			wantErr: ErrMalformedValue,
		},
		{
			name: "bad operator",
			src:  Map{"age": 1},
			filter: func(b *Builder) error {
				return b.On("age", "between ? and ?")
			},
			wantErr: where.ErrBindCount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.src)
			err := tc.filter(b)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, b.IsEmpty())
		})
	}
}

func TestBuilder_WithinRestoresOnError(t *testing.T) {
	b := New(Map{"age": "abc"}).ForTable("accounts")
	err := b.Within("users", func(b *Builder) error {
		assert.Equal(t, "users.", b.TablePrefix())
		return b.On("age", "= ?", Cast(CastInt))
	})
	assert.ErrorIs(t, err, ErrMalformedValue)
	assert.Equal(t, "accounts.", b.TablePrefix())

	b.ForTable("")
	assert.Equal(t, "", b.TablePrefix())
}

func TestBuilder_AppendTo(t *testing.T) {
	w := where.Of("deleted_at IS NULL")
	b := New(Map{"first_name": "Tim"}, AppendTo(w))
	require.NoError(t, b.EqualOn("users.first_name"))

	assert.Same(t, w, b.Where())
	assert.Equal(t, "(deleted_at IS NULL) AND (users.first_name = 'Tim')", w.String())

	res, err := b.ToWhereSQL()
	require.NoError(t, err)
	assert.Equal(t, " WHERE (deleted_at IS NULL) AND (users.first_name = 'Tim')", res)
}

func TestBuilder_WithDialect(t *testing.T) {
	b := New(Map{"last_name": "O'Brien"}, WithDialect(where.MySQL))
	require.NoError(t, b.EqualOn("last_name"))
	assert.Equal(t, `(last_name = 'O\'Brien')`, b.String())
}

func TestBuilder_EmptyWhereClause(t *testing.T) {
	b := New(Map{})
	require.NoError(t, b.EqualOn("first_name"))
	res, err := b.ToWhereSQL()
	require.NoError(t, err)
	assert.Equal(t, "", res)
}

func TestBuilder_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	b := New(Map{"age": "abc"}, WithLogger(logger))
	require.NoError(t, b.EqualOn("users.first_name"))
	assert.Contains(t, buf.String(), "filter skipped")
	assert.Contains(t, buf.String(), `"column":"users.first_name"`)

	buf.Reset()
	assert.Error(t, b.On("age", "= ?", Cast(CastInt)))
	assert.Contains(t, buf.String(), "cast value failed")
}

func TestNewFrom(t *testing.T) {
	b, err := NewFrom(map[string]any{"first_name": "Tim"})
	require.NoError(t, err)
	require.NoError(t, b.EqualOn("first_name"))
	assert.Equal(t, "(first_name = 'Tim')", b.String())

	b, err = NewFrom(Func(func(name string) (any, bool) {
		return name + "!", true
	}))
	require.NoError(t, err)
	require.NoError(t, b.EqualOn("x"))
	assert.Equal(t, "(x = 'x!')", b.String())

	_, err = NewFrom(42)
	assert.ErrorIs(t, err, ErrPointerOnly)
}
