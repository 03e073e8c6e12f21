package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB is a scripted DBTX: each call pops the next response and records the SQL.
type fakeDB struct {
	calls     []fakeCall
	responses []fakeResponse
}

type fakeCall struct {
	sql  string
	args []any
}

type fakeResponse struct {
	tag  string
	rows [][]any
	err  error
}

func (db *fakeDB) next(sql string, args []any) fakeResponse {
	db.calls = append(db.calls, fakeCall{sql: sql, args: args})
	if len(db.responses) == 0 {
		panic("fakeDB: unexpected call " + sql)
	}
	resp := db.responses[0]
	db.responses = db.responses[1:]
	return resp
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	resp := db.next(sql, args)
	return pgconn.NewCommandTag(resp.tag), resp.err
}

func (db *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	resp := db.next(sql, args)
	if resp.err != nil {
		return nil, resp.err
	}
	return &fakeRows{rows: resp.rows, idx: -1}, nil
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	resp := db.next(sql, args)
	if resp.err != nil {
		return fakeRow{err: resp.err}
	}
	if len(resp.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{values: resp.rows[0]}
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.idx], nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.rows[r.idx], dest)
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("fakeDB: %d values for %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *int:
			*d = v.(int)
		case *string:
			*d = v.(string)
		case *bool:
			*d = v.(bool)
		case **int64:
			if v == nil {
				*d = nil
			} else {
				n := v.(int64)
				*d = &n
			}
		case **string:
			if v == nil {
				*d = nil
			} else {
				s := v.(string)
				*d = &s
			}
		default:
			return fmt.Errorf("fakeDB: unsupported destination %T", dest[i])
		}
	}
	return nil
}
