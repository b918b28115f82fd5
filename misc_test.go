package keysetpager

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

var _sqlMockFnList = []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
	newGORMMySQLMock,
	newGORMPostgresMock,
}

type tUser struct {
	ID        uint
	Name      string
	CreatedAt time.Time
}

var _tUserFields = Fields[tUser]{
	"id":         OrderedField(func(u tUser) uint { return u.ID }),
	"name":       OrderedField(func(u tUser) string { return u.Name }),
	"created_at": TimeField(func(u tUser) time.Time { return u.CreatedAt }),
}

// tTextBuilder renders predicates as plain text, e.g. "(a > 1 OR (a = 1 AND b < x))".
type tTextBuilder struct{}

func (tTextBuilder) Compare(column string, op Operator, value any) string {
	return fmt.Sprintf("%s %s %v", column, op, value)
}

func (b tTextBuilder) Equal(column string, value any) string {
	return b.Compare(column, OperatorEQ, value)
}

func (tTextBuilder) And(predicates ...string) string {
	return "(" + strings.Join(predicates, " AND ") + ")"
}

func (tTextBuilder) Or(predicates ...string) string {
	return "(" + strings.Join(predicates, " OR ") + ")"
}

// tSliceBackend serves canned rows and records the queries it gets.
type tSliceBackend struct {
	tTextBuilder

	rows    []tUser
	total   int64
	findErr error
	queries []Query[string]
	counts  [][]string
}

func (b *tSliceBackend) Find(_ context.Context, q Query[string]) ([]tUser, error) {
	b.queries = append(b.queries, q)
	if b.findErr != nil {
		return nil, b.findErr
	}

	if q.Limit > 0 && len(b.rows) > q.Limit {
		return b.rows[:q.Limit], nil
	}

	return b.rows, nil
}

func (b *tSliceBackend) Count(_ context.Context, where []string) (int64, error) {
	b.counts = append(b.counts, where)

	return b.total, nil
}
