package pagination

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	if p.Page != 1 || p.PerPage != MaxPerPage {
		t.Fatalf("got page=%d per_page=%d", p.Page, p.PerPage)
	}

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	if p.PerPage != DefaultPerPage || p.Offset() != 2*DefaultPerPage {
		t.Fatalf("got per_page=%d offset=%d", p.PerPage, p.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 10, 25)
	if pg.TotalPages != 3 || !pg.HasNext || !pg.HasPrev {
		t.Fatalf("unexpected pagination %+v", pg)
	}

	last := NewPagination(3, 10, 25)
	if last.HasNext {
		t.Fatal("last page must not report a next page")
	}
}

func TestNewPaginatedResultNeverNilItems(t *testing.T) {
	res := NewPaginatedResult[int](nil, NewPagination(1, DefaultPerPage, 0))
	if res.Items == nil {
		t.Fatal("items must be an empty slice")
	}
}

func TestScopeAppliesLimitAndOffset(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	type row struct{ ID int }

	var p *PaginationParams
	stmt := db.Scopes(p.Scope()).Find(&[]row{}).Statement
	if sql := stmt.SQL.String(); !strings.Contains(sql, "LIMIT 20") || strings.Contains(sql, "OFFSET") {
		t.Fatalf("sql = %q", sql)
	}

	stmt = db.Scopes((&PaginationParams{Page: 3, PerPage: 10}).Scope()).Find(&[]row{}).Statement
	if sql := stmt.SQL.String(); !strings.Contains(sql, "LIMIT 10 OFFSET 20") {
		t.Fatalf("sql = %q", sql)
	}
}
