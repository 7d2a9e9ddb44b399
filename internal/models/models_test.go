package models

import (
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=dryrun sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

// inserted devolve o valor gravado na coluna "active" do INSERT gerado.
func inserted(t *testing.T, stmt *gorm.Statement) (bool, bool) {
	t.Helper()
	sql := stmt.SQL.String()
	cols := sql[strings.Index(sql, "(")+1 : strings.Index(sql, ")")]
	for i, col := range strings.Split(cols, ",") {
		if strings.Trim(strings.TrimSpace(col), `"`) == "active" {
			v, ok := stmt.Vars[i].(bool)
			return v, ok
		}
	}
	return false, false
}

func TestCreateKeepsInactiveFlag(t *testing.T) {
	db := dryRunDB(t)

	cases := []struct {
		name  string
		value any
	}{
		{"professional", &Professional{BarbershopID: 1, Name: "Pedro", Active: false}},
		{"service", &Service{BarbershopID: 1, Name: "Platinado", DurationMinutes: 60, Active: false}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmt := db.Create(tc.value).Statement
			active, ok := inserted(t, stmt)
			if !ok {
				t.Fatalf("active column missing from %s", stmt.SQL.String())
			}
			if active {
				t.Fatalf("active=false was replaced by the column default")
			}
		})
	}
}
