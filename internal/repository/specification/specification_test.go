package specification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type sampleRow struct {
	Id     uuid.UUID
	Status string
}

func (sampleRow) TableName() string { return "samples" }

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=lab dbname=lab sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func build(db *gorm.DB, specs ...Specification) *gorm.Statement {
	q := db.Model(&sampleRow{})
	for _, s := range specs {
		q = s.Apply(q)
	}
	var rows []sampleRow
	return q.Find(&rows).Statement
}

func toSQL(db *gorm.DB, specs ...Specification) string {
	return build(db, specs...).SQL.String()
}

func TestSpecificationsBuildSQL(t *testing.T) {
	db := dryRun(t)

	stmt := build(db, Search{Query: "benz", Fields: []string{"name", "sample_code"}}, ByStatus{Status: "prep"}, Page(3, 20))
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "(name ILIKE $1 OR sample_code ILIKE $2)")
	assert.Contains(t, sql, "status = $3")
	assert.Contains(t, sql, "LIMIT $4 OFFSET $5")
	require.Len(t, stmt.Vars, 5)
	assert.Equal(t, []interface{}{"%benz%", "%benz%", "prep", 20, 40}, stmt.Vars)

	sql = toSQL(db, Search{Query: "  "}, ByStatus{}, ByPriority{})
	assert.NotContains(t, sql, "WHERE")

	sql = toSQL(db, StatusNot{Status: "complete"}, OrderBy{Field: "created_at", Desc: true})
	assert.Contains(t, sql, "status <> $1")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
}

func TestOfActiveInstrumentSkipsSoftDeleted(t *testing.T) {
	sql := toSQL(dryRun(t), OfActiveInstrument{})
	assert.Contains(t, sql, "instrument_id IN (SELECT id FROM instruments WHERE deleted_at IS NULL)")
}

func TestPage(t *testing.T) {
	assert.Equal(t, Pagination{Limit: 10, Offset: 0}, Page(0, 10))
	assert.Equal(t, Pagination{Limit: 10, Offset: 20}, Page(3, 10))
}
