package query

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

const viewSelect = `SELECT views.id, views.table_id, views.sort, views.filters, views.hidden_fields FROM "views" JOIN tables ON tables.id = views.table_id JOIN bases ON bases.id = tables.base_id WHERE views.id = \$1 AND views.table_id = \$2 AND bases.user_id = \$3`

func expectView(mock sqlmock.Sqlmock, userID, tableID, viewID uuid.UUID, sort, filters, hidden string) {
	rows := sqlmock.NewRows([]string{"id", "table_id", "sort", "filters", "hidden_fields"}).
		AddRow(viewID.String(), tableID.String(), sort, filters, hidden)
	mock.ExpectQuery(viewSelect).
		WithArgs(viewID, tableID, userID, 1).
		WillReturnRows(rows)
}

// two-field fixture: field 1 is Name (Text), field 2 is Score (Number)
func expectFields(mock sqlmock.Sqlmock, tableID uuid.UUID) {
	rows := sqlmock.NewRows([]string{"id", "name", "type"}).
		AddRow(1, "Name", "Text").
		AddRow(2, "Score", "Number")
	mock.ExpectQuery(`SELECT fields.id, fields.name, fields.type FROM "fields" WHERE fields.table_id = \$1 ORDER BY fields.id ASC`).
		WithArgs(tableID).
		WillReturnRows(rows)
}

func TestListRecordsSortsNullsLast(t *testing.T) {
	gdb, mock := newTestDB(t)
	userID, tableID, viewID := uuid.New(), uuid.New(), uuid.New()

	expectView(mock, userID, tableID, viewID, `[{"id":"2","desc":false}]`, `[]`, `[]`)
	expectFields(mock, tableID)

	// Postgres sorts nulls last under ASC: R3(5), R1(10), R2(no cell)
	rows := sqlmock.NewRows([]string{"record_id", "f1_value", "f2_value"}).
		AddRow(3, "Cara", 5.0).
		AddRow(1, "Alice", 10.0).
		AddRow(2, "Bob", nil)
	mock.ExpectQuery(`SELECT records.id AS record_id, f1.value AS f1_value, f2.value AS f2_value FROM "records" LEFT JOIN cell_texts f1 ON f1.record_id = records.id AND f1.field_id = \$1 LEFT JOIN cell_numbers f2 ON f2.record_id = records.id AND f2.field_id = \$2 WHERE records.table_id = \$3 ORDER BY f2.value ASC,records.id ASC LIMIT \$4`).
		WithArgs(1, 2, tableID, 101).
		WillReturnRows(rows)

	page, err := ListRecords(context.Background(), gdb, userID, tableID, viewID, 0, 100)
	require.NoError(t, err)
	require.Len(t, page.Records, 3)
	assert.Nil(t, page.NextCursor)

	assert.Equal(t, uint(3), page.Records[0].ID)
	assert.Equal(t, uint(1), page.Records[1].ID)
	assert.Equal(t, uint(2), page.Records[2].ID)

	assert.Equal(t, map[uint]interface{}{1: "Cara", 2: 5.0}, page.Records[0].Cells)
	assert.Equal(t, map[uint]interface{}{1: "Alice", 2: 10.0}, page.Records[1].Cells)
	// no Score cell: the field is absent, not zero
	assert.Equal(t, map[uint]interface{}{1: "Bob"}, page.Records[2].Cells)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecordsPagination(t *testing.T) {
	gdb, mock := newTestDB(t)
	userID, tableID, viewID := uuid.New(), uuid.New(), uuid.New()

	// page 1: pageSize+1 rows come back, so there is a next page
	expectView(mock, userID, tableID, viewID, `[]`, `[]`, `[]`)
	expectFields(mock, tableID)
	mock.ExpectQuery(`FROM "records" .* ORDER BY records.id ASC LIMIT \$4$`).
		WithArgs(1, 2, tableID, 3).
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "f1_value", "f2_value"}).
			AddRow(1, "Alice", 10.0).
			AddRow(2, nil, nil).
			AddRow(3, "Cara", 5.0))

	page, err := ListRecords(context.Background(), gdb, userID, tableID, viewID, 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.Equal(t, uint(1), page.Records[0].ID)
	assert.Equal(t, uint(2), page.Records[1].ID)
	// a record with zero cells still appears, with nothing in its map
	assert.Empty(t, page.Records[1].Cells)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, 2, *page.NextCursor)

	// page 2: only the final record, no extra row, no next cursor
	expectView(mock, userID, tableID, viewID, `[]`, `[]`, `[]`)
	expectFields(mock, tableID)
	mock.ExpectQuery(`FROM "records" .* ORDER BY records.id ASC LIMIT \$4 OFFSET \$5$`).
		WithArgs(1, 2, tableID, 3, 2).
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "f1_value", "f2_value"}).
			AddRow(3, "Cara", 5.0))

	page, err = ListRecords(context.Background(), gdb, userID, tableID, viewID, *page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, uint(3), page.Records[0].ID)
	assert.Nil(t, page.NextCursor)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecordsGreaterThanFilter(t *testing.T) {
	gdb, mock := newTestDB(t)
	userID, tableID, viewID := uuid.New(), uuid.New(), uuid.New()

	expectView(mock, userID, tableID, viewID, `[]`, `[{"id":"2","type":">","value":"4"}]`, `[]`)
	expectFields(mock, tableID)

	// records without a Score cell never match a numeric comparison
	mock.ExpectQuery(`WHERE records.table_id = \$3 AND f2.value > \$4 ORDER BY records.id ASC LIMIT \$5`).
		WithArgs(1, 2, tableID, 4.0, 101).
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "f1_value", "f2_value"}).
			AddRow(1, "Alice", 10.0).
			AddRow(3, "Cara", 5.0))

	page, err := ListRecords(context.Background(), gdb, userID, tableID, viewID, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.Equal(t, uint(1), page.Records[0].ID)
	assert.Equal(t, uint(3), page.Records[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecordsTextFilters(t *testing.T) {
	gdb, mock := newTestDB(t)
	userID, tableID, viewID := uuid.New(), uuid.New(), uuid.New()

	expectView(mock, userID, tableID, viewID, `[]`,
		`[{"id":"1","type":"contains","value":"a"},{"id":"1","type":"is empty"}]`, `[]`)
	expectFields(mock, tableID)

	mock.ExpectQuery(`WHERE records.table_id = \$3 AND f1.value ILIKE \$4 AND \(f1.value IS NULL OR f1.value = ''\) ORDER BY records.id ASC LIMIT \$5`).
		WithArgs(1, 2, tableID, "%a%", 101).
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "f1_value", "f2_value"}))

	page, err := ListRecords(context.Background(), gdb, userID, tableID, viewID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Records)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecordsHiddenFieldExcluded(t *testing.T) {
	gdb, mock := newTestDB(t)
	userID, tableID, viewID := uuid.New(), uuid.New(), uuid.New()

	// field 2 is hidden but still referenced by the view's sort and filter;
	// both references must drop out along with the field's join
	expectView(mock, userID, tableID, viewID,
		`[{"id":"2","desc":true}]`, `[{"id":"2","type":">","value":"4"}]`, `[2]`)

	mock.ExpectQuery(`SELECT fields.id, fields.name, fields.type FROM "fields" WHERE fields.table_id = \$1 AND fields.id NOT IN \(\$2\) ORDER BY fields.id ASC`).
		WithArgs(tableID, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type"}).
			AddRow(1, "Name", "Text"))

	mock.ExpectQuery(`SELECT records.id AS record_id, f1.value AS f1_value FROM "records" LEFT JOIN cell_texts f1 ON f1.record_id = records.id AND f1.field_id = \$1 WHERE records.table_id = \$2 ORDER BY records.id ASC LIMIT \$3`).
		WithArgs(1, tableID, 101).
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "f1_value"}).
			AddRow(1, "Alice").
			AddRow(2, "Bob"))

	page, err := ListRecords(context.Background(), gdb, userID, tableID, viewID, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.Equal(t, map[uint]interface{}{1: "Alice"}, page.Records[0].Cells)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecordsSkipsDanglingReferences(t *testing.T) {
	gdb, mock := newTestDB(t)
	userID, tableID, viewID := uuid.New(), uuid.New(), uuid.New()

	// field 99 was deleted, "name" was never numeric; both are tolerated
	expectView(mock, userID, tableID, viewID,
		`[{"id":"99","desc":false},{"id":"name","desc":true}]`,
		`[{"id":"99","type":">","value":"4"}]`, `[]`)
	expectFields(mock, tableID)

	mock.ExpectQuery(`WHERE records.table_id = \$3 ORDER BY records.id ASC LIMIT \$4`).
		WithArgs(1, 2, tableID, 101).
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "f1_value", "f2_value"}).
			AddRow(1, "Alice", 10.0))

	page, err := ListRecords(context.Background(), gdb, userID, tableID, viewID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page.Records, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecordsTenantIsolation(t *testing.T) {
	gdb, mock := newTestDB(t)
	userID, tableID, viewID := uuid.New(), uuid.New(), uuid.New()

	// ownership chain misses: no row, regardless of whether the view exists
	mock.ExpectQuery(viewSelect).
		WithArgs(viewID, tableID, userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_id", "sort", "filters", "hidden_fields"}))

	page, err := ListRecords(context.Background(), gdb, userID, tableID, viewID, 0, 0)
	assert.Nil(t, page)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecordsNoFields(t *testing.T) {
	gdb, mock := newTestDB(t)
	userID, tableID, viewID := uuid.New(), uuid.New(), uuid.New()

	expectView(mock, userID, tableID, viewID, `[]`, `[]`, `[]`)
	mock.ExpectQuery(`SELECT fields.id, fields.name, fields.type FROM "fields"`).
		WithArgs(tableID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type"}))

	mock.ExpectQuery(`SELECT records.id AS record_id FROM "records" WHERE records.table_id = \$1 ORDER BY records.id ASC LIMIT \$2`).
		WithArgs(tableID, 101).
		WillReturnRows(sqlmock.NewRows([]string{"record_id"}).AddRow(1))

	page, err := ListRecords(context.Background(), gdb, userID, tableID, viewID, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Empty(t, page.Records[0].Cells)

	require.NoError(t, mock.ExpectationsWereMet())
}
