package utils

import (
	"fmt"
	"strconv"

	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/entity"
	"gorm.io/gorm"
)

// RecordToDocument flattens a record's cells into one search document.
// Field structure doesn't matter for search, only the cell values do, so
// the document carries them as one searchable array plus a table_id for
// scoping.
func RecordToDocument(db *gorm.DB, record *entity.Record) (map[string]interface{}, error) {
	values := []string{}

	var textCells []entity.CellText
	if err := db.Where("record_id = ?", record.ID).Find(&textCells).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch text cells for record: %w", err)
	}
	for _, cell := range textCells {
		values = append(values, cell.Value)
	}

	var numberCells []entity.CellNumber
	if err := db.Where("record_id = ?", record.ID).Find(&numberCells).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch number cells for record: %w", err)
	}
	for _, cell := range numberCells {
		values = append(values, strconv.FormatFloat(cell.Value, 'f', -1, 64))
	}

	return map[string]interface{}{
		"id":       strconv.FormatUint(uint64(record.ID), 10),
		"table_id": record.TableID.String(),
		"values":   values,
	}, nil
}

func IndexRecords(ctx *appcontext.Context, records []entity.Record) error {
	documents := make([]map[string]interface{}, 0, len(records))
	for i := range records {
		document, err := RecordToDocument(ctx.DB, &records[i])
		if err != nil {
			return err
		}
		documents = append(documents, document)
	}

	if _, err := ctx.MeilisearchClient.Index("records").AddDocuments(documents); err != nil {
		return fmt.Errorf("failed to index records: %w", err)
	}
	return nil
}

func RemoveRecords(ctx *appcontext.Context, recordIDs []uint) error {
	ids := make([]string, 0, len(recordIDs))
	for _, id := range recordIDs {
		ids = append(ids, strconv.FormatUint(uint64(id), 10))
	}

	if _, err := ctx.MeilisearchClient.Index("records").DeleteDocuments(ids); err != nil {
		return fmt.Errorf("failed to remove records from index: %w", err)
	}
	return nil
}
