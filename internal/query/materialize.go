package query

import (
	"database/sql"
	"fmt"
)

// RecordData is one reshaped result row: the record id plus a sparse map
// from field id to cell value. Fields with no cell are simply absent from
// the map. An integer-keyed map marshals with string keys, which is what
// the grid UI expects.
type RecordData struct {
	ID    uint                 `json:"id"`
	Cells map[uint]interface{} `json:"cells"`
}

// materialize reshapes the flat result rows (one row per record, one value
// column per visible field) back into per-record sparse cell maps. A record
// with zero cells still came back from the left joins and appears exactly
// once, with an empty map.
func materialize(rows *sql.Rows, fields []FieldInfo) ([]RecordData, error) {
	records := make([]RecordData, 0)

	for rows.Next() {
		var id uint
		texts := make([]sql.NullString, len(fields))
		numbers := make([]sql.NullFloat64, len(fields))

		dest := make([]interface{}, 0, len(fields)+1)
		dest = append(dest, &id)
		for i, f := range fields {
			if f.Type == FieldTypeNumber {
				dest = append(dest, &numbers[i])
			} else {
				dest = append(dest, &texts[i])
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}

		record := RecordData{ID: id, Cells: make(map[uint]interface{})}
		for i, f := range fields {
			if f.Type == FieldTypeNumber {
				if numbers[i].Valid {
					record.Cells[f.ID] = numbers[i].Float64
				}
			} else {
				if texts[i].Valid {
					record.Cells[f.ID] = texts[i].String
				}
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record rows: %w", err)
	}
	return records, nil
}
