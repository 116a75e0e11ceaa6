package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/entity"
	"github.com/eoru5/airytable/internal/query"
	"github.com/eoru5/airytable/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// createRecords inserts amount empty records into the table and, when
// generateData is set, fills a cell for every field of every new record.
// Seed values depend on the field: well-known default field names get
// matching fake data, everything else gets a noun or a small number.
func createRecords(db *gorm.DB, tableID uuid.UUID, amount int, generateData bool) ([]entity.Record, error) {
	records := make([]entity.Record, amount)
	for i := range records {
		records[i] = entity.Record{TableID: tableID}
	}
	if err := db.Create(&records).Error; err != nil {
		return nil, err
	}

	if !generateData {
		return records, nil
	}

	var fields []entity.Field
	if err := db.Where("table_id = ?", tableID).Order("id ASC").Find(&fields).Error; err != nil {
		return nil, err
	}

	var textCells []entity.CellText
	var numberCells []entity.CellNumber
	for _, record := range records {
		for _, field := range fields {
			if field.Type == query.FieldTypeNumber {
				numberCells = append(numberCells, entity.CellNumber{
					RecordID: record.ID,
					FieldID:  field.ID,
					Value:    float64(gofakeit.Number(0, 1000)),
				})
				continue
			}

			var value string
			switch field.Name {
			case "Name":
				value = gofakeit.Name()
			case "Color":
				value = gofakeit.Color()
			default:
				value = gofakeit.Noun()
			}
			textCells = append(textCells, entity.CellText{
				RecordID: record.ID,
				FieldID:  field.ID,
				Value:    value,
			})
		}
	}

	if len(textCells) > 0 {
		if err := db.Create(&textCells).Error; err != nil {
			return nil, err
		}
	}
	if len(numberCells) > 0 {
		if err := db.Create(&numberCells).Error; err != nil {
			return nil, err
		}
	}
	return records, nil
}

func CreateRecords(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var request struct {
			TableID    string `json:"tableId" binding:"required"`
			NumRows    int    `json:"numRows" binding:"required,min=1"`
			RandomData bool   `json:"randomData"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		tableID, err := uuid.Parse(request.TableID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
			return
		}

		if !utils.UserOwnsTable(ctx, userID, tableID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}

		var records []entity.Record
		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			records, err = createRecords(tx, tableID, request.NumRows, request.RandomData)
			return err
		})
		if err != nil {
			ctx.Logger.Error("Failed to create records", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create records"})
			return
		}

		if err := utils.IndexRecords(ctx, records); err != nil {
			ctx.Logger.Warn("Failed to index records", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"records": records})
	}
}

// ListRecords is the view query endpoint: one page of records shaped by
// the view's persisted sort, filters and hidden fields.
func ListRecords(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		tableID, err := uuid.Parse(c.Param("tableID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
			return
		}

		viewID, err := uuid.Parse(c.Query("viewId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		cursor := 0
		if s := c.Query("cursor"); s != "" {
			cursor, err = strconv.Atoi(s)
			if err != nil || cursor < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
				return
			}
		}

		pageSize := 0
		if s := c.Query("size"); s != "" {
			pageSize, err = strconv.Atoi(s)
			if err != nil || pageSize < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page size"})
				return
			}
		}

		page, err := query.ListRecords(c.Request.Context(), ctx.DB, userID, tableID, viewID, cursor, pageSize)
		if err != nil {
			if errors.Is(err, query.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Table or view not found"})
				return
			}
			ctx.Logger.Error("Failed to list records", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records"})
			return
		}

		c.JSON(http.StatusOK, page)
	}
}
