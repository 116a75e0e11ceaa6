package http

import (
	"errors"
	"net/http"

	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/entity"
	"github.com/eoru5/airytable/internal/query"
	"github.com/eoru5/airytable/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cell writes follow one rule set for both types: an empty write deletes
// the row, a write over an existing row updates it, a non-empty write with
// no row creates it. No row is ever stored for an empty value, which keeps
// "cell absent" and "cell empty" the same thing for the query engine's
// is-empty operator.

func checkCellWrite(ctx *appcontext.Context, c *gin.Context, fieldID, recordID uint, wantType query.FieldType) bool {
	userID, err := utils.GetUserIDFromClaims(c)
	if err != nil {
		ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}

	if !utils.UserOwnsField(ctx, userID, fieldID) || !utils.UserOwnsRecord(ctx, userID, recordID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Field or record not found"})
		return false
	}

	var field entity.Field
	if err := ctx.DB.First(&field, "id = ?", fieldID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Field or record not found"})
		return false
	}
	if field.Type != wantType {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field type mismatch"})
		return false
	}

	return true
}

func reindexRecord(ctx *appcontext.Context, recordID uint) {
	var record entity.Record
	if err := ctx.DB.First(&record, "id = ?", recordID).Error; err != nil {
		return
	}
	if err := utils.IndexRecords(ctx, []entity.Record{record}); err != nil {
		ctx.Logger.Warn("Failed to reindex record", zap.Uint("record_id", recordID), zap.Error(err))
	}
}

func UpdateTextCell(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			FieldID  uint    `json:"fieldId" binding:"required"`
			RecordID uint    `json:"recordId" binding:"required"`
			Value    *string `json:"value"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if !checkCellWrite(ctx, c, request.FieldID, request.RecordID, query.FieldTypeText) {
			return
		}

		empty := request.Value == nil || *request.Value == ""

		var cell entity.CellText
		err := ctx.DB.Where("field_id = ? AND record_id = ?", request.FieldID, request.RecordID).First(&cell).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Logger.Error("Failed to look up text cell", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cell"})
			return
		}
		exists := err == nil

		switch {
		case exists && empty:
			err = ctx.DB.Delete(&cell).Error
		case exists:
			err = ctx.DB.Model(&cell).Update("value", *request.Value).Error
		case !empty:
			cell = entity.CellText{
				FieldID:  request.FieldID,
				RecordID: request.RecordID,
				Value:    *request.Value,
			}
			err = ctx.DB.Create(&cell).Error
		default:
			// no cell and an empty write: nothing to store
			c.JSON(http.StatusOK, gin.H{"cell": nil})
			return
		}
		if err != nil {
			ctx.Logger.Error("Failed to update text cell", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cell"})
			return
		}

		reindexRecord(ctx, request.RecordID)

		if empty {
			c.JSON(http.StatusOK, gin.H{"cell": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cell": cell})
	}
}

func UpdateNumberCell(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			FieldID  uint     `json:"fieldId" binding:"required"`
			RecordID uint     `json:"recordId" binding:"required"`
			Value    *float64 `json:"value"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if !checkCellWrite(ctx, c, request.FieldID, request.RecordID, query.FieldTypeNumber) {
			return
		}

		empty := request.Value == nil

		var cell entity.CellNumber
		err := ctx.DB.Where("field_id = ? AND record_id = ?", request.FieldID, request.RecordID).First(&cell).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Logger.Error("Failed to look up number cell", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cell"})
			return
		}
		exists := err == nil

		switch {
		case exists && empty:
			err = ctx.DB.Delete(&cell).Error
		case exists:
			err = ctx.DB.Model(&cell).Update("value", *request.Value).Error
		case !empty:
			cell = entity.CellNumber{
				FieldID:  request.FieldID,
				RecordID: request.RecordID,
				Value:    *request.Value,
			}
			err = ctx.DB.Create(&cell).Error
		default:
			c.JSON(http.StatusOK, gin.H{"cell": nil})
			return
		}
		if err != nil {
			ctx.Logger.Error("Failed to update number cell", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cell"})
			return
		}

		reindexRecord(ctx, request.RecordID)

		if empty {
			c.JSON(http.StatusOK, gin.H{"cell": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cell": cell})
	}
}
