package http

import (
	"net/http"
	"strconv"

	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/entity"
	"github.com/eoru5/airytable/internal/query"
	"github.com/eoru5/airytable/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CreateField(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var request struct {
			TableID string `json:"tableId" binding:"required"`
			Name    string `json:"name" binding:"required"`
			Type    string `json:"type" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		fieldType := query.FieldType(request.Type)
		if !fieldType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field type"})
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

		field := entity.Field{
			TableID: tableID,
			Name:    request.Name,
			Type:    fieldType,
		}
		if err := ctx.DB.Create(&field).Error; err != nil {
			ctx.Logger.Error("Failed to create field", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create field"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"field": field})
	}
}

// DeleteField removes a field and its cells. View sort/filter/hidden
// entries that still mention the field are left alone: the query planner
// tolerates dangling references and skips them.
func DeleteField(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		fieldID, err := strconv.ParseUint(c.Param("fieldID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field ID"})
			return
		}

		if !utils.UserOwnsField(ctx, userID, uint(fieldID)) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
			return
		}

		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("field_id = ?", fieldID).Delete(&entity.CellText{}).Error; err != nil {
				return err
			}
			if err := tx.Where("field_id = ?", fieldID).Delete(&entity.CellNumber{}).Error; err != nil {
				return err
			}
			return tx.Delete(&entity.Field{}, "id = ?", fieldID).Error
		})
		if err != nil {
			ctx.Logger.Error("Failed to delete field", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete field"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func RenameField(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		fieldID, err := strconv.ParseUint(c.Param("fieldID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field ID"})
			return
		}

		var request struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if !utils.UserOwnsField(ctx, userID, uint(fieldID)) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
			return
		}

		if err := ctx.DB.Model(&entity.Field{}).Where("id = ?", fieldID).Update("name", request.Name).Error; err != nil {
			ctx.Logger.Error("Failed to rename field", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename field"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
