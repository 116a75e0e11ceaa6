package http

import (
	"net/http"

	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/entity"
	"github.com/eoru5/airytable/internal/query"
	"github.com/eoru5/airytable/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CreateTable(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var request struct {
			BaseID       string `json:"baseId" binding:"required"`
			Name         string `json:"name" binding:"required"`
			GenerateData *bool  `json:"generateData"`
			NumRecords   int    `json:"numRecords"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		baseID, err := uuid.Parse(request.BaseID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base ID"})
			return
		}

		if !utils.UserOwnsBase(ctx, userID, baseID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Base not found"})
			return
		}

		generateData := true
		if request.GenerateData != nil {
			generateData = *request.GenerateData
		}
		numRecords := request.NumRecords
		if numRecords <= 0 {
			numRecords = 3
		}

		table := entity.Table{
			Name:   request.Name,
			BaseID: baseID,
		}

		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&table).Error; err != nil {
				return err
			}

			// every table starts with one view and a default field set
			view := entity.View{
				Name:         "Grid View",
				TableID:      table.ID,
				Sort:         query.SortList{},
				Filters:      query.FilterList{},
				HiddenFields: query.FieldIDSet{},
			}
			if err := tx.Create(&view).Error; err != nil {
				return err
			}

			fields := []entity.Field{
				{TableID: table.ID, Name: "Name", Type: query.FieldTypeText},
				{TableID: table.ID, Name: "Color", Type: query.FieldTypeText},
				{TableID: table.ID, Name: "Number", Type: query.FieldTypeNumber},
			}
			if err := tx.Create(&fields).Error; err != nil {
				return err
			}

			_, err := createRecords(tx, table.ID, numRecords, generateData)
			return err
		})
		if err != nil {
			ctx.Logger.Error("Failed to create table", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
			return
		}

		var records []entity.Record
		if err := ctx.DB.Where("table_id = ?", table.ID).Find(&records).Error; err == nil {
			if err := utils.IndexRecords(ctx, records); err != nil {
				ctx.Logger.Warn("Failed to index seeded records", zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{"table": table})
	}
}

func DeleteTable(ctx *appcontext.Context) gin.HandlerFunc {
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

		if !utils.UserOwnsTable(ctx, userID, tableID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}

		var recordIDs []uint
		if err := ctx.DB.Model(&entity.Record{}).Where("table_id = ?", tableID).Pluck("id", &recordIDs).Error; err != nil {
			ctx.Logger.Error("Failed to fetch records for table", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
			return
		}

		if err := deleteTableCascade(ctx, tableID); err != nil {
			ctx.Logger.Error("Failed to delete table", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
			return
		}

		if err := utils.RemoveRecords(ctx, recordIDs); err != nil {
			ctx.Logger.Warn("Failed to remove records from search index", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// deleteTableCascade deletes everything hanging off a table (cells, fields,
// records, views) before the table itself, in one transaction.
func deleteTableCascade(ctx *appcontext.Context, tableID uuid.UUID) error {
	return ctx.DB.Transaction(func(tx *gorm.DB) error {
		recordSubquery := tx.Model(&entity.Record{}).Select("id").Where("table_id = ?", tableID)

		if err := tx.Where("record_id IN (?)", recordSubquery).Delete(&entity.CellText{}).Error; err != nil {
			return err
		}
		if err := tx.Where("record_id IN (?)", recordSubquery).Delete(&entity.CellNumber{}).Error; err != nil {
			return err
		}
		if err := tx.Where("table_id = ?", tableID).Delete(&entity.Field{}).Error; err != nil {
			return err
		}
		if err := tx.Where("table_id = ?", tableID).Delete(&entity.Record{}).Error; err != nil {
			return err
		}
		if err := tx.Where("table_id = ?", tableID).Delete(&entity.View{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Table{}, "id = ?", tableID).Error
	})
}

func GetFields(ctx *appcontext.Context) gin.HandlerFunc {
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

		if !utils.UserOwnsTable(ctx, userID, tableID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}

		var fields []entity.Field
		if err := ctx.DB.Where("table_id = ?", tableID).Order("id ASC").Find(&fields).Error; err != nil {
			ctx.Logger.Error("Failed to fetch fields", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fields"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"fields": fields})
	}
}

func GetViews(ctx *appcontext.Context) gin.HandlerFunc {
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

		if !utils.UserOwnsTable(ctx, userID, tableID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}

		var views []entity.View
		if err := ctx.DB.Where("table_id = ?", tableID).Order("created_at ASC").Find(&views).Error; err != nil {
			ctx.Logger.Error("Failed to fetch views", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch views"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"views": views})
	}
}

func GetLatestView(ctx *appcontext.Context) gin.HandlerFunc {
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

		if !utils.UserOwnsTable(ctx, userID, tableID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}

		var view entity.View
		if err := ctx.DB.Where("table_id = ?", tableID).Order("modified_at DESC").First(&view).Error; err != nil {
			ctx.Logger.Error("Failed to fetch latest view", zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": "View not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"view": view})
	}
}
