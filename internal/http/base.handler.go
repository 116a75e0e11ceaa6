package http

import (
	"net/http"
	"time"

	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/entity"
	"github.com/eoru5/airytable/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func GetBases(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var bases []entity.Base
		if err := ctx.DB.Where("user_id = ?", userID).Order("modified_at DESC").Find(&bases).Error; err != nil {
			ctx.Logger.Error("Failed to fetch bases", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bases"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"bases": bases})
	}
}

func CreateBase(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var request struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		base := entity.Base{
			Name:   request.Name,
			UserID: userID,
		}
		if err := ctx.DB.Create(&base).Error; err != nil {
			ctx.Logger.Error("Failed to create base", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create base"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"base": base})
	}
}

func DeleteBase(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		baseID, err := uuid.Parse(c.Param("baseID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base ID"})
			return
		}

		if !utils.UserOwnsBase(ctx, userID, baseID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Base not found"})
			return
		}

		var tables []entity.Table
		if err := ctx.DB.Where("base_id = ?", baseID).Find(&tables).Error; err != nil {
			ctx.Logger.Error("Failed to fetch tables for base", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete base"})
			return
		}

		for _, table := range tables {
			if err := deleteTableCascade(ctx, table.ID); err != nil {
				ctx.Logger.Error("Failed to delete table", zap.String("table_id", table.ID.String()), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete base"})
				return
			}
		}

		if err := ctx.DB.Delete(&entity.Base{}, "id = ?", baseID).Error; err != nil {
			ctx.Logger.Error("Failed to delete base", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete base"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func RenameBase(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		baseID, err := uuid.Parse(c.Param("baseID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base ID"})
			return
		}

		var request struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if !utils.UserOwnsBase(ctx, userID, baseID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Base not found"})
			return
		}

		if err := ctx.DB.Model(&entity.Base{}).Where("id = ?", baseID).Update("name", request.Name).Error; err != nil {
			ctx.Logger.Error("Failed to rename base", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename base"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func OpenBase(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		baseID, err := uuid.Parse(c.Param("baseID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base ID"})
			return
		}

		if !utils.UserOwnsBase(ctx, userID, baseID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Base not found"})
			return
		}

		if err := ctx.DB.Model(&entity.Base{}).Where("id = ?", baseID).Update("modified_at", time.Now()).Error; err != nil {
			ctx.Logger.Error("Failed to touch base", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open base"})
			return
		}

		var base entity.Base
		if err := ctx.DB.First(&base, "id = ?", baseID).Error; err != nil {
			ctx.Logger.Error("Failed to fetch base", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open base"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"base": base})
	}
}

func GetBaseStatistics(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		baseID, err := uuid.Parse(c.Param("baseID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base ID"})
			return
		}

		if !utils.UserOwnsBase(ctx, userID, baseID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Base not found"})
			return
		}

		now := time.Now()
		currentMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		var totalTableCount int64
		ctx.DB.Model(&entity.Table{}).Where("base_id = ?", baseID).Count(&totalTableCount)

		var totalFieldCount int64
		ctx.DB.Model(&entity.Field{}).Joins("JOIN tables ON tables.id = fields.table_id").Where("tables.base_id = ?", baseID).Count(&totalFieldCount)

		var totalRecordCount int64
		ctx.DB.Model(&entity.Record{}).Joins("JOIN tables ON tables.id = records.table_id").Where("tables.base_id = ?", baseID).Count(&totalRecordCount)

		var recordsThisMonth int64
		ctx.DB.Model(&entity.Record{}).Joins("JOIN tables ON tables.id = records.table_id").Where("tables.base_id = ? AND records.created_at >= ?", baseID, currentMonthStart).Count(&recordsThisMonth)

		c.JSON(http.StatusOK, gin.H{
			"table_count":        totalTableCount,
			"field_count":        totalFieldCount,
			"record_count":       totalRecordCount,
			"records_this_month": recordsThisMonth,
		})
	}
}
