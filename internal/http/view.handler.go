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
)

func CreateView(ctx *appcontext.Context) gin.HandlerFunc {
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

		view := entity.View{
			Name:         request.Name,
			TableID:      tableID,
			Sort:         query.SortList{},
			Filters:      query.FilterList{},
			HiddenFields: query.FieldIDSet{},
		}
		if err := ctx.DB.Create(&view).Error; err != nil {
			ctx.Logger.Error("Failed to create view", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create view"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"view": view})
	}
}

func DeleteView(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		if !utils.UserOwnsView(ctx, userID, viewID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "View not found"})
			return
		}

		if err := ctx.DB.Delete(&entity.View{}, "id = ?", viewID).Error; err != nil {
			ctx.Logger.Error("Failed to delete view", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete view"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Criteria updates persist whatever the UI holds, half-filled rows and
// all. Validation happens at query time, where bad entries are skipped,
// so a transiently inconsistent view never breaks a save.

func UpdateViewSort(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		var request struct {
			Sort query.SortList `json:"sort"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if !utils.UserOwnsView(ctx, userID, viewID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "View not found"})
			return
		}

		if err := ctx.DB.Model(&entity.View{}).Where("id = ?", viewID).Update("sort", request.Sort).Error; err != nil {
			ctx.Logger.Error("Failed to update view sort", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update view sort"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func UpdateViewFilters(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		var request struct {
			Filters query.FilterList `json:"filters"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if !utils.UserOwnsView(ctx, userID, viewID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "View not found"})
			return
		}

		if err := ctx.DB.Model(&entity.View{}).Where("id = ?", viewID).Update("filters", request.Filters).Error; err != nil {
			ctx.Logger.Error("Failed to update view filters", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update view filters"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func UpdateViewHiddenFields(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		var request struct {
			HiddenFields query.FieldIDSet `json:"hiddenFields"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if !utils.UserOwnsView(ctx, userID, viewID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "View not found"})
			return
		}

		if err := ctx.DB.Model(&entity.View{}).Where("id = ?", viewID).Update("hidden_fields", request.HiddenFields).Error; err != nil {
			ctx.Logger.Error("Failed to update hidden fields", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hidden fields"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
