package http

import (
	"fmt"
	"net/http"

	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

func SearchRecords(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID := c.Query("table_id")
		q := c.Query("q")

		if tableID == "" || q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing table_id or search query"})
			return
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		tableUUID, err := uuid.Parse(tableID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
			return
		}

		if !utils.UserOwnsTable(ctx, userID, tableUUID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}

		searchParams := &meilisearch.SearchRequest{
			Query:  q,
			Filter: fmt.Sprintf("table_id = %s", tableUUID),
		}

		searchResult, err := ctx.MeilisearchClient.Index("records").Search(q, searchParams)
		if err != nil {
			ctx.Logger.Error("Failed to perform search", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform search"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"results": searchResult.Hits})
	}
}
