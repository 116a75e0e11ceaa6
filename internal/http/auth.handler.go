package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/entity"
	"github.com/eoru5/airytable/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

func Login(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := ctx.OAuth2Config.AuthCodeURL("state", oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}

func Callback(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		token, err := ctx.OAuth2Config.Exchange(context.Background(), code)
		if err != nil {
			ctx.Logger.Error("Failed to exchange token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange token"})
			return
		}

		client := ctx.OAuth2Config.Client(context.Background(), token)
		resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
		if err != nil {
			ctx.Logger.Error("Failed to get user info", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user info"})
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			ctx.Logger.Error("Failed to read user info response body", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read user info response body"})
			return
		}

		user := struct {
			Sub     string `json:"sub"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}{}

		if err := json.Unmarshal(body, &user); err != nil {
			ctx.Logger.Error("Failed to unmarshal user info", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unmarshal user info"})
			return
		}

		var dbUser entity.User
		if err := ctx.DB.Where("email = ?", user.Email).First(&dbUser).Error; err != nil {
			dbUser = entity.User{
				Email:          user.Email,
				Name:           user.Name,
				ProfilePicture: user.Picture,
			}
			if err := ctx.DB.Create(&dbUser).Error; err != nil {
				ctx.Logger.Error("Failed to create user", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		}

		tokenString, err := utils.GenerateJWT(dbUser.ID.String())
		if err != nil {
			ctx.Logger.Error("Failed to generate JWT token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate JWT token"})
			return
		}

		frontendURL := os.Getenv("FRONTEND_URL")
		if frontendURL == "" {
			frontendURL = "http://localhost:3000"
		}
		c.Redirect(http.StatusTemporaryRedirect, frontendURL+"/?token="+tokenString)
	}
}

func Logout(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("token", "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
	}
}

func GetUserInfo(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user entity.User
		if err := ctx.DB.First(&user, "id = ?", userID).Error; err != nil {
			ctx.Logger.Error("Failed to find user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
