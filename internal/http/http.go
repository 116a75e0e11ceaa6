package http

import (
	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	v1 := h.engine.Group("/api/v1")
	h.setupAuthRoutes(v1)
	h.setupBaseRoutes(v1)
	h.setupTableRoutes(v1)
	h.setupFieldRoutes(v1)
	h.setupRecordRoutes(v1)
	h.setupCellRoutes(v1)
	h.setupViewRoutes(v1)
	h.setupSearchRoutes(v1)
}

func (h *APIService) setupAuthRoutes(group *gin.RouterGroup) {
	auth := group.Group("/auth")

	auth.GET("/login", Login(h.context))
	auth.GET("/callback", Callback(h.context))
	auth.POST("/logout", Logout(h.context))
	auth.GET("/me", middleware.JWTAuthMiddleware(), GetUserInfo(h.context))
}

func (h *APIService) setupBaseRoutes(group *gin.RouterGroup) {
	bases := group.Group("/bases")
	bases.Use(middleware.JWTAuthMiddleware())

	bases.GET("/", GetBases(h.context))
	bases.POST("/", CreateBase(h.context))
	bases.DELETE("/:baseID", DeleteBase(h.context))
	bases.PATCH("/:baseID", RenameBase(h.context))
	bases.POST("/:baseID/open", OpenBase(h.context))
	bases.GET("/:baseID/stats", GetBaseStatistics(h.context))
}

func (h *APIService) setupTableRoutes(group *gin.RouterGroup) {
	tables := group.Group("/tables")
	tables.Use(middleware.JWTAuthMiddleware())

	tables.POST("/", CreateTable(h.context))
	tables.DELETE("/:tableID", DeleteTable(h.context))
	tables.GET("/:tableID/fields", GetFields(h.context))
	tables.GET("/:tableID/views", GetViews(h.context))
	tables.GET("/:tableID/views/latest", GetLatestView(h.context))
	tables.GET("/:tableID/records", ListRecords(h.context))
}

func (h *APIService) setupFieldRoutes(group *gin.RouterGroup) {
	fields := group.Group("/fields")
	fields.Use(middleware.JWTAuthMiddleware())

	fields.POST("/", CreateField(h.context))
	fields.DELETE("/:fieldID", DeleteField(h.context))
	fields.PATCH("/:fieldID", RenameField(h.context))
}

func (h *APIService) setupRecordRoutes(group *gin.RouterGroup) {
	records := group.Group("/records")
	records.Use(middleware.JWTAuthMiddleware())

	records.POST("/", CreateRecords(h.context))
}

func (h *APIService) setupCellRoutes(group *gin.RouterGroup) {
	cells := group.Group("/cells")
	cells.Use(middleware.JWTAuthMiddleware())

	cells.PUT("/text", UpdateTextCell(h.context))
	cells.PUT("/number", UpdateNumberCell(h.context))
}

func (h *APIService) setupViewRoutes(group *gin.RouterGroup) {
	views := group.Group("/views")
	views.Use(middleware.JWTAuthMiddleware())

	views.POST("/", CreateView(h.context))
	views.DELETE("/:viewID", DeleteView(h.context))
	views.PUT("/:viewID/sort", UpdateViewSort(h.context))
	views.PUT("/:viewID/filters", UpdateViewFilters(h.context))
	views.PUT("/:viewID/hidden", UpdateViewHiddenFields(h.context))
}

func (h *APIService) setupSearchRoutes(group *gin.RouterGroup) {
	search := group.Group("/search")
	search.Use(middleware.JWTAuthMiddleware())

	search.GET("/records", SearchRecords(h.context))
}
