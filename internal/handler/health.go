package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check reporta el estado del servicio y sus dependencias.
func (h *HealthHandler) Check(c *gin.Context) {
	estado := gin.H{"status": "ok"}
	code := http.StatusOK

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		estado["database"] = "down"
		estado["status"] = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		estado["database"] = "up"
	}
	if h.rdb != nil {
		if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
			estado["redis"] = "down"
			estado["status"] = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			estado["redis"] = "up"
		}
	}
	c.JSON(code, estado)
}
