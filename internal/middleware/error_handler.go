package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"comandapos/internal/apierror"
)

// Logger registra cada request con zerolog una vez resuelta.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		evento := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evento = log.Error()
		} else if c.Writer.Status() >= http.StatusBadRequest {
			evento = log.Warn()
		}
		evento.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(inicio)).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}

// Recovery captura panics y responde 500 sin tirar el proceso.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Msg("panic recuperado")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("error interno del servidor"))
			}
		}()
		c.Next()
	}
}

// ErrorHandler responde el último error acumulado en el contexto cuando el
// handler no escribió respuesta propia.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last()
		log.Error().
			Err(err.Err).
			Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("error no manejado")
		c.JSON(http.StatusInternalServerError, apierror.New("error interno del servidor"))
	}
}
