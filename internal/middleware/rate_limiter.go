package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"comandapos/internal/apierror"
)

// rateLimiter es una ventana deslizante por IP, en memoria. Alcanza para una
// instancia; con varias réplicas el límite es por réplica.
type rateLimiter struct {
	mu       sync.Mutex
	ventana  time.Duration
	max      int
	requests map[string][]time.Time
}

func newRateLimiter(max int, ventana time.Duration) *rateLimiter {
	return &rateLimiter{
		ventana:  ventana,
		max:      max,
		requests: make(map[string][]time.Time),
	}
}

func (rl *rateLimiter) permitir(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ahora := time.Now()
	corte := ahora.Add(-rl.ventana)
	vivos := rl.requests[ip][:0]
	for _, t := range rl.requests[ip] {
		if t.After(corte) {
			vivos = append(vivos, t)
		}
	}
	if len(vivos) >= rl.max {
		rl.requests[ip] = vivos
		return false
	}
	rl.requests[ip] = append(vivos, ahora)
	return true
}

// RateLimiter limita el tráfico general por IP.
func RateLimiter(max int, ventana time.Duration) gin.HandlerFunc {
	rl := newRateLimiter(max, ventana)
	return func(c *gin.Context) {
		if !rl.permitir(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("demasiadas solicitudes, intente más tarde"))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter aprieta el límite sobre el endpoint de login para frenar
// fuerza bruta de credenciales.
func LoginRateLimiter() gin.HandlerFunc {
	return RateLimiter(10, time.Minute)
}
