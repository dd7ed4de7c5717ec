package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"comandapos/internal/apierror"
)

const claimsKey = "claims"

// Roles del sistema.
const (
	RolMesero        = "mesero"
	RolCocina        = "cocina"
	RolBar           = "bar"
	RolCajero        = "cajero"
	RolAdministrador = "administrador"
)

// JWTClaims son los claims firmados en los tokens de acceso y refresh.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
	jwt.RegisteredClaims
}

// ParseToken valida la firma y vigencia del token y devuelve sus claims.
func ParseToken(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Auth exige un Bearer token válido y deja los claims en el contexto.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("falta el token de autenticación"))
			return
		}
		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token inválido o vencido"))
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole corta con 403 cuando el rol autenticado no está en la lista.
// El administrador pasa siempre.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("falta el token de autenticación"))
			return
		}
		if claims.Rol == RolAdministrador {
			c.Next()
			return
		}
		for _, rol := range roles {
			if claims.Rol == rol {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("el rol no tiene permiso para esta operación"))
	}
}

// GetClaims devuelve los claims dejados por Auth, o nil fuera de rutas autenticadas.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
