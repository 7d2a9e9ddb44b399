package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-admin/internal/config"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
)

const (
	ContextUserID       = "userID"
	ContextBarbershopID = "barbershopID"
	ContextUserRole     = "userRole"
)

var ErrInvalidToken = errors.New("invalid_token")

// Claims é o que a equipe carrega no token emitido pelo painel.
type Claims struct {
	UserID       uint
	BarbershopID uint
	Role         string
}

// ParseToken valida um token HS256 e extrai a barbearia. Também é usado pelo
// canal realtime, que recebe o token pela query string.
func ParseToken(secret, tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	userID, ok1 := claims["sub"].(float64)
	barbershopID, ok2 := claims["barbershopId"].(float64)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 || barbershopID <= 0 {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: uint(userID), BarbershopID: uint(barbershopID), Role: role}, nil
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextBarbershopID, claims.BarbershopID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// BarbershopID lê o tenant gravado pelo AuthMiddleware.
func BarbershopID(c *gin.Context) uint {
	return c.GetUint(ContextBarbershopID)
}

func UserID(c *gin.Context) *uint {
	id := c.GetUint(ContextUserID)
	if id == 0 {
		return nil
	}
	return &id
}
