package middleware

import (
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbershop-bot/internal/config"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
)

const (
	ContextStaffID  = "staffID"
	ContextUserRole = "userRole"
)

// Papéis aceitos na API de consulta.
var StaffRoles = []string{"staff", "admin"}

// IssueToken gera um token HS256 para a equipe da barbearia.
func IssueToken(secret, staffID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  staffID,
		"role": role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token ausente.")
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho Authorization inválido.")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token inválido.")
			return
		}

		staffID, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if staffID == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Token sem identificação.")
			return
		}

		if !slices.Contains(StaffRoles, role) {
			httperr.Forbidden(c, "forbidden_role", "Acesso restrito à equipe.")
			return
		}

		c.Set(ContextStaffID, staffID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}
