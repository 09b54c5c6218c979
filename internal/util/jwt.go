package util

import (
	"time"
	"training_portal_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const principalContextKey = "principal"

type Claims struct {
	UserID     uint           `json:"user_id"`
	Username   string         `json:"username"`
	Role       model.UserRole `json:"role"`
	Email      string         `json:"email"`
	Department string         `json:"department,omitempty"`
	jwt.RegisteredClaims
}

func GenerateJWT(p model.Principal, secret string, expiration time.Duration) (string, error) {
	view := model.ViewOf(p)
	claims := &Claims{
		UserID:     view.ID,
		Username:   view.Username,
		Role:       view.Role,
		Email:      view.Email,
		Department: view.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrUnauthorized
}

// Principal 将 token 声明还原为对应角色的 Principal
func (c *Claims) Principal() model.Principal {
	return model.PrincipalView{
		ID:         c.UserID,
		Username:   c.Username,
		Email:      c.Email,
		Role:       c.Role,
		Department: c.Department,
	}.Principal()
}

func SetPrincipal(c *gin.Context, p model.Principal) {
	c.Set(principalContextKey, p)
}

func GetPrincipal(c *gin.Context) model.Principal {
	v, exists := c.Get(principalContextKey)
	if !exists {
		return nil
	}
	p, ok := v.(model.Principal)
	if !ok {
		return nil
	}
	return p
}
