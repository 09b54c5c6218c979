package middleware

import (
	"context"
	"net/http"
	"strings"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/util"
	"training_portal_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionChecker 登出后 token 立即失效
type SessionChecker interface {
	IsLoggedIn(ctx context.Context, userID uint) (bool, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

func AuthMiddleware(secret string, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("jwt rejected", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		loggedIn, err := sessions.IsLoggedIn(c.Request.Context(), claims.UserID)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}
		if !loggedIn {
			util.Error(c, http.StatusUnauthorized, util.ErrSessionExpired.Error())
			c.Abort()
			return
		}

		util.SetPrincipal(c, claims.Principal())
		c.Next()
	}
}

// AdminOnly 只允许管理员访问管理接口
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := util.GetPrincipal(c)
		if principal == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if _, ok := principal.(model.AdminPrincipal); !ok {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal := util.GetPrincipal(c); principal != nil {
			userID := principal.ID()
			// 异步更新，不阻塞主流程
			go func() {
				if err := repo.UpdateLastSeen(userID); err != nil {
					logger.Log.Warn("update last seen failed", zap.Uint("userID", userID), zap.Error(err))
				}
			}()
		}
		c.Next()
	}
}
