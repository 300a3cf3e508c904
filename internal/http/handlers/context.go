package handlers

import (
	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

const authClaimsKey = "auth_claims"

// SetAuthClaims 把鉴权信息写入请求上下文（中间件用）
func SetAuthClaims(c *gin.Context, claims *service.AuthClaims) {
	c.Set(authClaimsKey, claims)
}

// authClaims 取当前请求的鉴权信息
func authClaims(c *gin.Context) *service.AuthClaims {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*service.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorName 当前操作人用户名（审计归属用）
func actorName(c *gin.Context) string {
	claims := authClaims(c)
	if claims == nil {
		return ""
	}
	return claims.Username
}

// isOwner 当前用户是否老板角色
func isOwner(c *gin.Context) bool {
	claims := authClaims(c)
	return claims != nil && claims.Role == constants.RoleOwner
}
