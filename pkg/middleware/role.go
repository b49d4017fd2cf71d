// Package middleware 提供角色与权限相关的中间件和辅助方法。
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Role 表示请求方的角色（数值越大权限越高）。
// 归档服务只区分三级：普通用户、运维审计（只读管理数据）、管理员。
type Role int

const (
	RoleUser Role = iota + 1
	RoleAuditor
	RoleAdmin
)

// String 返回角色的字符串表示。
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAuditor:
		return "auditor"
	case RoleUser:
		fallthrough
	default:
		return "user"
	}
}

type roleKey struct{}

// parseRole 从字符串解析角色，未知值降级为 user。
func parseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "auditor":
		return RoleAuditor
	default:
		return RoleUser
	}
}

// RoleMiddleware 解析反向代理注入的 X-Auth-Request-Groups（逗号分隔，
// 取最高权限组），回退 X-Role，注入到 gin.Context 和 request.Context。
// 缺省角色为 user。
func RoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := RoleUser

		if groups := c.GetHeader("X-Auth-Request-Groups"); groups != "" {
			for _, g := range strings.Split(groups, ",") {
				if pr := parseRole(g); pr > r {
					r = pr
				}
			}
		} else {
			r = parseRole(c.GetHeader("X-Role"))
		}

		c.Set("role", r)

		ctx := context.WithValue(c.Request.Context(), roleKey{}, r)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetRole 从 gin.Context 获取当前请求角色。
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get("role"); ok {
		if r, ok2 := v.(Role); ok2 {
			return r
		}
	}
	// 回退到 request context
	if v := c.Request.Context().Value(roleKey{}); v != nil {
		if r, ok := v.(Role); ok {
			return r
		}
	}

	return RoleUser
}

// RequireMinRole 要求最小角色，不满足则返回 403。
func RequireMinRole(minRole Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) < minRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
			return
		}

		c.Next()
	}
}
