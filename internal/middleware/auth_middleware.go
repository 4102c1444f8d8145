package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"organizerpro/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys populated by AuthMiddleware. Identity issuing lives outside
// this service; the token is the collaborator contract for the authenticated
// principal {tenant, member, role, sector}.
const (
	CtxTenantID   = "tenant_id"
	CtxMemberID   = "member_id"
	CtxRole       = "role"
	CtxSector     = "sector"
	CtxPrivileged = "privileged"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code := "INVALID_TOKEN"
			msg := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code, msg = "TOKEN_EXPIRED", "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		tenantID, ok := claims["tenant_id"].(string)
		if !ok || tenantID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Tenant ID not found in token", nil)
			c.Abort()
			return
		}

		memberID, ok := claims["member_id"].(string)
		if !ok || memberID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Member ID not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		sector, _ := claims["sector"].(string)

		c.Set(CtxTenantID, tenantID)
		c.Set(CtxMemberID, memberID)
		c.Set(CtxRole, role)
		c.Set(CtxSector, sector)
		c.Set(CtxPrivileged, IsPrivilegedRole(role))

		c.Next()
	}
}

// IsPrivilegedRole reports whether a role may bypass the lock gate and the
// past-date policy, and may drive payroll approval/payment.
func IsPrivilegedRole(role string) bool {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case "OWNER", "ADMIN":
		return true
	default:
		return false
	}
}

func PrivilegedOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxPrivileged) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
