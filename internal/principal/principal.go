package principal

import "github.com/gin-gonic/gin"

// Principal is the authenticated caller every service operation runs as.
// It is resolved by the auth middleware; services never touch tokens.
type Principal struct {
	TenantID   string
	MemberID   string
	Role       string
	Sector     string
	Privileged bool
}

// FromGin rebuilds the principal the auth middleware stored on the request.
func FromGin(c *gin.Context) Principal {
	return Principal{
		TenantID:   c.GetString("tenant_id"),
		MemberID:   c.GetString("member_id"),
		Role:       c.GetString("role"),
		Sector:     c.GetString("sector"),
		Privileged: c.GetBool("privileged"),
	}
}
