package handlers

import (
	"encoding/json"

	"github.com/theaitel/loginaitel-sub003/services/privacy"

	"github.com/gin-gonic/gin"
)

// privacyRole maps the authenticated actor's role onto a filtering role.
// Platform operators see privileged views; every tenant-side role gets the
// client treatment.
func privacyRole(c *gin.Context) privacy.Role {
	switch c.GetString("role") {
	case "admin":
		return privacy.RoleAdmin
	case "engineer":
		return privacy.RoleEngineer
	default:
		return privacy.RoleClient
	}
}

// tenantID returns the client scope of the authenticated actor.
func tenantID(c *gin.Context) string {
	return c.GetString("clientID")
}

// toGeneric round-trips a value through JSON so the recursive filter sees
// plain maps and slices instead of typed structs.
func toGeneric(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
