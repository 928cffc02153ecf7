package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the authenticated actor's ID in the
// request context. Using a custom type prevents collisions.
const actorIDKey = contextKey("actorID")

// GetActorIDFromContext retrieves the authenticated actor ID from the Gin
// context. It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(actorIDKey); v != nil {
		actorID, ok := v.(string)
		return actorID, ok
	}
	return "", false
}
