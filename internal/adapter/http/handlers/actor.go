package handlers

import (
	"strings"

	"repair_workflow/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	actorKey = "actor"
)

// RequireActor reads the caller identity set by the gateway in front of the
// service. Requests without an actor id are refused.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderActorID))
		if id == "" {
			abortWith(c, errMissingActor)
			return
		}
		c.Set(actorKey, entities.Actor{ID: id, Role: entities.ParseRole(c.GetHeader(HeaderActorRole))})
		c.Next()
	}
}

func actorFrom(c *gin.Context) entities.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(entities.Actor); ok {
			return a
		}
	}
	return entities.Actor{}
}
