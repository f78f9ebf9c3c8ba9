package httpserver

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// addFlash queues a one-shot message shown on the next rendered page.
func addFlash(c *gin.Context, msg string) error {
	session := sessions.Default(c)
	session.AddFlash(msg)
	return session.Save()
}

// popFlashes drains queued messages. Call it before writing the response body.
func popFlashes(c *gin.Context) ([]string, error) {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	if err := session.Save(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		out = append(out, fmt.Sprint(f))
	}
	return out, nil
}
