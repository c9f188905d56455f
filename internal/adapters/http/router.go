// Package http serves a local read-only view of the session for
// debugging. Rendering is a pure function of the snapshot; nothing here
// holds mutation rights over the session.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/app"
	"github.com/huddlekit/huddle/internal/config"
)

func SetupRouter(cfg *config.Config, sess *app.Session) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	log.Info().Str("module", "adapters.http").Str("addr", cfg.DebugAddr).Msg("router setup")

	api := r.Group("/api")

	api.GET("/status", func(c *gin.Context) {
		snap := sess.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"room":   snap.Room,
			"status": snap.Status,
			"self":   snap.Self,
		})
	})

	api.GET("/roster", func(c *gin.Context) {
		snap := sess.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"participants": snap.Participants,
			"count":        len(snap.Participants),
		})
	})

	api.GET("/pending", func(c *gin.Context) {
		snap := sess.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"pending": snap.Pending,
		})
	})

	return r
}
