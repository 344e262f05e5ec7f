// Package http exposes the websocket endpoint and the read-only room lookup API.
package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/adapters/rtc"
	"github.com/dkeye/Huddle/internal/adapters/signal"
	"github.com/dkeye/Huddle/internal/app/orch"
	"github.com/dkeye/Huddle/internal/config"
	"github.com/dkeye/Huddle/internal/domain"
)

const (
	sessionName    = "HuddleSessions"
	clientTokenKey = "client_token"
	sessionMaxAge  = 3600 * 24 * 7
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware pins a random token to the browser session. It only
// correlates log lines; it carries no identity in rooms.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		token, _ := sess.Get(clientTokenKey).(string)
		if token == "" {
			token = genClientToken()
			sess.Set(clientTokenKey, token)
			if err := sess.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set(clientTokenKey, token)
		c.Next()
	}
}

func SignalOptions(cfg *config.Config) signal.Options {
	return signal.Options{
		ReadLimit:         cfg.ReadLimit,
		PingPeriod:        cfg.PingPeriod,
		PongWait:          cfg.PongWait,
		WriteWait:         cfg.WriteWait,
		SendBuffer:        cfg.SendBuffer,
		MessagesPerSecond: cfg.Rate.MessagesPerSecond,
		Burst:             cfg.Rate.Burst,
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, ice webrtc.Configuration) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: sessionMaxAge, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(ClientTokenMiddleware())

	ctrl := signal.NewSignalWSController(o, SignalOptions(cfg))
	clientICE := rtc.NewClientConfig(ice)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"rooms":       o.Rooms.Count(),
			"connections": o.Registry.Count(),
		})
	})

	api := r.Group("/api")

	api.GET("/ws", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("client", c.GetString(clientTokenKey)).Msg("ws endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": o.Rooms.List()})
	})

	api.GET("/rooms/:code", func(c *gin.Context) {
		code := domain.ParseRoomCode(c.Param("code"))
		info, ok := o.Lookup(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrRoomNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	})

	api.GET("/rtc/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, clientICE)
	})

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")
	return r
}
