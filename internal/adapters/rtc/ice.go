// Package rtc describes the ICE servers browsers use to reach each other.
// Media flows peer to peer; the server never opens a media session.
package rtc

import (
	"fmt"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/config"
)

func DefaultWebRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{
				URLs: []string{"stun:stun.l.google.com:19302"},
			},
		},
	}
}

// FromConfig converts configured servers; an empty list falls back to the default STUN server.
func FromConfig(servers []config.ICEServer) webrtc.Configuration {
	if len(servers) == 0 {
		return DefaultWebRTCConfig()
	}
	out := webrtc.Configuration{ICEServers: make([]webrtc.ICEServer, 0, len(servers))}
	for _, s := range servers {
		srv := webrtc.ICEServer{URLs: append([]string(nil), s.URLs...), Username: s.Username}
		if s.Credential != "" {
			srv.Credential = s.Credential
		}
		out.ICEServers = append(out.ICEServers, srv)
	}
	return out
}

// Validate lets pion parse the server URLs by building a throwaway peer
// connection, so a typo in config fails at startup instead of in browsers.
func Validate(cfg webrtc.Configuration) error {
	pc, err := webrtc.NewPeerConnection(cfg)
	if err != nil {
		return fmt.Errorf("invalid ice configuration: %w", err)
	}
	if err := pc.Close(); err != nil {
		log.Warn().Err(err).Str("module", "rtc").Msg("close validation peer connection")
	}
	return nil
}

// ClientConfig is the JSON body served to browsers.
type ClientConfig struct {
	ICEServers []webrtc.ICEServer `json:"iceServers"`
}

func NewClientConfig(cfg webrtc.Configuration) ClientConfig {
	return ClientConfig{ICEServers: cfg.ICEServers}
}
