package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/studio"
)

const (
	previewWriteWait = 10 * time.Second
	previewPongWait  = 60 * time.Second
	previewPingEvery = (previewPongWait * 9) / 10
	previewMaxFrame  = maxBodyBytes
)

// msgReady is sent once when a session starts.
const msgReady = "ready"

// handlePreview runs one live preview session. Every inbound message
// rebuilds the session's design; a rebuild arriving while another is
// pending replaces it. Failed rebuilds answer with an error frame and keep
// the last good state.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ctrl := studio.NewController(s.runner,
		studio.WithParser(s.parser),
		studio.WithOptions(s.defaults),
		studio.WithLogger(s.logger))
	session := studio.NewSession(ctrl)
	logger := s.logger.With("session", session.ID)
	logger.Info("preview connected")
	defer logger.Info("preview closed")

	conn.SetReadLimit(previewMaxFrame)
	if err := conn.SetReadDeadline(time.Now().Add(previewPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(previewPongWait))
	})

	writeCh := make(chan studio.Reply, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(previewPingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(previewWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					logger.Debug("preview write failed", "err", err)
					cancel()
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(previewWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// The session loop owns the session; the read loop only hands over the
	// latest message.
	inbox := make(chan studio.Message, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-inbox:
				push(writeCh, handleRecovered(ctx, logger, session, msg))
			}
		}
	}()

	push(writeCh, studio.Reply{Type: msgReady, Session: session.ID})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("preview read failed", "err", err)
			}
			break
		}
		msg, err := studio.DecodeMessage(data)
		if err != nil {
			push(writeCh, studio.Reply{Type: studio.MsgError, Session: session.ID, Code: "INVALID_INPUT", Error: "invalid message"})
			continue
		}
		supersede(inbox, msg)
	}

	cancel()
	<-writerDone
}

// handleRecovered runs one rebuild. The session loop runs outside the
// router's Recoverer, so a panic becomes an error frame here.
func handleRecovered(ctx context.Context, logger *log.Logger, session *studio.Session, msg studio.Message) (reply studio.Reply) {
	defer func() {
		if v := recover(); v != nil {
			logger.Error("preview rebuild panicked", "type", msg.Type, "panic", v)
			reply = studio.Reply{Type: studio.MsgError, Session: session.ID, Code: string(errors.ErrCodeInternal), Error: "internal error"}
		}
	}()
	return session.Handle(ctx, msg)
}

// supersede delivers msg, dropping a pending message that was not yet
// picked up.
func supersede(ch chan studio.Message, msg studio.Message) {
	for {
		select {
		case ch <- msg:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// push queues out, dropping the oldest queued reply when the writer falls
// behind.
func push(ch chan studio.Reply, out studio.Reply) {
	select {
	case ch <- out:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- out:
	default:
	}
}

// checkOrigin allows configured origins, or same-host requests when none
// are configured. Requests without an Origin header are not browsers and
// are allowed.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	if len(s.cfg.AllowedOrigins) > 0 {
		return false
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}
