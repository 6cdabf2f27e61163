package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"coinmarker/internal/application/port"
	"coinmarker/internal/application/usecase/editor"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	maxMessage   = 1 << 20
	viewBuffer   = 16
)

// clientMessage 浏览器发来的消息
type clientMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// wsSession 一个 websocket 连接对应一个编辑会话
type wsSession struct {
	conn  *websocket.Conn
	views chan port.View
	done  chan struct{}
	once  sync.Once
	ctrl  *editor.Controller
}

// WriteView 由会话事件循环调用；写端跟不上时丢弃旧视图，只保留最新的
func (ws *wsSession) WriteView(v port.View) error {
	for {
		select {
		case ws.views <- v:
			return nil
		case <-ws.done:
			return nil
		default:
		}
		select {
		case <-ws.views:
		default:
		}
	}
}

func (ws *wsSession) close() {
	ws.once.Do(func() {
		close(ws.done)
		_ = ws.conn.Close()
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	ws := &wsSession{
		conn:  conn,
		views: make(chan port.View, viewBuffer),
		done:  make(chan struct{}),
	}
	ws.ctrl = s.backend.NewSession(ws)
	s.track(ws)

	log.Info().Str("session", ws.ctrl.ID()).Str("remote", r.RemoteAddr).Msg("editor session connected")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ws.writeLoop()
	}()

	ws.readLoop()

	ws.ctrl.Close()
	ws.close()
	wg.Wait()
	s.untrack(ws)

	log.Info().Str("session", ws.ctrl.ID()).Msg("editor session disconnected")
}

func (ws *wsSession) readLoop() {
	ws.conn.SetReadLimit(maxMessage)
	_ = ws.conn.SetReadDeadline(time.Now().Add(pongWait))
	ws.conn.SetPongHandler(func(string) error {
		_ = ws.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, b, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", ws.ctrl.ID()).Msg("websocket read failed")
			}
			return
		}
		_ = ws.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg clientMessage
		if err := json.Unmarshal(b, &msg); err != nil {
			log.Warn().Err(err).Str("session", ws.ctrl.ID()).Msg("bad client message")
			continue
		}
		switch msg.Type {
		case "input":
			ws.ctrl.Input(msg.Text)
		default:
			log.Debug().Str("type", msg.Type).Msg("unknown client message ignored")
		}
	}
}

func (ws *wsSession) writeLoop() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	// initial snapshot so the page starts in a known state
	if err := ws.write(ws.ctrl.View()); err != nil {
		ws.close()
		return
	}

	for {
		select {
		case <-ws.done:
			return
		case v := <-ws.views:
			if err := ws.write(v); err != nil {
				log.Debug().Err(err).Msg("websocket write failed")
				ws.close()
				return
			}
		case <-ping.C:
			if err := ws.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				ws.close()
				return
			}
		}
	}
}

func (ws *wsSession) write(v port.View) error {
	_ = ws.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.conn.WriteJSON(v)
}
