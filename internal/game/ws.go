package game

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsReadLimit = 4096 // bytes per client message

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

// handleWS streams game state and accepts guesses: /ws/{id}
// Owned games need a token (header or ?token=).
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ws.SetReadLimit(wsReadLimit)

	cc := &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
	g.Attach(cc)

	// writer loop
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-cc.send:
				if !ok {
					return
				}
				_ = ws.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				_ = ws.WriteMessage(websocket.PingMessage, []byte{})
			}
		}
	}()

	g.SendStateTo(cc)

	// reader loop
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			g.SendErrorTo(cc, "bad_json", "invalid json")
			continue
		}

		switch env.Type {
		case "submit_guess":
			var p SubmitGuessPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				g.SendErrorTo(cc, "bad_input", "invalid payload")
				continue
			}
			if _, err := g.SubmitGuess(p.Guess); err != nil {
				code, _ := gameErrorCode(err)
				g.SendErrorTo(cc, code, err.Error())
			}

		case "abandon":
			if err := g.Abandon(); err != nil {
				code, _ := gameErrorCode(err)
				g.SendErrorTo(cc, code, err.Error())
			}

		case "get_state":
			g.SendStateTo(cc)

		default:
			g.SendErrorTo(cc, "unknown_type", "unknown message type")
		}
	}

	// disconnect
	g.Detach(cc)
	cc.Close()
	<-done
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
