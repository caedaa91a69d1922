package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"travian-hq-server/internal/engine"
	"travian-hq-server/internal/network"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/logger"
	"travian-hq-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между ws-соединением монитора и хабом. Соединение
// одностороннее: клиент только получает снимки, команд от него нет.
type Client struct {
	Engine *engine.Service
	Hub    *network.Hub
	Conn   *websocket.Conn
	Send   chan api.MonitorState
	ID     string
}

func NewClient(eng *engine.Service, hub *network.Hub, conn *websocket.Conn) *Client {
	c := &Client{
		Engine: eng,
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan api.MonitorState, 16),
		ID:     utils.GenerateID(),
	}

	// Подписка на рассылку и пересылка кадров в писателя.
	updates := hub.Register(c.ID)
	go func() {
		for state := range updates {
			select {
			case c.Send <- state:
			default:
			}
		}
		close(c.Send)
	}()

	// Свежеподключенный монитор сразу получает последний снимок, не
	// дожидаясь следующего цикла.
	if last := eng.LastState(); last != nil {
		c.Send <- *last
	}

	logger.Log.WithField("client", c.ID).Info("Monitor connected")
	return c
}

// readPump вычитывает входящие кадры. Полезных данных в них нет, но
// чтение обязательно: через него работают pong-хендлер и детект обрыва.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close after readPump failed")
		}
		logger.Log.WithField("client", c.ID).Info("Monitor disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			return
		}
	}
}

// writePump отправляет снимки клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close after writePump failed")
		}
	}()

	for {
		select {
		case state, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(state); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
