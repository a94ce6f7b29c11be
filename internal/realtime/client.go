package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufSize    = 256
)

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)

// Client represents a single WebSocket connection of an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// incomingMsg represents a command from the client.
type incomingMsg struct {
	Action   string `json:"action"`
	DeviceID uint   `json:"deviceId"`
}

// outgoingMsg is the envelope sent to the client.
type outgoingMsg struct {
	Type     string          `json:"type"`
	DeviceID uint            `json:"deviceId"`
	Payload  json.RawMessage `json:"payload"`
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufSize),
		userID: userID,
	}
}

// ReadPump reads subscription commands from the WebSocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn().Err(err).Uint("userId", c.userID).Msg("WebSocket read error")
			}
			break
		}
		c.handle(message)
	}
}

// handle applies one client command
func (c *Client) handle(message []byte) {
	var msg incomingMsg
	if err := json.Unmarshal(message, &msg); err != nil {
		c.hub.logger.Debug().Err(err).Msg("WebSocket message is not JSON")
		return
	}
	if msg.DeviceID == 0 {
		return
	}

	switch msg.Action {
	case actionSubscribe:
		if c.hub.authorize != nil && !c.hub.authorize(c.userID, msg.DeviceID) {
			c.hub.logger.Info().Uint("userId", c.userID).Uint("deviceId", msg.DeviceID).Msg("Subscription refused")
			return
		}
		c.hub.subscribe <- subscribeMsg{client: c, deviceID: msg.DeviceID}
	case actionUnsubscribe:
		c.hub.unsubscribe <- subscribeMsg{client: c, deviceID: msg.DeviceID}
	default:
		c.hub.logger.Debug().Str("action", msg.Action).Msg("Unknown WebSocket action")
	}
}

// WritePump writes messages to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
