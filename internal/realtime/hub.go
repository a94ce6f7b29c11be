package realtime

import "github.com/rs/zerolog"

// Authorizer reports whether a user may follow a device
type Authorizer func(userID, deviceID uint) bool

// Hub manages WebSocket clients and routes messages by device id.
type Hub struct {
	clients map[*Client]bool

	// deviceID -> set of subscribed clients
	subscriptions map[uint]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscribeMsg
	unsubscribe chan subscribeMsg
	broadcast   chan broadcastMsg

	authorize Authorizer
	logger    zerolog.Logger
}

type subscribeMsg struct {
	client   *Client
	deviceID uint
}

type broadcastMsg struct {
	deviceID uint
	payload  []byte
}

func NewHub(authorize Authorizer, logger zerolog.Logger) *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		subscriptions: make(map[uint]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		subscribe:     make(chan subscribeMsg),
		unsubscribe:   make(chan subscribeMsg),
		broadcast:     make(chan broadcastMsg, 256),
		authorize:     authorize,
		logger:        logger,
	}
}

// Broadcast queues payload for every client following the device
func (h *Hub) Broadcast(deviceID uint, payload []byte) {
	h.broadcast <- broadcastMsg{deviceID: deviceID, payload: payload}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug().Int("clients", len(h.clients)).Msg("Client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.logger.Debug().Int("clients", len(h.clients)).Msg("Client unregistered")
			}

		case msg := <-h.subscribe:
			if _, ok := h.clients[msg.client]; !ok {
				continue
			}
			if _, ok := h.subscriptions[msg.deviceID]; !ok {
				h.subscriptions[msg.deviceID] = make(map[*Client]bool)
			}
			h.subscriptions[msg.deviceID][msg.client] = true
			h.logger.Debug().Uint("deviceId", msg.deviceID).Int("subscribers", len(h.subscriptions[msg.deviceID])).Msg("Client subscribed")

		case msg := <-h.unsubscribe:
			if subs, ok := h.subscriptions[msg.deviceID]; ok {
				delete(subs, msg.client)
				if len(subs) == 0 {
					delete(h.subscriptions, msg.deviceID)
				}
			}

		case msg := <-h.broadcast:
			for client := range h.subscriptions[msg.deviceID] {
				select {
				case client.send <- msg.payload:
				default:
					// Client buffer full, remove it
					h.drop(client)
				}
			}
		}
	}
}

// drop closes the client's queue and removes it everywhere
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	for deviceID, subs := range h.subscriptions {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, deviceID)
		}
	}
}
