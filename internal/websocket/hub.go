package websocket

import "github.com/rs/zerolog/log"

// userMessage targets every live connection of one user.
type userMessage struct {
	userID  int64
	payload []byte
}

// Hub maintains the set of active clients and pushes messages to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Messages addressed to a single user's connections.
	notify chan userMessage

	// A map of user IDs to the set of that user's connections.
	subscriptions map[int64]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		notify:        make(chan userMessage, 64),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[int64]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop. All map access stays on
// this goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Int64("user_id", client.UserID).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.notify:
			for client := range h.subscriptions[msg.userID] {
				select {
				case client.Send <- msg.payload:
				default:
					close(client.Send)
					delete(h.clients, client)
					delete(h.subscriptions[msg.userID], client)
				}
			}
		}
	}
}

// NotifyUser queues a message for every live connection of the given
// user. Safe to call from any goroutine; drops the message if the hub
// queue is full rather than blocking the caller.
func (h *Hub) NotifyUser(userID int64, message []byte) {
	select {
	case h.notify <- userMessage{userID: userID, payload: message}:
	default:
		log.Warn().Int64("user_id", userID).Msg("Notification queue full, dropping push")
	}
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
