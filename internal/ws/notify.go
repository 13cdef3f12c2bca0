package ws

import (
	"encoding/json"

	"ideahub/internal/domain/notification"

	"github.com/google/uuid"
)

// Notifier pushes notification events to a user's open connections.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) Notify(recipient uuid.UUID, ev notification.Event) {
	if n == nil || n.hub == nil || recipient == uuid.Nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		n.hub.logger.Printf("[WS] encode event type=%s err=%v", ev.Type, err)
		return
	}
	n.hub.SendTo(recipient, b)
}
