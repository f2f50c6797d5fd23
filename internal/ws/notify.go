package ws

import (
	"encoding/json"
	"time"

	"hackmatch/internal/domain/request"

	"github.com/google/uuid"
)

type TeamEvent struct {
	Type        string `json:"type"`
	TeamID      string `json:"team_id"`
	UserID      string `json:"user_id"`
	RequestID   string `json:"request_id,omitempty"`
	RequestType string `json:"request_type,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// Notifier fans team lifecycle events out to every connected client.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) RequestCreated(rq request.TeamRequest) {
	if n == nil {
		return
	}
	n.publish(TeamEvent{
		Type:        "team_request_created",
		TeamID:      rq.TeamID.String(),
		UserID:      rq.UserID.String(),
		RequestID:   rq.ID.String(),
		RequestType: rq.Type,
	})
}

func (n *Notifier) MemberJoined(teamID, userID uuid.UUID) {
	if n == nil {
		return
	}
	n.publish(TeamEvent{
		Type:   "team_member_joined",
		TeamID: teamID.String(),
		UserID: userID.String(),
	})
}

func (n *Notifier) publish(evt TeamEvent) {
	evt.Timestamp = time.Now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
