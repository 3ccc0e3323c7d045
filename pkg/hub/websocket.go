package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gorilla/websocket"
)

// wsSubscriber owns the dedicated websocket connection used for scene
// state-change notifications. Home-Assistant-style hubs expose this over
// /api/websocket: an auth handshake followed by a long-lived event stream.
// Only the receive loop's own goroutine ever touches conn, matching the
// single-reader convention gorilla/websocket requires.
type wsSubscriber struct {
	conn *websocket.Conn
	id   int
}

type wsAuthRequired struct {
	Type string `json:"type"`
}

type wsAuthMessage struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token"`
}

type wsSubscribeCommand struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	EventType string `json:"event_type"`
}

type wsEventEnvelope struct {
	Type  string `json:"type"`
	Event struct {
		EventType string `json:"event_type"`
		Data      struct {
			EntityID string `json:"entity_id"`
			OldState struct {
				State string `json:"state"`
			} `json:"old_state"`
			NewState struct {
				State string `json:"state"`
			} `json:"new_state"`
		} `json:"data"`
	} `json:"event"`
}

// SubscribeSceneStateChanges dials the hub's websocket API, authenticates,
// subscribes to state_changed events, and dispatches every event whose
// entity-id has the "scene." domain to handler. The read loop runs on its own
// goroutine for the lifetime of ctx; handler must not block it, which is why
// every caller in this module routes delivery through the scheduler.
func (c *RESTClient) SubscribeSceneStateChanges(ctx context.Context, handler StateChangeHandler) error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/api/websocket"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial hub websocket: %w", err)
	}

	var required wsAuthRequired
	if err := conn.ReadJSON(&required); err != nil {
		conn.Close()
		return fmt.Errorf("read auth_required: %w", err)
	}

	if err := conn.WriteJSON(wsAuthMessage{Type: "auth", AccessToken: c.token}); err != nil {
		conn.Close()
		return fmt.Errorf("send auth: %w", err)
	}

	var authResult struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&authResult); err != nil {
		conn.Close()
		return fmt.Errorf("read auth result: %w", err)
	}
	if authResult.Type != "auth_ok" {
		conn.Close()
		return fmt.Errorf("hub websocket authentication failed: %s", authResult.Type)
	}

	if err := conn.WriteJSON(wsSubscribeCommand{ID: 1, Type: "subscribe_events", EventType: "state_changed"}); err != nil {
		conn.Close()
		return fmt.Errorf("subscribe to state_changed: %w", err)
	}

	c.ws = &wsSubscriber{conn: conn, id: 1}

	go c.readLoop(ctx, handler)
	return nil
}

func (c *RESTClient) readLoop(ctx context.Context, handler StateChangeHandler) {
	defer c.ws.conn.Close()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var raw json.RawMessage
		if err := c.ws.conn.ReadJSON(&raw); err != nil {
			slog.Error("hub websocket read failed, subscription ended", "error", err)
			return
		}

		var envelope wsEventEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			slog.Warn("hub websocket: malformed event envelope, skipping", "error", err)
			continue
		}
		if envelope.Type != "event" || envelope.Event.EventType != "state_changed" {
			continue
		}
		if !strings.HasPrefix(envelope.Event.Data.EntityID, "scene.") {
			continue
		}

		handler(envelope.Event.Data.EntityID,
			envelope.Event.Data.OldState.State,
			envelope.Event.Data.NewState.State)
	}
}
