package websocket

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// authPrefix starts a text frame carrying a session token: "AUTH:<token>"
const authPrefix = "AUTH:"

// Authenticator resolves a session token to a recipient key
type Authenticator func(token string) (string, error)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and registers the client. A non-empty recipient
// authenticates the client immediately; otherwise it may send an AUTH frame later.
func HandleWebSocket(c echo.Context, hub *Hub, recipient string, authenticate Authenticator) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{Recipient: recipient, Conn: conn}
	if !hub.enqueueRegister(client) {
		conn.Close()
		return nil
	}

	if client.Authenticated() {
		client.WriteJSON(Notification{
			Type:      "connected",
			Message:   "WebSocket connection established",
			Recipient: recipient,
		})
	} else {
		client.WriteJSON(Notification{
			Type:         "connected",
			Message:      "WebSocket connection established. Please authenticate to receive notifications.",
			RequiresAuth: true,
		})
	}

	go readLoop(hub, client, authenticate)
	return nil
}

func readLoop(hub *Hub, client *Client, authenticate Authenticator) {
	defer hub.enqueueUnregister(client)

	for {
		messageType, message, err := client.Conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		text := string(message)
		if !strings.HasPrefix(text, authPrefix) || authenticate == nil {
			continue
		}

		recipient, err := authenticate(strings.TrimPrefix(text, authPrefix))
		if err != nil {
			log.Debug().Err(err).Msg("websocket authentication rejected")
			client.WriteJSON(Notification{
				Type:         "auth_response",
				Message:      "Invalid session",
				RequiresAuth: true,
			})
			continue
		}

		hub.AuthenticateClient(client, recipient)
		client.WriteJSON(Notification{
			Type:      "auth_response",
			Message:   "Authenticated",
			Recipient: recipient,
		})
	}
}
