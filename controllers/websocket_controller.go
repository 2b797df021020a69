package controllers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/websocket"
)

type WebSocketController struct {
	hub      *websocket.Hub
	sessions middleware.SessionValidator
}

func NewWebSocketController(hub *websocket.Hub, sessions middleware.SessionValidator) *WebSocketController {
	return &WebSocketController{hub: hub, sessions: sessions}
}

// Connect upgrades to a websocket. A session cookie binds the connection right away;
// otherwise the client can send an AUTH frame with its token.
func (wc *WebSocketController) Connect(c echo.Context) error {
	recipient := ""
	if user := middleware.CurrentUser(c); user != nil {
		recipient = user.Key()
	}
	return websocket.HandleWebSocket(c, wc.hub, recipient, wc.authenticate)
}

func (wc *WebSocketController) authenticate(token string) (string, error) {
	user, err := wc.sessions.Validate(context.Background(), token)
	if err != nil {
		return "", err
	}
	return user.Key(), nil
}
