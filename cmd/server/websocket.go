package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nvoicu/chessroom-server/pkg/server"
)

// handleWebSocket upgrades the request and hands the socket to the hub.
func (app *application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := app.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.Logger.Error("Failed to upgrade to WebSocket", zap.Error(err))
		return
	}

	conn := server.NewConnection(ws, app.Hub, app.Publisher, app.Logger)
	app.Hub.Register(conn)

	app.Logger.Info("WebSocket connection established",
		zap.String("remote_addr", r.RemoteAddr))

	go conn.WritePump()
	go conn.ReadPump()
}
