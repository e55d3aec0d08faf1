package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/nvoicu/chessroom-server/pkg/chess"
)

// The match endpoints pre-allocate and inspect rooms over plain HTTP.
// Seats are still claimed over the websocket, so create leaves both
// slots open and records the preferred color as a reservation.

type matchCreateRequest struct {
	PreferredColor *chess.Color `json:"preferredColor,omitempty"`
}

type matchCreateResponse struct {
	GameID string       `json:"gameId"`
	Code   string       `json:"code"`
	Color  *chess.Color `json:"color"`
}

type matchJoinRequest struct {
	Code string `json:"code"`
}

type matchJoinResponse struct {
	GameID string `json:"gameId"`
	Code   string `json:"code"`
	Slots  struct {
		White bool `json:"white"`
		Black bool `json:"black"`
	} `json:"slots"`
}

type matchError struct {
	Error string `json:"error"`
}

// handleMatchCreate handles POST /match/create.
func (app *application) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	var req matchCreateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			app.writeJSON(w, http.StatusBadRequest, matchError{Error: "invalid_body"})
			return
		}
	}
	if req.PreferredColor != nil && !req.PreferredColor.Valid() {
		app.writeJSON(w, http.StatusBadRequest, matchError{Error: "invalid_color"})
		return
	}

	room := app.Rooms.CreateRoom(req.PreferredColor)
	app.Logger.Info("room pre-allocated over http", zap.String("code", room.Code))

	app.writeJSON(w, http.StatusCreated, matchCreateResponse{
		GameID: room.Code,
		Code:   room.Code,
		Color:  req.PreferredColor,
	})
}

// handleMatchJoin handles POST /match/join.
func (app *application) handleMatchJoin(w http.ResponseWriter, r *http.Request) {
	var req matchJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		app.writeJSON(w, http.StatusBadRequest, matchError{Error: "missing_code"})
		return
	}

	room, ok := app.Rooms.Resolve(req.Code)
	if !ok {
		app.writeJSON(w, http.StatusNotFound, matchError{Error: "room_not_found"})
		return
	}

	whiteOpen, blackOpen := room.Slots()
	if !whiteOpen && !blackOpen {
		app.writeJSON(w, http.StatusConflict, matchError{Error: "room_full"})
		return
	}

	resp := matchJoinResponse{GameID: room.Code, Code: room.Code}
	resp.Slots.White = whiteOpen
	resp.Slots.Black = blackOpen
	app.writeJSON(w, http.StatusOK, resp)
}

func (app *application) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("writing response", zap.Error(err))
	}
}
