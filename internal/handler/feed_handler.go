package handler

import (
	"net/http"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/feed"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type FeedHandler struct {
	hub *feed.Hub
}

func NewFeedHandler(hub *feed.Hub) *FeedHandler { return &FeedHandler{hub: hub} }

// @Summary Feed de reseñas en vivo (WebSocket)
// @Tags shows
// @Param id path int true "showId (TMDB)"
// @Success 101
// @Router /ws/shows/{id}/reviews [get]
func (h *FeedHandler) ShowReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió el error
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe(id)
	defer cancel()

	// Mensaje inicial
	_ = conn.WriteJSON(map[string]any{
		"type":   "subscribed",
		"showId": id,
	})

	// Descartar lo que mande el cliente y detectar el cierre.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Debug().Err(err).Int("showId", id).Msg("ws: suscriptor desconectado")
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
