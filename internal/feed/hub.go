package feed

import (
	"sync"

	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"github.com/google/uuid"
)

// Event es el frame que reciben los suscriptores del feed.
type Event struct {
	Type   string           `json:"type"`
	ShowID int              `json:"showId"`
	Review models.ReviewDoc `json:"review"`
}

// Hub reparte reseñas recién publicadas a los suscriptores de cada show.
// Es estado en memoria del proceso, scoped al hub: si el buffer de un
// suscriptor se llena, el evento se descarta para ese suscriptor (el feed es
// best-effort, la verdad vive en el store).
type Hub struct {
	mu   sync.RWMutex
	subs map[int]map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: map[int]map[string]chan Event{}}
}

// Subscribe registra un suscriptor para un show y devuelve su canal más la
// función para darse de baja.
func (h *Hub) Subscribe(showID int) (<-chan Event, func()) {
	id := uuid.NewString()
	ch := make(chan Event, 16)

	h.mu.Lock()
	if h.subs[showID] == nil {
		h.subs[showID] = map[string]chan Event{}
	}
	h.subs[showID][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if m := h.subs[showID]; m != nil {
			if c, ok := m[id]; ok {
				delete(m, id)
				close(c)
			}
			if len(m) == 0 {
				delete(h.subs, showID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// PublishReview implementa service.ReviewPublisher.
func (h *Hub) PublishReview(rev models.ReviewDoc) {
	ev := Event{Type: "review", ShowID: rev.ShowID, Review: rev}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[rev.ShowID] {
		select {
		case ch <- ev:
		default:
			// suscriptor lento: se pierde este evento
		}
	}
}
