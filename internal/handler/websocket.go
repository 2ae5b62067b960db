package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"roadmap/internal/domain"
	"roadmap/internal/hub"
	"roadmap/internal/middleware"
	"roadmap/internal/ui"
)

const sendBufferSize = 64

// WSHandler runs one page session per websocket connection.
type WSHandler struct {
	hub           *hub.Hub
	backend       ui.Backend
	opts          ui.Options
	defaultLocale string
	events        *middleware.RateLimiter
	logger        *slog.Logger
}

// NewWSHandler builds the session endpoint. events may be nil to leave page
// events unlimited.
func NewWSHandler(h *hub.Hub, backend ui.Backend, opts ui.Options, defaultLocale string, events *middleware.RateLimiter, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		hub:           h,
		backend:       backend,
		opts:          opts,
		defaultLocale: defaultLocale,
		events:        events,
		logger:        logger.With("component", "ws"),
	}
}

type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SearchPayload struct {
	Field string `json:"field"`
	Term  string `json:"term"`
}

type SelectPayload struct {
	Field string `json:"field"`
	ID    string `json:"id"`
}

type ClearPayload struct {
	Field string `json:"field"`
}

type VehicleSpecsPayload struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  string `json:"year"`
}

type CalculateRoutePayload struct {
	RouteType string `json:"route_type"`
}

type session struct {
	client   *hub.Client
	page     *ui.Page
	messages *ui.Messages
	logger   *slog.Logger
	flows    sync.WaitGroup
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := hub.NewClient(clientID, sendBufferSize)
	logger := h.logger.With("client_id", clientID)

	messages := ui.MatchLocale(r.Header.Get("Accept-Language"), h.defaultLocale)
	opts := h.opts
	opts.Messages = messages

	s := &session{
		client:   client,
		messages: messages,
		logger:   logger,
		page: ui.NewPage(h.backend, ui.Elements{
			VehicleSpecs: hub.NewRegion(client, hub.RegionVehicleSpecs, logger),
			Results:      hub.NewRegion(client, hub.RegionResults, logger),
			Map:          hub.NewRegion(client, hub.RegionMap, logger),
			Alerts:       hub.NewAlerter(client, logger),
		}, opts, logger),
	}

	h.hub.Register(client)
	logger.Info("session opened", "locale", messages.Lang, "ip", middleware.ClientIP(r))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go h.writeLoop(ctx, conn, client)

	h.readLoop(ctx, conn, s)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, s *session) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		s.flows.Wait()
		h.hub.Unregister(s.client)
		if h.events != nil {
			h.events.Forget(s.client.ID)
		}
		conn.Close(websocket.StatusNormalClosure, "")
		s.logger.Info("session closed")
	}()

	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				s.logger.Debug("websocket read error", "error", err)
			}
			return
		}

		if msgType != websocket.MessageText {
			continue
		}

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Debug("invalid message format", "error", err)
			continue
		}

		if err := h.dispatch(ctx, s, msg); err != nil {
			s.logger.Debug("message ignored", "type", msg.Type, "error", err)
		}
	}
}

func (h *WSHandler) dispatch(ctx context.Context, s *session, msg WSMessage) error {
	switch msg.Type {
	case "ping":
		return s.client.SendMessage(hub.TypePong, nil)

	case "search":
		var p SearchPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		w, ok := s.page.Field(p.Field)
		if !ok {
			return fmt.Errorf("unknown field %q", p.Field)
		}
		if !h.allow(s) {
			return errRateLimited
		}
		h.spawn(s, func() { h.search(ctx, s, w, p.Term) })

	case "select":
		var p SelectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		w, ok := s.page.Field(p.Field)
		if !ok {
			return fmt.Errorf("unknown field %q", p.Field)
		}
		if _, err := w.Select(p.ID); err != nil {
			return err
		}
		return sendValue(s, w)

	case "clear":
		var p ClearPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		w, ok := s.page.Field(p.Field)
		if !ok {
			return fmt.Errorf("unknown field %q", p.Field)
		}
		w.Clear()
		return sendValue(s, w)

	case "vehicle_specs":
		var p VehicleSpecsPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		if !h.allow(s) {
			return errRateLimited
		}
		q := domain.VehicleQuery{Brand: p.Brand, Model: p.Model, Year: p.Year}
		h.spawn(s, func() { s.page.Vehicle.Fetch(ctx, q) })

	case "calculate_route":
		var p CalculateRoutePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				return err
			}
		}
		if !h.allow(s) {
			return errRateLimited
		}
		h.spawn(s, func() { s.page.Route.Calculate(ctx, p.RouteType) })

	default:
		return errUnknownMessage
	}
	return nil
}

var (
	errRateLimited    = errors.New("event rate limit exceeded")
	errUnknownMessage = errors.New("unknown message type")
)

func (h *WSHandler) allow(s *session) bool {
	if h.events == nil || h.events.Allow(s.client.ID) {
		return true
	}
	s.logger.Warn("event rate limit exceeded")
	return false
}

func (h *WSHandler) spawn(s *session, fn func()) {
	s.flows.Add(1)
	go func() {
		defer s.flows.Done()
		fn()
	}()
}

func (h *WSHandler) search(ctx context.Context, s *session, w *ui.Autocomplete, term string) {
	payload := hub.SuggestionsPayload{
		Field:   w.Name(),
		Term:    term,
		Results: []hub.Suggestion{},
	}

	results, err := w.Query(ctx, term)
	switch {
	case errors.Is(err, ui.ErrInputTooShort):
		payload.Hint = fmt.Sprintf(s.messages.MinimumInputHint, w.MinimumInputLength())
	case errors.Is(err, ui.ErrSuperseded), errors.Is(err, context.Canceled):
		return
	case err != nil:
		s.logger.Error("city search failed", "field", w.Name(), "error", err)
		payload.Hint = s.messages.SearchFailed
	default:
		for _, c := range results {
			payload.Results = append(payload.Results, hub.Suggestion{ID: c.Key(), Label: c.Label})
		}
		if len(payload.Results) == 0 {
			payload.Hint = s.messages.NoResults
		}
	}

	if err := s.client.SendMessage(hub.TypeSuggestions, payload); err != nil {
		s.logger.Warn("suggestions dropped", "error", err)
	}
}

func sendValue(s *session, w *ui.Autocomplete) error {
	return s.client.SendMessage(hub.TypeValue, hub.ValuePayload{
		Field: w.Name(),
		Value: w.Value(),
		Label: w.Label(),
	})
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *hub.Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-client.Send:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "session closed")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
