package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/warpsnake/internal/config"
	"github.com/vovakirdan/warpsnake/internal/core"
	"github.com/vovakirdan/warpsnake/internal/games/snake"
	"github.com/vovakirdan/warpsnake/internal/games/snake/sim"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1024
	eventBuffer    = 64
)

// clientEvent is a message sent by the browser.
type clientEvent struct {
	Type   string `json:"type"`
	Dir    string `json:"dir,omitempty"`
	Active bool   `json:"active,omitempty"`
	Source string `json:"source,omitempty"`
}

// sessionConfig derives a per-connection config from query parameters.
// Invalid values fall back to the server's configuration.
func sessionConfig(base config.SnakeConfig, q url.Values) config.SnakeConfig {
	cfg := base
	if v := q.Get("tps"); v != "" {
		n, _ := strconv.Atoi(v)
		cfg.Gameplay.TicksPerSecond = config.ChooseInt(n, config.TickRateChoices, base.Gameplay.TicksPerSecond)
	}
	if v := q.Get("history"); v != "" {
		n, _ := strconv.Atoi(v)
		cfg.Gameplay.HistorySeconds = config.ChooseInt(n, config.HistoryChoices, base.Gameplay.HistorySeconds)
	}
	if v := q.Get("rewind"); v != "" {
		cfg.Rewind.Mode = config.ChooseString(v, config.RewindModeChoices, base.Rewind.Mode)
	}
	return cfg
}

// handleWS upgrades the connection and runs a game session on it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	variantID := q.Get("variant")
	if variantID == "" {
		variantID = snake.Variants[0].ID
	}
	v, ok := snake.LookupVariant(variantID)
	if !ok {
		sendText(w, http.StatusNotFound, "Unknown variant")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	game := snake.New(v, sessionConfig(s.config.Snake, q))
	game.SetLogger(s.logger)
	if s.store != nil {
		game.AttachScores(s.store)
	}
	game.Reset(core.RuntimeConfig{Seed: time.Now().UnixNano()})

	s.logger.Info("session started", "variant", v.ID, "remote", r.RemoteAddr)
	s.runSession(conn, game)
	s.logger.Info("session ended", "variant", v.ID, "remote", r.RemoteAddr)
}

// runSession owns the game: events from the reader goroutine are applied
// between frames, so every input lands on a tick boundary.
func (s *Server) runSession(conn *websocket.Conn, game *snake.Game) {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	events := make(chan clientEvent, eventBuffer)
	go s.readEvents(ctx, cancel, conn, events)

	ticker := time.NewTicker(time.Second / time.Duration(s.config.FrameRate))
	defer ticker.Stop()

	if err := writeSnapshot(conn, game.Snapshot()); err != nil {
		return
	}

	last := time.Now()
	dirty := false
	for {
		select {
		case <-ctx.Done():
			//nolint:errcheck // Best-effort close frame
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			return

		case ev := <-events:
			applyEvent(game, ev)
			dirty = true

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			res := game.Step(core.NewInputFrame(), dt)
			if res.Ended && res.State.Score > 0 && s.store != nil {
				if _, err := s.store.SaveScore(game.ID(), res.State.Score); err != nil {
					s.logger.Debug("score save failed", "game", game.ID(), "error", err)
				}
			}

			if !dirty && res.Ticks == 0 {
				continue
			}
			dirty = false
			if err := writeSnapshot(conn, game.Snapshot()); err != nil {
				s.logger.Debug("snapshot write failed", "error", err)
				return
			}
		}
	}
}

// readEvents decodes client messages until the connection fails or the
// session ends. Malformed messages are skipped.
func (s *Server) readEvents(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, events chan<- clientEvent) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var ev clientEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Debug("bad client message", "error", err)
			continue
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// applyEvent routes one client event to the game.
func applyEvent(game *snake.Game, ev clientEvent) {
	switch ev.Type {
	case "dir":
		if d, ok := sim.ParseDirection(ev.Dir); ok {
			game.Turn(d)
		}
	case "rewind":
		source := ev.Source
		if source == "" {
			source = snake.KeyboardSource
		}
		game.SetRewindHeld(source, ev.Active)
	case "toggle":
		game.ToggleRewind()
	case "reset":
		game.Restart()
	case "pause":
		game.TogglePause()
	}
}

func writeSnapshot(conn *websocket.Conn, snap snake.Snapshot) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(snap)
}
