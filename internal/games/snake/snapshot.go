package snake

import "github.com/vovakirdan/warpsnake/internal/games/snake/sim"

// Snapshot is a read-only view of a game for remote renderers.
type Snapshot struct {
	Variant        string        `json:"variant"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	Snake          []sim.Cell    `json:"snake"`
	Food           *sim.Cell     `json:"food,omitempty"`
	Exit           *sim.Cell     `json:"exit,omitempty"`
	Dir            sim.Direction `json:"dir"`
	Gravity        sim.Direction `json:"gravity"`
	Score          int           `json:"score"`
	Best           int           `json:"best"`
	Phase          sim.Phase     `json:"phase"`
	Rewinding      bool          `json:"rewinding"`
	Paused         bool          `json:"paused"`
	CanRewind      bool          `json:"can_rewind"`
	RewindMode     string        `json:"rewind_mode"`
	History        int           `json:"history"`
	HistoryCap     int           `json:"history_cap"`
	TicksPerSecond int           `json:"tps"`
	Tick           uint64        `json:"tick"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.engine.State()
	cfg := g.engine.Config()

	snap := Snapshot{
		Variant:        g.variant.ID,
		Width:          cfg.Grid.Width,
		Height:         cfg.Grid.Height,
		Snake:          st.Snake,
		Dir:            st.Dir,
		Gravity:        st.Gravity,
		Score:          st.Score,
		Best:           g.best,
		Phase:          g.engine.Phase(),
		Rewinding:      g.Rewinding(),
		Paused:         g.paused,
		CanRewind:      g.variant.Rewind,
		RewindMode:     string(g.rewind.Mode()),
		History:        g.engine.HistoryLen(),
		HistoryCap:     g.engine.HistoryCap(),
		TicksPerSecond: cfg.TicksPerSecond,
		Tick:           g.engine.Ticks(),
	}
	if st.Food != nil {
		food := st.Food.Cell
		snap.Food = &food
		if st.Food.HasExit {
			exit := st.Food.Exit
			snap.Exit = &exit
		}
	}
	return snap
}
