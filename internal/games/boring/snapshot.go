package boring

import "github.com/vovakirdan/tui-drill/internal/drill"

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	drill.Snapshot
	Seed     int64
	Scene    string
	Score    int
	Finished bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	var sn drill.Snapshot
	if g.session != nil {
		sn = g.session.Snapshot()
	}
	return Snapshot{
		Snapshot: sn,
		Seed:     g.level.Seed,
		Scene:    g.level.Scene,
		Score:    g.score,
		Finished: g.finished,
	}
}
