package openings

import (
	"sort"

	"github.com/vytor/chessprofile/internal/models"
)

// UnknownOpening is the label used for games whose record carries no opening
// information.
const UnknownOpening = "Unknown Opening"

// minSampleSize is the smallest number of games an opening needs before it is
// worth ranking.
const minSampleSize = 3

// Rollup tallies win/loss/draw counts per opening across a batch of games,
// drops openings below the minimum sample size, and sorts by games played
// (descending, stable).
func Rollup(games []models.GameRecord) []models.OpeningStat {
	type tally struct {
		total, wins, losses, draws int
	}
	counts := map[string]*tally{}
	order := []string{} // first-seen order, keeps the sort stable

	for _, g := range games {
		name := g.Opening
		if name == "" {
			name = UnknownOpening
		}
		t, ok := counts[name]
		if !ok {
			t = &tally{}
			counts[name] = t
			order = append(order, name)
		}

		t.total++
		switch g.Outcome {
		case "win":
			t.wins++
		case "loss":
			t.losses++
		default:
			t.draws++
		}
	}

	out := make([]models.OpeningStat, 0, len(order))
	for _, name := range order {
		t := counts[name]
		if t.total < minSampleSize {
			continue
		}
		out = append(out, models.OpeningStat{
			Opening: name,
			Total:   t.total,
			Wins:    t.wins,
			Losses:  t.losses,
			Draws:   t.draws,
			WinRate: float64(t.wins) / float64(t.total) * 100,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}
