package song

import (
	"math"
	"sort"
	"strings"

	"github.com/tetofu/beatpatch/internal/beat"
)

// windowLines is the sliding-window size of the density rating.
const windowLines = 8

// Level rates a difficulty on the game's displayed scale. When script is
// empty the chart is rendered first; passing a pre-rendered script avoids
// re-rendering in batch listings.
//
// The density-percentile formula is matched against the game's displayed
// numbers; keep it bit-for-bit even where a different smoothing would look
// nicer.
func (m *Map) Level(d Difficulty, script string) int {
	if script == "" {
		script = m.Script(d)
	}
	if script == "" {
		return 0
	}
	return levelFromScript(script, m.Timetable(), m.SongInfo.BpmChanges.Layout())
}

// Levels rates all three difficulties; absent charts rate 0.
func (m *Map) Levels() (easy, normal, hard int) {
	times := m.Timetable()
	layout := m.SongInfo.BpmChanges.Layout()
	rate := func(d Difficulty) int {
		if _, ok := m.Scores[d]; !ok {
			return 0
		}
		return levelFromScript(m.Script(d), times, layout)
	}
	return rate(Easy), rate(Normal), rate(Hard)
}

func levelFromScript(script string, times []float64, layout beat.Layout) int {
	lines := strings.Split(strings.TrimRight(script, " \n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return 0
	}

	beats := make([]int, len(lines))
	durations := make([]float64, len(lines))
	start := 0
	lineLen := beat.DefaultLineLen
	for c, line := range lines {
		// Mirrors the renderer's chunking: the first line is never overridden.
		if c > 0 {
			if l, ok := layout[c+1]; ok {
				lineLen = l
			}
		}
		count := 0
		for _, token := range strings.Split(line, ",") {
			switch strings.TrimSpace(token) {
			case "O", "S":
				count++
			}
		}
		beats[c] = count
		durations[c] = timeAt(times, start+lineLen) - timeAt(times, start)
		start += lineLen
	}

	if len(lines) < windowLines {
		return 0
	}
	densities := make([]float64, 0, len(lines)-windowLines+1)
	for w := 0; w+windowLines <= len(lines); w++ {
		noteSum := 0
		durSum := 0.0
		for i := w; i < w+windowLines; i++ {
			noteSum += beats[i]
			durSum += durations[i]
		}
		density := 0.0
		if durSum > 0 {
			density = float64(noteSum) / durSum
		}
		densities = append(densities, density)
	}
	sort.Float64s(densities)

	top := (len(densities) + 3) / 5 // ceil((count-1)/5)
	if top == 0 {
		return 0
	}
	sum := 0.0
	for _, density := range densities[len(densities)-top:] {
		sum += density
	}
	avg := sum / float64(top)

	level := int(math.Ceil((avg - 1.0) * 4.2))
	if level < 0 {
		return 0
	}
	return level
}

func timeAt(times []float64, idx int) float64 {
	if len(times) == 0 {
		return 0
	}
	if idx >= len(times) {
		return times[len(times)-1]
	}
	return times[idx]
}
