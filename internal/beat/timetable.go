package beat

// Timetable builds the per-beat time table for a song of beatCount beats.
// t[0] is 0; every step advances by 60/current-BPM seconds; the tempo
// switches to a change's target the beat immediately after its index.
func Timetable(initialBPM float64, beatCount int, changes Changes) []float64 {
	if beatCount <= 0 {
		return nil
	}
	times := make([]float64, beatCount)
	bpm := initialBPM
	ci := 0
	for k := 1; k < beatCount; k++ {
		for ci < len(changes) && changes[ci].Index <= k-1 {
			bpm = changes[ci].BPM
			ci++
		}
		times[k] = times[k-1] + 60/bpm
	}
	return times
}

// Duration is the elapsed time through the last beat of the table.
func Duration(initialBPM float64, beatCount int, changes Changes) float64 {
	times := Timetable(initialBPM, beatCount, changes)
	if len(times) == 0 {
		return 0
	}
	return times[len(times)-1]
}

// EffectiveBPM is the single constant tempo reproducing the song's duration
// over its beat count. Without tempo changes it is the stored tempo itself.
func EffectiveBPM(initialBPM float64, beatCount int, changes Changes) float64 {
	if len(changes) == 0 {
		return initialBPM
	}
	d := Duration(initialBPM, beatCount, changes)
	if d <= 0 {
		return initialBPM
	}
	return float64(beatCount) / d * 60
}
