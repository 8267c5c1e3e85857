package extmap

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tetofu/beatpatch/internal/beat"
	"github.com/tetofu/beatpatch/internal/score"
)

// osu! hit-object type and hitsound flags, per the .osu file format.
const (
	osuTypeCircle   = 1
	osuSoundFinish  = 4
	msPerMinute     = 60000.0
	trailingBeatCap = 100.0 // ms; grace beat appended after the last timing point
)

type bpmEntry struct {
	time float64 // ms, with offset
	bpm  float64
}

type osuHit struct {
	time   float64 // ms
	finish bool
}

// ParseOsu extracts the beat-aligned model from an .osu beatmap. Only hit
// circles contribute notes; a finish hitsound marks the note heavy. The
// first uninherited timing point supplies the initial tempo and offset.
func ParseOsu(r io.Reader) (Extract, error) {
	entries, hits, preview, err := scanOsu(r)
	if err != nil {
		return Extract{}, err
	}
	if len(entries) == 0 {
		return Extract{}, fmt.Errorf("osu map has no uninherited timing points")
	}
	if len(hits) == 0 {
		return Extract{}, fmt.Errorf("osu map has no hit circles")
	}

	timecodes := genTimecodes(entries)

	var notes []Note
	maxIdx := 0
	for _, hit := range hits {
		idx := timeToIndex(timecodes, entries, hit.time)
		entry := score.Normal
		if hit.finish {
			entry = score.Heavy
		}
		notes = append(notes, Note{Index: idx, Entry: entry})
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	var changes beat.Changes
	if len(entries) > 1 {
		for _, e := range entries[1:] {
			changes = append(changes, beat.Change{
				Index: timeToIndex(timecodes, entries, e.time),
				BPM:   e.bpm,
			})
		}
	}

	return Extract{
		BPM:     entries[0].bpm,
		Offset:  entries[0].time / 1000,
		Length:  maxIdx + 1,
		Preview: preview,
		Notes:   notes,
		Changes: changes,
	}, nil
}

// scanOsu walks the sections of an .osu file, keeping only what the
// extraction needs.
func scanOsu(r io.Reader) ([]bpmEntry, []osuHit, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var entries []bpmEntry
	var hits []osuHit
	preview := 0
	section := ""

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(line)
			continue
		}

		switch section {
		case "[general]":
			key, val, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(key), "PreviewTime") {
				if t, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && t > 0 {
					preview = t
				}
			}

		case "[timingpoints]":
			parts := strings.Split(line, ",")
			if len(parts) < 2 {
				continue
			}
			t, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			beatLen, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err1 != nil || err2 != nil {
				return nil, nil, 0, fmt.Errorf("invalid timing point %q", line)
			}
			// Inherited points have a negative beat length; they carry slider
			// velocity, not tempo.
			if beatLen <= 0 {
				continue
			}
			entries = append(entries, bpmEntry{time: t, bpm: msPerMinute / beatLen})

		case "[hitobjects]":
			parts := strings.Split(line, ",")
			if len(parts) < 5 {
				continue
			}
			t, err1 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			flags, err2 := strconv.Atoi(strings.TrimSpace(parts[3]))
			sound, err3 := strconv.Atoi(strings.TrimSpace(parts[4]))
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, nil, 0, fmt.Errorf("invalid hit object %q", line)
			}
			if flags&osuTypeCircle == 0 {
				continue
			}
			hits = append(hits, osuHit{time: t, finish: sound&osuSoundFinish != 0})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, 0, err
	}
	return entries, hits, preview, nil
}

// genTimecodes lays real-time stamps over the beat grid: one per beat,
// switching step size as timing points pass.
func genTimecodes(entries []bpmEntry) []float64 {
	next := 0
	nextDuration := msPerMinute / entries[next].bpm
	currDuration := nextDuration
	currEntryTime := entries[next].time
	currTime := entries[next].time
	next++

	timecodes := []float64{currTime}
	for {
		currTime += currDuration
		if currTime > currEntryTime {
			if next >= len(entries) {
				break
			}
			currDuration = nextDuration
			nextDuration = msPerMinute / entries[next].bpm
			currEntryTime = entries[next].time
			next++
		}
		timecodes = append(timecodes, currTime)
	}
	if currTime-currEntryTime < trailingBeatCap {
		timecodes = append(timecodes, currTime)
	}
	return timecodes
}

// timeToIndex finds the beat slot of a timestamp, extrapolating with the
// last tempo past the end of the timecode table.
func timeToIndex(timecodes []float64, entries []bpmEntry, t float64) int {
	last := timecodes[len(timecodes)-1]
	if t > last {
		lastEntry := entries[len(entries)-1]
		beatDuration := msPerMinute / lastEntry.bpm
		extra := int(math.Trunc((t - lastEntry.time) / beatDuration))
		return len(timecodes) - 1 + extra
	}
	for i, tc := range timecodes {
		if t <= tc {
			return i
		}
	}
	return len(timecodes) - 1
}
