// Package alpha turns Alpha Progression CSV exports into workout plans.
// Each logged session becomes a workout, and each exercise becomes a
// sets x reps prescription built from its working sets and target reps.
package alpha

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	// sessionHeaderRe matches: "Session Name";"2026-02-19 4:54 h";"1:02 hr"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"\d{4}-\d{2}-\d{2}\s+\d+:\d+\s+h";"(.+)"$`)

	// exerciseHeaderRe matches: "1. Exercise Name · Equipment · 8 reps[· modifiers]"[;"warmup info"]
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)(?:\s+·\s+(\S.*?))?\s+·\s+(\d+)\s+reps(.*?)"(?:;"(.+)")?$`)

	// setDataRe matches: 1;115;8;1
	setDataRe = regexp.MustCompile(`^\d+;.+;\d+;.+$`)

	// columnHeaderRe matches: #;KG;REPS;RIR
	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS;RIR$`)
)

// Session is one logged Alpha Progression session.
type Session struct {
	Name      string
	Duration  string
	Exercises []Exercise
}

// Exercise is one exercise of a session, reduced to what a plan needs.
type Exercise struct {
	Number      int
	Name        string
	Equipment   string
	TargetReps  int
	WorkingSets int
	WarmupSets  int
}

// Parse reads an Alpha Progression CSV export and returns parsed sessions.
func Parse(r io.Reader) ([]Session, error) {
	scanner := bufio.NewScanner(r)
	var sessions []Session
	var current *Session
	var exercise *Exercise

	flushExercise := func() {
		if current != nil && exercise != nil {
			current.Exercises = append(current.Exercises, *exercise)
		}
		exercise = nil
	}
	flushSession := func() {
		flushExercise()
		if current != nil {
			sessions = append(sessions, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			// Blank line = session boundary
			flushSession()

		case columnHeaderRe.MatchString(line):

		case sessionHeaderRe.MatchString(line):
			flushSession()
			m := sessionHeaderRe.FindStringSubmatch(line)
			current = &Session{Name: m[1], Duration: m[2]}

		case exerciseHeaderRe.MatchString(line):
			if current == nil {
				return nil, fmt.Errorf("exercise without session: %q", line)
			}
			flushExercise()
			m := exerciseHeaderRe.FindStringSubmatch(line)
			num, _ := strconv.Atoi(m[1])
			targetReps, _ := strconv.Atoi(m[4])
			exercise = &Exercise{
				Number:     num,
				Name:       strings.TrimSpace(m[2]),
				Equipment:  strings.TrimSpace(m[3]),
				TargetReps: targetReps,
				WarmupSets: countWarmups(m[6]),
			}

		case setDataRe.MatchString(line):
			if exercise == nil {
				return nil, fmt.Errorf("set data without exercise: %q", line)
			}
			exercise.WorkingSets++
		}
		// Anything else is notes or metadata.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	flushSession()
	return sessions, nil
}

// countWarmups counts warmup entries in the exercise header's second field.
// Example: "WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
func countWarmups(s string) int {
	n := 0
	for _, part := range strings.Split(s, "<br>") {
		if strings.HasPrefix(strings.TrimSpace(part), "WU") {
			n++
		}
	}
	return n
}
