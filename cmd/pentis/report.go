package main

import (
	"io"
	"text/template"
	"time"

	"github.com/plus3/pentis/ecs"
)

type Report struct {
	// Configuration
	RunID     string
	Mode      string
	Seed      uint64
	Grid      string
	PieceSize int
	Shapes    int
	Selector  string
	DeltaTime float64

	// Results
	Frames         int64
	Pieces         int
	FramesPerPiece float64
	Lines          int
	StackHeight    int
	Over           bool
	Reason         string
	TotalTime      time.Duration
	UpdateTime     Stats
	Systems        []ecs.SystemStats
}

// finishGame fills the results that depend on both the frame count and the
// final game state.
func (r *Report) finishGame(frames int64, pieces, lines, stackHeight int, over bool, reason string) {
	r.Frames = frames
	r.Pieces = pieces
	r.Lines = lines
	r.StackHeight = stackHeight
	r.Over = over
	r.Reason = reason
	if pieces > 0 {
		r.FramesPerPiece = float64(frames) / float64(pieces)
	}
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Pentis Simulation Report

## Run
- **Run ID:** {{.RunID}}
- **Mode:** {{.Mode}}{{if eq .Mode "stepped"}} (dt {{printf "%.4f" .DeltaTime}}s){{end}}
- **Seed:** {{.Seed}}
- **Grid:** {{.Grid}}
- **Library:** {{.Shapes}} shapes of {{.PieceSize}} squares ({{.Selector}})

## Game
- **Frames:** {{.Frames}}
- **Pieces:** {{.Pieces}}{{if .Pieces}} ({{printf "%.1f" .FramesPerPiece}} frames each){{end}}
- **Lines Cleared:** {{.Lines}}
- **Stack Height:** {{.StackHeight}}
- **Result:** {{if .Over}}game over ({{.Reason}}){{else}}still playing{{end}}
- **Total Time:** {{.TotalTime}}
{{- if .UpdateTime.Samples}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{- end}}

## Systems
{{range .Systems}}- {{printf "%-16s" .Name}} runs {{.ExecutionCount}}, avg {{.AvgDuration}}, max {{.MaxDuration}}, total {{.TotalDuration}}
{{end}}`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
