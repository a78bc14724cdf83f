package sim

import (
	"io"
	"text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/loop"
)

// Report summarizes Results for humans.
type Report struct {
	// Configuration
	Games     int
	Seed      uint64
	MaxPieces int
	Workers   int

	// Results
	Elapsed      time.Duration
	TotalPieces  int
	TotalLines   int
	GamesOver    int
	Score        Stats
	Kinds        []HistogramRow
	LinesPerLock []HistogramRow
	Systems      []loop.SystemStats
}

// Stats holds the distribution of one per-game measurement.
type Stats struct {
	Min     int
	Max     int
	Avg     float64
	Samples []int
}

// Finalize computes Min, Max and Avg from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	total := 0
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = float64(total) / float64(len(s.Samples))
}

// HistogramRow is one bucket of a histogram.
type HistogramRow struct {
	Label string
	Count int
	Share float64
}

// NewReport builds a report for results produced with cfg.
func NewReport(cfg Config, results *Results) *Report {
	r := &Report{
		Games:     cfg.Games,
		Seed:      cfg.Seed,
		MaxPieces: cfg.MaxPieces,
		Workers:   max(cfg.Workers, 1),
		Elapsed:   results.Elapsed,
		Systems:   results.Systems,
	}

	for _, g := range results.Games {
		r.TotalPieces += g.Pieces
		r.TotalLines += g.Lines
		r.Score.Samples = append(r.Score.Samples, g.Score)
		if g.GameOver {
			r.GamesOver++
		}
	}
	r.Score.Finalize()

	kinds := make([]HistogramRow, 0, engine.NumKinds)
	for _, k := range engine.Kinds() {
		n, _ := results.Kinds.Get(k)
		kinds = append(kinds, HistogramRow{Label: k.String(), Count: n})
	}
	r.Kinds = withShares(kinds)

	lines := make([]HistogramRow, 0, MaxLinesPerLock+1)
	for l := 0; l <= MaxLinesPerLock; l++ {
		n, _ := results.LinesPerLock.Get(l)
		lines = append(lines, HistogramRow{Label: lineLabels[l], Count: n})
	}
	r.LinesPerLock = withShares(lines)

	return r
}

var lineLabels = [MaxLinesPerLock + 1]string{"none", "single", "double", "triple", "tetris"}

func withShares(rows []HistogramRow) []HistogramRow {
	total := 0
	for _, row := range rows {
		total += row.Count
	}
	if total == 0 {
		return rows
	}
	for i := range rows {
		rows[i].Share = 100 * float64(rows[i].Count) / float64(total)
	}
	return rows
}

// PiecesPerSecond is the simulation throughput.
func (r *Report) PiecesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.TotalPieces) / r.Elapsed.Seconds()
}

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Simulation Report

## Configuration
- **Games:** {{num .Games}}
- **First Seed:** {{.Seed}}
- **Piece Limit:** {{num .MaxPieces}}
- **Workers:** {{.Workers}}

## Results
- **Elapsed:** {{.Elapsed}}
- **Pieces:** {{num .TotalPieces}} ({{printf "%.0f" .PiecesPerSecond}}/s)
- **Lines:** {{num .TotalLines}}
- **Games Lost:** {{.GamesOver}} of {{.Games}}
- **Score:**
  - **Avg:** {{num .Score.Avg}}
  - **Min:** {{num .Score.Min}}
  - **Max:** {{num .Score.Max}}

## Pieces by Kind
{{range .Kinds}}- {{.Label}}: {{num .Count}} ({{printf "%.1f" .Share}}%)
{{end}}
## Locks by Lines Cleared
{{range .LinesPerLock}}- {{.Label}}: {{num .Count}} ({{printf "%.1f" .Share}}%)
{{end}}
## System Timings
| System | Executions | Avg | Min | Max |
|---|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{num .ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{end}}`

	printer := message.NewPrinter(language.English)
	fm := template.FuncMap{
		"num": func(v any) string {
			switch val := v.(type) {
			case float64:
				return printer.Sprintf("%.1f", val)
			default:
				return printer.Sprintf("%d", val)
			}
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
