// Package report renders plan output: what a generation run produced, and
// which spreadsheet identifiers collide after URN sanitization.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/mkravets/dicthub/internal/mce"
)

// Collision is one URN that more than one distinct raw identifier maps to.
// Such records overwrite each other on ingestion, so the plan surfaces them.
type Collision struct {
	URN     string   `json:"urn"`
	Sources []string `json:"sources"`
}

// FindCollisions groups raw identifiers by the URN they sanitize to and
// returns every URN with more than one distinct source, in first-seen order.
func FindCollisions(raw []string, toURN func(string) string) []Collision {
	seen := make(map[string]map[string]struct{})
	var collisions []Collision
	var order []string

	for _, r := range raw {
		u := toURN(r)
		if _, ok := seen[u]; !ok {
			seen[u] = make(map[string]struct{})
			order = append(order, u)
		}
		seen[u][r] = struct{}{}
	}

	for _, u := range order {
		if len(seen[u]) < 2 {
			continue
		}
		sources := make([]string, 0, len(seen[u]))
		for _, r := range raw {
			if toURN(r) != u {
				continue
			}
			if !contains(sources, r) {
				sources = append(sources, r)
			}
		}
		collisions = append(collisions, Collision{URN: u, Sources: sources})
	}
	return collisions
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Renderer writes plan tables to one writer, colorized when the writer is a
// terminal.
type Renderer struct {
	out io.Writer
	tty bool
}

// NewRenderer creates a Renderer for the given writer.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, tty: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Records renders one row per generated record.
func (r *Renderer) Records(events []mce.Event) {
	tw := r.newTable()
	tw.AppendHeader(table.Row{"#", "Kind", "URN", "Aspects"})
	for i, e := range events {
		tw.AppendRow(table.Row{
			i + 1,
			recordKind(e.ProposedSnapshot.Class),
			e.ProposedSnapshot.Body.URN,
			len(e.ProposedSnapshot.Body.Aspects),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	fmt.Fprintln(r.out, tw.Render())
}

// Collisions renders the collision table, or a short all-clear line.
func (r *Renderer) Collisions(collisions []Collision) {
	if len(collisions) == 0 {
		fmt.Fprintln(r.out, "No sanitization collisions.")
		return
	}

	tw := r.newTable()
	tw.AppendHeader(table.Row{"URN", "Colliding identifiers"})
	for _, c := range collisions {
		tw.AppendRow(table.Row{c.URN, strings.Join(c.Sources, ", ")})
	}
	fmt.Fprintln(r.out, tw.Render())
	fmt.Fprintf(r.out, "Warning: %d URN(s) receive records from multiple identifiers; later records overwrite earlier ones on ingestion.\n", len(collisions))
}

// Summary is the tail line of a plan or generation run.
type Summary struct {
	Terms    int `json:"terms"`
	Nodes    int `json:"nodes"`
	Datasets int `json:"datasets"`
	Skipped  int `json:"skippedRows"`
}

// Summary renders the run totals.
func (r *Renderer) Summary(s Summary) {
	tw := r.newTable()
	tw.AppendHeader(table.Row{"Terms", "Nodes", "Datasets", "Skipped rows"})
	tw.AppendRow(table.Row{s.Terms, s.Nodes, s.Datasets, s.Skipped})
	fmt.Fprintln(r.out, tw.Render())
}

func (r *Renderer) newTable() table.Writer {
	tw := table.NewWriter()
	if r.tty {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	return tw
}

func recordKind(class string) string {
	switch class {
	case mce.ClassGlossaryTermSnapshot:
		return "glossaryTerm"
	case mce.ClassGlossaryNodeSnapshot:
		return "glossaryNode"
	case mce.ClassDatasetSnapshot:
		return "dataset"
	default:
		return class
	}
}
