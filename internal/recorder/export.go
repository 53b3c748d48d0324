package recorder

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tessro/pausemark/internal/core"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects how Export renders a snapshot.
type ExportFormat string

const (
	FormatTable ExportFormat = "table"
	FormatJSON  ExportFormat = "json"
	FormatYAML  ExportFormat = "yaml"
)

// ParseExportFormat validates a user-supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return ExportFormat(s), nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format %q (must be table, json, or yaml)", s)
	}
}

// exportDoc is the serialized form of a snapshot. Positions are written both
// as seconds and as HH:MM:SS.
type exportDoc struct {
	Count     int           `json:"count" yaml:"count"`
	LastPause string        `json:"last_pause" yaml:"last_pause"`
	Events    []exportEvent `json:"events" yaml:"events"`
}

type exportEvent struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     string    `json:"kind" yaml:"kind"`
	Seconds  int       `json:"seconds" yaml:"seconds"`
	Timecode string    `json:"timecode" yaml:"timecode"`
	At       time.Time `json:"at" yaml:"at"`
}

func newExportDoc(snap *core.Snapshot) exportDoc {
	doc := exportDoc{
		Count:     snap.Count,
		LastPause: snap.Last.String(),
		Events:    make([]exportEvent, 0, len(snap.Events)),
	}
	for _, e := range snap.Events {
		doc.Events = append(doc.Events, exportEvent{
			ID:       e.ID.String(),
			Kind:     string(e.Kind),
			Seconds:  int(e.Position),
			Timecode: e.Position.String(),
			At:       e.At,
		})
	}
	return doc
}

// Export writes snap to w in the given format.
func Export(w io.Writer, snap *core.Snapshot, format ExportFormat) error {
	if snap == nil {
		snap = &core.Snapshot{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newExportDoc(snap))

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newExportDoc(snap)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()

	case FormatTable, "":
		return exportTable(w, snap)

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func exportTable(w io.Writer, snap *core.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tPOSITION\tSECONDS\tWHEN")
	for i, e := range snap.Events {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i+1,
			e.Position.String(),
			strconv.Itoa(int(e.Position)),
			humanize.Time(e.At))
	}
	return tw.Flush()
}
