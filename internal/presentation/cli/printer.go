package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"circles-core/internal/application/dto"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// HealthResult is printed by the health command
type HealthResult struct {
	Status  string `json:"status" yaml:"status"`
	Storage string `json:"storage" yaml:"storage"`
}

// MigrateResult is printed by the migrate command
type MigrateResult struct {
	Storage string   `json:"storage" yaml:"storage"`
	Applied []string `json:"applied" yaml:"applied"`
}

// DeletedResult is printed after a delete
type DeletedResult struct {
	ID      string `json:"id" yaml:"id"`
	Deleted bool   `json:"deleted" yaml:"deleted"`
}

type printer struct {
	out    io.Writer
	format string
}

func newPrinter(out io.Writer, format string) (*printer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return &printer{out: out, format: format}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func (p *printer) Print(v any) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return p.text(v)
	}
}

func (p *printer) text(v any) error {
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)

	switch d := v.(type) {
	case *dto.UserData:
		fmt.Fprintf(w, "ID:\t%s\n", d.ID)
		fmt.Fprintf(w, "Name:\t%s\n", d.Name)
		fmt.Fprintf(w, "Mail:\t%s\n", d.MailAddress)
		fmt.Fprintf(w, "Premium:\t%t\n", d.Premium)
		fmt.Fprintf(w, "Updated:\t%s\n", d.UpdatedAt.Format(time.RFC3339))
	case *dto.CircleData:
		fmt.Fprintf(w, "ID:\t%s\n", d.ID)
		fmt.Fprintf(w, "Name:\t%s\n", d.Name)
		fmt.Fprintf(w, "Owner:\t%s\n", d.OwnerID)
		fmt.Fprintf(w, "Members:\t%d/%d\n", d.MemberCount, d.Capacity)
		if len(d.Members) > 0 {
			fmt.Fprintf(w, "Roster:\t%s\n", strings.Join(d.Members, ", "))
		}
	case *HealthResult:
		fmt.Fprintf(w, "%s (%s)\n", d.Status, d.Storage)
	case *MigrateResult:
		if len(d.Applied) == 0 {
			fmt.Fprintf(w, "%s: schema up to date\n", d.Storage)
		} else {
			fmt.Fprintf(w, "%s: applied %s\n", d.Storage, strings.Join(d.Applied, ", "))
		}
	case *DeletedResult:
		fmt.Fprintf(w, "deleted %s\n", d.ID)
	default:
		fmt.Fprintf(w, "%v\n", v)
	}

	return w.Flush()
}
