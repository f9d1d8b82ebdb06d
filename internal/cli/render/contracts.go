package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// ContractsRenderer renders the indexed artifacts as a table
type ContractsRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewContractsRenderer creates a new contracts renderer
func NewContractsRenderer(out io.Writer, format config.OutputFormat) *ContractsRenderer {
	return &ContractsRenderer{out: out, format: format}
}

type contractDocument struct {
	Name        string `json:"name" yaml:"name"`
	Path        string `json:"path" yaml:"path"`
	Artifact    string `json:"artifact" yaml:"artifact"`
	Constructor string `json:"constructor" yaml:"constructor"`
	Deployable  bool   `json:"deployable" yaml:"deployable"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Render renders the contract list
func (r *ContractsRenderer) Render(result *usecase.ListContractsResult) error {
	if r.format != config.OutputText && r.format != "" {
		docs := make([]contractDocument, 0, len(result.Contracts))
		for _, c := range result.Contracts {
			doc := contractDocument{
				Name:        c.Name,
				Path:        c.Path,
				Artifact:    c.ArtifactPath,
				Constructor: c.Constructor,
				Deployable:  c.Deployable,
			}
			if c.Error != nil {
				doc.Error = c.Error.Error()
			}
			docs = append(docs, doc)
		}
		return writeStructured(r.out, r.format, docs)
	}

	if len(result.Contracts) == 0 {
		fmt.Fprintln(r.out, "No contracts found")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignCenter},
	})
	t.AppendHeader(table.Row{"Contract", "Source", "Constructor", "Deployable"})

	for _, c := range result.Contracts {
		deployable := color.New(color.FgGreen).Sprint("yes")
		switch {
		case c.Error != nil:
			deployable = color.New(color.FgRed).Sprint("invalid abi")
		case !c.Deployable:
			deployable = color.New(color.FgYellow).Sprint("no")
		}
		t.AppendRow(table.Row{
			color.New(color.Bold).Sprint(c.Name),
			color.New(color.FgBlue).Sprint(c.Path),
			c.Constructor,
			deployable,
		})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

var _ Renderer[*usecase.ListContractsResult] = (*ContractsRenderer)(nil)
