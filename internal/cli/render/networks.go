package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format config.OutputFormat) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

type networkDocument struct {
	Name     string `json:"name" yaml:"name"`
	ChainID  uint64 `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Accounts int    `json:"accounts" yaml:"accounts"`
	Current  bool   `json:"current" yaml:"current"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Render renders the list of networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.format != config.OutputText && r.format != "" {
		docs := make([]networkDocument, 0, len(result.Networks))
		for _, network := range result.Networks {
			doc := networkDocument{
				Name:     network.Name,
				ChainID:  network.ChainID,
				Accounts: network.Accounts,
				Current:  network.Name == result.Current,
			}
			if network.Error != nil {
				doc.Error = network.Error.Error()
			}
			docs = append(docs, doc)
		}
		return writeStructured(r.out, r.format, docs)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := "  "
		if network.Name == result.Current {
			marker = color.New(color.FgGreen, color.Bold).Sprint("* ")
		}
		if network.Error != nil {
			fmt.Fprintf(r.out, "%s❌ %s - Error: %v\n", marker, network.Name, network.Error)
		} else {
			fmt.Fprintf(r.out, "%s✅ %s - Chain ID: %d (%d %s)\n", marker, network.Name, network.ChainID,
				network.Accounts, plural(network.Accounts, "account"))
		}
	}

	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
