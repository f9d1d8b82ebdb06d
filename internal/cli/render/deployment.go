package render

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

var (
	successStyle = color.New(color.FgGreen)
	valueStyle   = color.New(color.FgCyan)
)

// DeploymentRenderer prints the outcome of a deployment
type DeploymentRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format config.OutputFormat) *DeploymentRenderer {
	return &DeploymentRenderer{out: out, format: format}
}

// Render prints the result in the configured format
func (r *DeploymentRenderer) Render(result *domain.DeploymentResult) error {
	if r.format != config.OutputText && r.format != "" {
		return writeStructured(r.out, r.format, result)
	}

	fmt.Fprintln(r.out, successStyle.Sprint("Contract deployed successfully."))
	fmt.Fprintf(r.out, "Deployer: %s\n", valueStyle.Sprint(result.Deployer))
	fmt.Fprintf(r.out, "Deployed to: %s\n", valueStyle.Sprint(result.Address))
	fmt.Fprintf(r.out, "Transaction hash: %s\n", valueStyle.Sprint(result.TxHash))
	return nil
}

// AccountAnnouncer prints the deploying account as soon as the transaction
// is about to be submitted, then forwards every event to next
type AccountAnnouncer struct {
	out  io.Writer
	next usecase.ProgressSink
}

// NewAccountAnnouncer creates a progress sink announcing the deployer on out
func NewAccountAnnouncer(out io.Writer, next usecase.ProgressSink) *AccountAnnouncer {
	if next == nil {
		next = usecase.NopProgress{}
	}
	return &AccountAnnouncer{out: out, next: next}
}

func (a *AccountAnnouncer) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage == usecase.StageSubmitting {
		if deployer, ok := event.Metadata.(common.Address); ok {
			fmt.Fprintf(a.out, "Deploying contracts with the account: %s\n", deployer.Hex())
		}
	}
	a.next.OnProgress(ctx, event)
}

func (a *AccountAnnouncer) Info(message string)  { a.next.Info(message) }
func (a *AccountAnnouncer) Error(message string) { a.next.Error(message) }

var _ Renderer[*domain.DeploymentResult] = (*DeploymentRenderer)(nil)
var _ usecase.ProgressSink = (*AccountAnnouncer)(nil)
