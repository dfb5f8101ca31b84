// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/tago/internal/core/domain"
)

// Executor defines the interface for running external commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and blocks until it exits, capturing its
	// complete stdout and stderr.
	//
	// A non-zero exit status is reported through the result, not as an
	// error; the error return covers spawn and I/O failures only. Callers
	// decide what an exit status means for them.
	Run(ctx context.Context, cmd *domain.Command) (*domain.CommandResult, error)
}
