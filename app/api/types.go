package api

import (
	"context"

	"github.com/okozhin/notion-ics/app/calendar"
)

type AssemblerInterface interface {
	Run(ctx context.Context, cfg *calendar.Config) (*calendar.Result, error)
}

var _ AssemblerInterface = (*calendar.Assembler)(nil)

type GeneratorInterface interface {
	Run(cfg *calendar.Config, events []calendar.Event) (string, error)
}

var _ GeneratorInterface = (*calendar.Generator)(nil)

type Handler struct {
	configCache *calendar.ConfigCache
	assembler   AssemblerInterface
	generator   GeneratorInterface
}
