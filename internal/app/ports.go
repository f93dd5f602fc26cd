package app

import (
	"context"
	"io"
)

type GeneratePlanUseCase interface {
	Generate(ctx context.Context, req GenerateRequest) (*PlanResponse, error)
}

type OverridePlanUseCase interface {
	Override(ctx context.Context, plan *PlanResponse, daily map[string]float64) (*PlanResponse, error)
}

type ExportPlanUseCase interface {
	Export(ctx context.Context, w io.Writer, plan *PlanResponse, format string) error
	Formats() []string
	Describe(format string) (FormatInfo, error)
}
