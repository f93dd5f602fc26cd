package service

import (
	"context"
	"io"

	"github.com/alexanderramin/studyplan/internal/contract"
)

type PlanService interface {
	Generate(ctx context.Context, req contract.GenerateRequest) (*contract.PlanResponse, error)
	Override(ctx context.Context, plan *contract.PlanResponse, daily map[string]float64) (*contract.PlanResponse, error)
}

type ExportService interface {
	Export(ctx context.Context, w io.Writer, plan *contract.PlanResponse, format string) error
	Formats() []string
	Describe(format string) (contract.FormatInfo, error)
}
