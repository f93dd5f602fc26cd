package contract

import "github.com/alexanderramin/studyplan/internal/app"

type SubjectInput = app.SubjectInput

type GenerateRequest = app.GenerateRequest

func NewGenerateRequest(names []string, budget float64) GenerateRequest {
	return app.NewGenerateRequest(names, budget)
}

type SubjectView = app.SubjectView

type WarningView = app.WarningView

type PlanResponse = app.PlanResponse

type FormatInfo = app.FormatInfo
