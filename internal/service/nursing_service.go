package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
	"github.com/rrrodriguezc83/caa/pkg/export"
	"github.com/rrrodriguezc83/caa/pkg/textutil"
)

type nursingRepository interface {
	GetReports(ctx context.Context) ([]models.NursingReport, error)
}

// NursingService lists the student's nursing visits and renders downloadable
// exports of the log.
type NursingService struct {
	repo   nursingRepository
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

func NewNursingService(repo nursingRepository, logger *zap.Logger) *NursingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NursingService{
		repo:   repo,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ListVisits returns the visit log, most recent first when dates parse,
// backend order otherwise.
func (s *NursingService) ListVisits(ctx context.Context) ([]models.NursingReport, error) {
	return s.repo.GetReports(ctx)
}

var nursingHeaders = []string{"Fecha", "Motivo", "Hora de entrada", "Hora de salida", "Procedimiento", "Observación", "Enfermera"}

// ExportVisits renders the visit log as csv or pdf and returns the bytes
// with a timestamped filename.
func (s *NursingService) ExportVisits(ctx context.Context, format string) ([]byte, string, error) {
	reports, err := s.repo.GetReports(ctx)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{Headers: nursingHeaders}
	for _, r := range reports {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Fecha":           textutil.FormatDate(r.Date),
			"Motivo":          r.Reason,
			"Hora de entrada": r.HourEntry,
			"Hora de salida":  r.HourOut,
			"Procedimiento":   r.Procedure,
			"Observación":     r.Observation,
			"Enfermera":       r.Nurse,
		})
	}

	stamp := time.Now().Format("20060102_150405")
	switch strings.ToLower(format) {
	case "csv":
		blob, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", err
		}
		return blob, fmt.Sprintf("enfermeria_%s.csv", stamp), nil
	case "pdf":
		blob, err := s.pdf.Render(dataset, "Registro de Enfermería")
		if err != nil {
			return nil, "", err
		}
		return blob, fmt.Sprintf("enfermeria_%s.pdf", stamp), nil
	default:
		return nil, "", apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
