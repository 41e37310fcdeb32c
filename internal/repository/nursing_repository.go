package repository

import (
	"context"

	"github.com/rrrodriguezc83/caa/internal/models"
)

// NursingRepository reads the student's nursing visit log.
type NursingRepository struct {
	api        poster
	nursingURL string
}

func NewNursingRepository(api poster, nursingURL string) *NursingRepository {
	return &NursingRepository{api: api, nursingURL: nursingURL}
}

func (r *NursingRepository) GetReports(ctx context.Context) ([]models.NursingReport, error) {
	env, err := r.api.Post(ctx, r.nursingURL, map[string]string{
		"base":  baseCAA,
		"param": "getReportAtt",
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getReportAtt"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return []models.NursingReport{}, nil
	}
	var reports []models.NursingReport
	if err := decodeInto(env, "getReportAtt", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
