package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) ListByUser(userID uint, limit int) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&assessments).Error
	return assessments, err
}

// AverageScore 用户历次成绩均分，无记录时返回 0
func (r *AssessmentRepository) AverageScore(userID uint) (float64, error) {
	var avg float64
	err := r.DB.Model(&model.Assessment{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(quiz_score), 0)").
		Scan(&avg).Error
	return avg, err
}
