package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type InsightRepository struct {
	DB *gorm.DB
}

func NewInsightRepository(db *gorm.DB) *InsightRepository {
	return &InsightRepository{DB: db}
}

func (r *InsightRepository) FindByIndustry(industry string) (*model.IndustryInsight, error) {
	var insight model.IndustryInsight
	err := r.DB.Where("industry = ?", industry).First(&insight).Error
	return &insight, err
}

func (r *InsightRepository) CountByIndustry(industry string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.IndustryInsight{}).Where("industry = ?", industry).Count(&count).Error
	return count, err
}
