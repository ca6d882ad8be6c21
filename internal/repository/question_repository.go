package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// CreateWithPayload 单题落库：题目行与其 payload 行同一事务写入，
// payload 写失败时题目行一并回滚
func (r *QuestionRepository) CreateWithPayload(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.
		Preload("MCQData").
		Preload("ShortAnswerData").
		Preload("LongAnswerData").
		First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuestionRepository) ListBySubject(subjectID uint, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.
		Preload("MCQData").
		Preload("ShortAnswerData").
		Preload("LongAnswerData").
		Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountBySubject(subjectID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("subject_id = ?", subjectID).Count(&count).Error
	return count, err
}
