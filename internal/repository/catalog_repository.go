package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository 目录层级（大学→课程→科目）的读侧查询；
// 写侧的 get-or-create 在 CatalogService 的事务里完成
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListUniversities() ([]model.University, error) {
	var universities []model.University
	err := r.DB.Order("name ASC").Find(&universities).Error
	return universities, err
}

func (r *CatalogRepository) ListCourses(universityID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("university_id = ?", universityID).Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) ListSubjects(courseID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("course_id = ?", courseID).Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *CatalogRepository) FindSubjectByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	return &subject, err
}
