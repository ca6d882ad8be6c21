package service

import (
	"context"
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService 负责大学→课程→科目层级的幂等解析：
// 每一级先读后建，撞唯一索引时回读已有行，同名并发调用最终只会留下一行
type CatalogService struct {
	Repo *repository.CatalogRepository
	DB   *gorm.DB
}

func NewCatalogService(repo *repository.CatalogRepository, db *gorm.DB) *CatalogService {
	return &CatalogService{Repo: repo, DB: db}
}

// Resolve 按依赖顺序（大学→课程→科目）解析或创建三级目录，整体在一个事务内，
// 任何一级失败则全部回滚
func (s *CatalogService) Resolve(ctx context.Context, universityName, courseName, subjectName string) (*model.University, *model.Course, *model.Subject, error) {
	universityName = strings.TrimSpace(universityName)
	courseName = strings.TrimSpace(courseName)
	subjectName = strings.TrimSpace(subjectName)

	if universityName == "" {
		return nil, nil, nil, util.NewValidationError("university name is required")
	}
	if courseName == "" {
		return nil, nil, nil, util.NewValidationError("course name is required")
	}
	if subjectName == "" {
		return nil, nil, nil, util.NewValidationError("subject name is required")
	}

	var (
		university model.University
		course     model.Course
		subject    model.Subject
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := getOrCreateUniversity(tx, universityName, &university); err != nil {
			return err
		}
		if err := getOrCreateCourse(tx, courseName, university.ID, &course); err != nil {
			return err
		}
		return getOrCreateSubject(tx, subjectName, course.ID, &subject)
	})

	if err != nil {
		return nil, nil, nil, &util.PersistenceError{Op: "catalog resolve", Err: err}
	}

	return &university, &course, &subject, nil
}

// getOrCreateUniversity 乐观插入：先读，不存在则建；并发创建者撞唯一约束时回读已有行。
// 约束冲突是正常的幂等路径，不向上冒错。
// 回读必须是锁定读：REPEATABLE READ 下普通读仍停留在首次未命中的旧快照，
// 看不到并发事务刚提交的行（sqlite 不支持行锁，其驱动会忽略该子句）
func getOrCreateUniversity(tx *gorm.DB, name string, dest *model.University) error {
	err := tx.Where("name = ?", name).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	*dest = model.University{Name: name, ShortName: shortNameOf(name)}
	if err := tx.Create(dest).Error; err != nil {
		if !isDuplicateKey(err) {
			return err
		}
		return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(dest).Error
	}
	return nil
}

func getOrCreateCourse(tx *gorm.DB, name string, universityID uint, dest *model.Course) error {
	err := tx.Where("name = ? AND university_id = ?", name, universityID).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	*dest = model.Course{Name: name, UniversityID: universityID}
	if err := tx.Create(dest).Error; err != nil {
		if !isDuplicateKey(err) {
			return err
		}
		return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ? AND university_id = ?", name, universityID).First(dest).Error
	}
	return nil
}

func getOrCreateSubject(tx *gorm.DB, name string, courseID uint, dest *model.Subject) error {
	err := tx.Where("name = ? AND course_id = ?", name, courseID).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	*dest = model.Subject{Name: name, CourseID: courseID}
	if err := tx.Create(dest).Error; err != nil {
		if !isDuplicateKey(err) {
			return err
		}
		return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ? AND course_id = ?", name, courseID).First(dest).Error
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL 1062 / sqlite 的错误文案兜底
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// shortNameOf 取大学名称各单词首字母作为缩写，如 "Tribhuvan University" → "TU"
func shortNameOf(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		if len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return strings.ToUpper(b.String())
}
