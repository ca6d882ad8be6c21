package service

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
)

// ScorePoint 仪表盘成绩趋势图的单个数据点
type ScorePoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// AssessmentStats 用户练习成绩概览
// swagger:model AssessmentStats
type AssessmentStats struct {
	Count        int          `json:"count"`
	AverageScore float64      `json:"averageScore"`
	LatestScore  float64      `json:"latestScore"`
	Trend        []ScorePoint `json:"trend"`
}

// DashboardService 仪表盘数据：历史成绩及趋势
type DashboardService struct {
	AssessmentRepo *repository.AssessmentRepository
}

func NewDashboardService(assessmentRepo *repository.AssessmentRepository) *DashboardService {
	return &DashboardService{AssessmentRepo: assessmentRepo}
}

func (s *DashboardService) ListAssessments(userID uint, limit int) ([]model.Assessment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.AssessmentRepo.ListByUser(userID, limit)
}

// Stats 汇总用户的成绩概览；趋势按时间正序给出，方便前端直接画折线
func (s *DashboardService) Stats(userID uint) (*AssessmentStats, error) {
	assessments, err := s.AssessmentRepo.ListByUser(userID, 30)
	if err != nil {
		return nil, err
	}

	stats := &AssessmentStats{
		Count: len(assessments),
		Trend: make([]ScorePoint, 0, len(assessments)),
	}
	if len(assessments) == 0 {
		return stats, nil
	}

	stats.LatestScore = assessments[0].QuizScore

	avg, err := s.AssessmentRepo.AverageScore(userID)
	if err != nil {
		return nil, err
	}
	stats.AverageScore = avg

	// ListByUser 返回按创建时间倒序，这里反转为正序
	for i := len(assessments) - 1; i >= 0; i-- {
		a := assessments[i]
		stats.Trend = append(stats.Trend, ScorePoint{
			Date:  a.CreatedAt.Format("2006-01-02"),
			Score: a.QuizScore,
		})
	}

	return stats, nil
}
