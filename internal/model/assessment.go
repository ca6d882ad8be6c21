package model

import "gorm.io/datatypes"

// Assessment 一次练习会话结束后的成绩记录，用于仪表盘趋势图
// swagger:model Assessment
type Assessment struct {
	BaseModel
	UserID         uint           `gorm:"index;not null;type:bigint unsigned" json:"userId"`
	SubjectID      uint           `gorm:"index;type:bigint unsigned" json:"subjectId"`
	Category       string         `gorm:"size:50" json:"category"` // 题型：mcq / short_answer / long_answer / mixed
	QuizScore      float64        `gorm:"not null" json:"quizScore"`
	Total          int            `gorm:"not null" json:"total"`
	Answers        datatypes.JSON `gorm:"type:json" json:"answers"`
	ImprovementTip string         `gorm:"type:text" json:"improvementTip"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentAnswer Answers 字段里的单条作答明细
type AssessmentAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"isCorrect"`
}
