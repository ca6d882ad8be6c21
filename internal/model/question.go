package model

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MCQ         QuestionType = "mcq"
	ShortAnswer QuestionType = "short_answer"
	LongAnswer  QuestionType = "long_answer"
)

func (t QuestionType) Valid() bool {
	switch t {
	case MCQ, ShortAnswer, LongAnswer:
		return true
	}
	return false
}

// EstimatedMinutes 每种题型的预估作答时长（分钟）
func (t QuestionType) EstimatedMinutes() int {
	switch t {
	case MCQ:
		return 2
	case ShortAnswer:
		return 5
	case LongAnswer:
		return 10
	}
	return 0
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Mixed  Difficulty = "mixed" // 仅用于生成请求，落库题目不允许为 mixed
)

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard, Mixed:
		return true
	}
	return false
}

// Score 难度分值，用于平均难度统计
func (d Difficulty) Score() int {
	switch d {
	case Easy:
		return 1
	case Medium:
		return 2
	case Hard:
		return 3
	}
	return 0
}

// Question 生成的练习题，payload 按 Type 三选一
// swagger:model Question
type Question struct {
	UUIDBase
	SubjectID  uint                        `gorm:"index;not null;type:bigint unsigned" json:"subjectId"`
	Type       QuestionType                `gorm:"size:20;not null" json:"type"`
	Text       string                      `gorm:"type:text;not null" json:"text"`
	Difficulty Difficulty                  `gorm:"size:10;not null" json:"difficulty"`
	Topic      string                      `gorm:"size:255" json:"topic,omitempty"`
	Tags       datatypes.JSONSlice[string] `gorm:"type:json" json:"tags"`

	MCQData         *MCQData         `gorm:"foreignKey:QuestionID" json:"mcqData,omitempty"`
	ShortAnswerData *ShortAnswerData `gorm:"foreignKey:QuestionID" json:"shortAnswerData,omitempty"`
	LongAnswerData  *LongAnswerData  `gorm:"foreignKey:QuestionID" json:"longAnswerData,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// MCQData 单选题答案数据
// swagger:model MCQData
type MCQData struct {
	BaseModel
	QuestionID         string                      `gorm:"uniqueIndex;type:varchar(36);not null" json:"-"`
	Options            datatypes.JSONSlice[string] `gorm:"type:json" json:"options"`
	CorrectAnswer      string                      `gorm:"type:text;not null" json:"correctAnswer"`
	Explanation        string                      `gorm:"type:text" json:"explanation"`
	DistractorAnalysis string                      `gorm:"type:text" json:"distractorAnalysis,omitempty"`
}

func (MCQData) TableName() string {
	return "mcq_data"
}

// ShortAnswerData 简答题答案数据
// swagger:model ShortAnswerData
type ShortAnswerData struct {
	BaseModel
	QuestionID   string                      `gorm:"uniqueIndex;type:varchar(36);not null" json:"-"`
	SampleAnswer string                      `gorm:"type:text;not null" json:"sampleAnswer"`
	Keywords     datatypes.JSONSlice[string] `gorm:"type:json" json:"keywords"`
	Explanation  string                      `gorm:"type:text" json:"explanation"`
}

func (ShortAnswerData) TableName() string {
	return "short_answer_data"
}

// LongAnswerData 论述题答案数据
// swagger:model LongAnswerData
type LongAnswerData struct {
	BaseModel
	QuestionID   string                                `gorm:"uniqueIndex;type:varchar(36);not null" json:"-"`
	SampleAnswer string                                `gorm:"type:text;not null" json:"sampleAnswer"`
	KeyPoints    datatypes.JSONSlice[string]           `gorm:"type:json" json:"keyPoints"`
	Rubric       datatypes.JSONType[map[string]string] `gorm:"type:json" json:"rubric"`
	Explanation  string                                `gorm:"type:text" json:"explanation"`
}

func (LongAnswerData) TableName() string {
	return "long_answer_data"
}

// Validate 校验题目结构不变量：payload 与 Type 一一对应，且各题型自身字段合法
func (q *Question) Validate() error {
	if !q.Type.Valid() {
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	if q.Difficulty == Mixed || !q.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q on persisted question", q.Difficulty)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is empty")
	}

	populated := 0
	if q.MCQData != nil {
		populated++
	}
	if q.ShortAnswerData != nil {
		populated++
	}
	if q.LongAnswerData != nil {
		populated++
	}
	if populated != 1 {
		return fmt.Errorf("question must carry exactly one payload, got %d", populated)
	}

	switch q.Type {
	case MCQ:
		if q.MCQData == nil {
			return fmt.Errorf("mcq question missing mcq payload")
		}
		return q.MCQData.validate()
	case ShortAnswer:
		if q.ShortAnswerData == nil {
			return fmt.Errorf("short_answer question missing short answer payload")
		}
		return q.ShortAnswerData.validate()
	case LongAnswer:
		if q.LongAnswerData == nil {
			return fmt.Errorf("long_answer question missing long answer payload")
		}
		return q.LongAnswerData.validate()
	}
	return nil
}

func (d *MCQData) validate() error {
	if len(d.Options) < 2 {
		return fmt.Errorf("mcq needs at least 2 options, got %d", len(d.Options))
	}
	found := false
	for _, opt := range d.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("mcq option is blank")
		}
		if opt == d.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("mcq correct answer %q not among options", d.CorrectAnswer)
	}
	return nil
}

func (d *ShortAnswerData) validate() error {
	if strings.TrimSpace(d.SampleAnswer) == "" {
		return fmt.Errorf("short answer sample is empty")
	}
	if len(d.Keywords) == 0 {
		return fmt.Errorf("short answer keywords are empty")
	}
	return nil
}

func (d *LongAnswerData) validate() error {
	if strings.TrimSpace(d.SampleAnswer) == "" {
		return fmt.Errorf("long answer sample is empty")
	}
	if len(d.KeyPoints) == 0 {
		return fmt.Errorf("long answer key points are empty")
	}
	if len(d.Rubric.Data()) == 0 {
		return fmt.Errorf("long answer rubric is empty")
	}
	return nil
}
