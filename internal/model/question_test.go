package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func validMCQ() Question {
	return Question{
		SubjectID:  1,
		Type:       MCQ,
		Text:       "下列哪一项正确？",
		Difficulty: Easy,
		MCQData: &MCQData{
			Options:       datatypes.NewJSONSlice([]string{"对", "错"}),
			CorrectAnswer: "对",
		},
	}
}

func TestValidateAcceptsWellFormedQuestions(t *testing.T) {
	q := validMCQ()
	require.NoError(t, q.Validate())

	short := Question{
		SubjectID:  1,
		Type:       ShortAnswer,
		Text:       "简述。",
		Difficulty: Medium,
		ShortAnswerData: &ShortAnswerData{
			SampleAnswer: "示例",
			Keywords:     datatypes.NewJSONSlice([]string{"定义"}),
		},
	}
	require.NoError(t, short.Validate())

	long := Question{
		SubjectID:  1,
		Type:       LongAnswer,
		Text:       "论述。",
		Difficulty: Hard,
		LongAnswerData: &LongAnswerData{
			SampleAnswer: "论述答案",
			KeyPoints:    datatypes.NewJSONSlice([]string{"要点"}),
			Rubric:       datatypes.NewJSONType(map[string]string{"深度": "完整"}),
		},
	}
	require.NoError(t, long.Validate())
}

func TestValidateRequiresMatchingPayload(t *testing.T) {
	q := validMCQ()
	q.MCQData = nil
	assert.Error(t, q.Validate())

	q = validMCQ()
	q.ShortAnswerData = &ShortAnswerData{SampleAnswer: "x", Keywords: datatypes.NewJSONSlice([]string{"k"})}
	assert.Error(t, q.Validate())

	q = validMCQ()
	q.Type = ShortAnswer
	assert.Error(t, q.Validate())
}

func TestValidateRejectsMixedDifficultyOnPersistedQuestion(t *testing.T) {
	q := validMCQ()
	q.Difficulty = Mixed
	assert.Error(t, q.Validate())
}

func TestValidateMCQOptions(t *testing.T) {
	q := validMCQ()
	q.MCQData.Options = datatypes.NewJSONSlice([]string{"对"})
	assert.Error(t, q.Validate())

	q = validMCQ()
	q.MCQData.CorrectAnswer = "不存在的选项"
	assert.Error(t, q.Validate())

	q = validMCQ()
	q.MCQData.Options = datatypes.NewJSONSlice([]string{"对", "   "})
	assert.Error(t, q.Validate())
}

func TestEstimatedMinutesAndDifficultyScore(t *testing.T) {
	assert.Equal(t, 2, MCQ.EstimatedMinutes())
	assert.Equal(t, 5, ShortAnswer.EstimatedMinutes())
	assert.Equal(t, 10, LongAnswer.EstimatedMinutes())

	assert.Equal(t, 1, Easy.Score())
	assert.Equal(t, 2, Medium.Score())
	assert.Equal(t, 3, Hard.Score())
}
