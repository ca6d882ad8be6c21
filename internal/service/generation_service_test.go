package service

import (
	"context"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGenerationService(t *testing.T) (*GenerationService, *gorm.DB) {
	db := newTestDB(t)
	catalog := NewCatalogService(repository.NewCatalogRepository(db), db)

	cfg := config.GenerationConfig{}
	cfg.ApplyDefaults()

	// AI 未配置，走模板路径
	svc := NewGenerationService(catalog, repository.NewQuestionRepository(db), NewAIService(config.AIConfig{}), cfg)
	return svc, db
}

func generationRequest(qType model.QuestionType, difficulty model.Difficulty, n int) GenerationRequest {
	return GenerationRequest{
		University:   "Tribhuvan University",
		Course:       "BSc CSIT",
		Subject:      "Data Structures",
		Difficulty:   difficulty,
		NumQuestions: n,
		Type:         qType,
	}
}

func TestGenerateMCQBatch(t *testing.T) {
	svc, db := newGenerationService(t)

	questions, subject, err := svc.Generate(context.Background(), generationRequest(model.MCQ, model.Hard, 6))
	require.NoError(t, err)
	require.NotNil(t, subject)
	require.Len(t, questions, 6)

	for _, q := range questions {
		assert.Equal(t, model.MCQ, q.Type)
		assert.Equal(t, model.Hard, q.Difficulty)
		assert.Equal(t, subject.ID, q.SubjectID)
		assert.NotEmpty(t, q.ID)
		assert.Nil(t, q.ShortAnswerData)
		assert.Nil(t, q.LongAnswerData)

		require.NotNil(t, q.MCQData)
		require.GreaterOrEqual(t, len(q.MCQData.Options), 2)
		assert.Contains(t, []string(q.MCQData.Options), q.MCQData.CorrectAnswer)
		for _, opt := range q.MCQData.Options {
			assert.NotEmpty(t, opt)
		}
	}

	var persisted int64
	require.NoError(t, db.Model(&model.Question{}).Count(&persisted).Error)
	assert.EqualValues(t, 6, persisted)
}

func TestGenerateClampsBatchSize(t *testing.T) {
	svc, _ := newGenerationService(t)
	ctx := context.Background()

	questions, _, err := svc.Generate(ctx, generationRequest(model.MCQ, model.Easy, 1))
	require.NoError(t, err)
	assert.Len(t, questions, 5)

	questions, _, err = svc.Generate(ctx, generationRequest(model.MCQ, model.Easy, 100))
	require.NoError(t, err)
	assert.Len(t, questions, 50)

	questions, _, err = svc.Generate(ctx, generationRequest(model.MCQ, model.Easy, 7))
	require.NoError(t, err)
	assert.Len(t, questions, 7)
}

func TestGenerateMixedDifficulty(t *testing.T) {
	svc, _ := newGenerationService(t)

	questions, _, err := svc.Generate(context.Background(), generationRequest(model.MCQ, model.Mixed, 30))
	require.NoError(t, err)
	require.Len(t, questions, 30)

	seen := map[model.Difficulty]int{}
	for _, q := range questions {
		assert.NotEqual(t, model.Mixed, q.Difficulty)
		assert.Contains(t, []model.Difficulty{model.Easy, model.Medium, model.Hard}, q.Difficulty)
		seen[q.Difficulty]++
	}
	// 30 次均匀抽取全部落在同一档的概率可以忽略
	assert.GreaterOrEqual(t, len(seen), 2)
}

func TestGenerateShortAndLongAnswerBatches(t *testing.T) {
	svc, _ := newGenerationService(t)
	ctx := context.Background()

	questions, _, err := svc.Generate(ctx, generationRequest(model.ShortAnswer, model.Medium, 5))
	require.NoError(t, err)
	for _, q := range questions {
		require.NotNil(t, q.ShortAnswerData)
		assert.Nil(t, q.MCQData)
		assert.NotEmpty(t, q.ShortAnswerData.SampleAnswer)
		assert.NotEmpty(t, q.ShortAnswerData.Keywords)
	}

	questions, _, err = svc.Generate(ctx, generationRequest(model.LongAnswer, model.Medium, 5))
	require.NoError(t, err)
	for _, q := range questions {
		require.NotNil(t, q.LongAnswerData)
		assert.Nil(t, q.MCQData)
		assert.NotEmpty(t, q.LongAnswerData.SampleAnswer)
		assert.NotEmpty(t, q.LongAnswerData.KeyPoints)
		assert.NotEmpty(t, q.LongAnswerData.Rubric.Data())
	}
}

func TestGenerateRejectsUnknownTypeOrDifficulty(t *testing.T) {
	svc, _ := newGenerationService(t)
	ctx := context.Background()

	_, _, err := svc.Generate(ctx, generationRequest("essay", model.Easy, 5))
	var validationErr *util.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, _, err = svc.Generate(ctx, generationRequest(model.MCQ, "brutal", 5))
	require.ErrorAs(t, err, &validationErr)
}

func TestGenerateReusesExistingCatalogRows(t *testing.T) {
	svc, db := newGenerationService(t)
	ctx := context.Background()

	_, first, err := svc.Generate(ctx, generationRequest(model.MCQ, model.Easy, 5))
	require.NoError(t, err)

	_, second, err := svc.Generate(ctx, generationRequest(model.ShortAnswer, model.Hard, 5))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var subjects int64
	require.NoError(t, db.Model(&model.Subject{}).Count(&subjects).Error)
	assert.EqualValues(t, 1, subjects)
}
