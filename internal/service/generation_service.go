package service

import (
	"context"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"math/rand"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// GenerationRequest 一次出题请求的全部参数
// swagger:model GenerationRequest
type GenerationRequest struct {
	University   string             `json:"university" binding:"required"`
	Course       string             `json:"course" binding:"required"`
	Subject      string             `json:"subject" binding:"required"`
	Difficulty   model.Difficulty   `json:"difficulty" binding:"required"`
	NumQuestions int                `json:"numQuestions"`
	Type         model.QuestionType `json:"type" binding:"required"`
}

// GenerationService 题目合成器：解析目录、生成题目草稿、校验结构不变量并逐题落库
type GenerationService struct {
	Catalog      *CatalogService
	QuestionRepo *repository.QuestionRepository
	AI           *AIService
	cfg          config.GenerationConfig
}

func NewGenerationService(catalog *CatalogService, questionRepo *repository.QuestionRepository, ai *AIService, cfg config.GenerationConfig) *GenerationService {
	return &GenerationService{
		Catalog:      catalog,
		QuestionRepo: questionRepo,
		AI:           ai,
		cfg:          cfg,
	}
}

// UpdateLimits 配置热更新时调整批次边界
func (s *GenerationService) UpdateLimits(cfg config.GenerationConfig) {
	cfg.ApplyDefaults()
	s.cfg = cfg
}

// ClampCount 把请求的题量收敛到配置边界内（越界取边界值，不报错）
func (s *GenerationService) ClampCount(n int) int {
	if n < s.cfg.MinQuestions {
		return s.cfg.MinQuestions
	}
	if n > s.cfg.MaxQuestions {
		return s.cfg.MaxQuestions
	}
	return n
}

// Generate 生成并落库一批题目。批次内任意一题结构不合法或落库失败时，
// 以 GenerationError 报告出错下标；已落库的前序题目保留（批次级部分失败可接受）
func (s *GenerationService) Generate(ctx context.Context, req GenerationRequest) ([]model.Question, *model.Subject, error) {
	if !req.Type.Valid() {
		return nil, nil, util.NewValidationError("unknown question type %q", req.Type)
	}
	if !req.Difficulty.Valid() {
		return nil, nil, util.NewValidationError("unknown difficulty %q", req.Difficulty)
	}

	count := s.ClampCount(req.NumQuestions)

	_, _, subject, err := s.Catalog.Resolve(ctx, req.University, req.Course, req.Subject)
	if err != nil {
		return nil, nil, err
	}

	drafts := s.draftQuestions(ctx, req, count)

	questions := make([]model.Question, 0, count)
	for i, draft := range drafts {
		difficulty := req.Difficulty
		if difficulty == model.Mixed {
			// mixed 仅在请求层面存在：逐题均匀抽取一个具体难度
			difficulty = pickDifficulty()
		}

		q := buildQuestion(subject.ID, req.Type, difficulty, draft)

		if err := q.Validate(); err != nil {
			return questions, subject, &util.GenerationError{Index: i, Err: err}
		}

		if err := s.QuestionRepo.CreateWithPayload(&q); err != nil {
			return questions, subject, &util.GenerationError{Index: i, Err: err}
		}

		monitoring.GeneratedQuestions.WithLabelValues(string(req.Type), string(difficulty)).Inc()
		questions = append(questions, q)
	}

	return questions, subject, nil
}

// draftQuestions 优先走 AI；未配置或调用失败时退回内置模板（结构不变量两条路径都要满足）
func (s *GenerationService) draftQuestions(ctx context.Context, req GenerationRequest, count int) []questionDraft {
	if s.AI != nil && s.AI.Enabled() {
		drafts, err := s.AI.GenerateQuestions(ctx, req.Subject, req.Course, req.University, req.Type, req.Difficulty, count)
		if err == nil && len(drafts) >= count {
			return drafts[:count]
		}
		logger.Log.Warn("AI question generation failed, falling back to templates",
			zap.Error(err), zap.Int("got", len(drafts)), zap.Int("want", count))
	}

	drafts := make([]questionDraft, count)
	for i := range drafts {
		drafts[i] = templateDraft(req.Subject, req.Type, i)
	}
	return drafts
}

func buildQuestion(subjectID uint, qType model.QuestionType, difficulty model.Difficulty, draft questionDraft) model.Question {
	q := model.Question{
		SubjectID:  subjectID,
		Type:       qType,
		Text:       draft.Text,
		Difficulty: difficulty,
		Topic:      draft.Topic,
		Tags:       datatypes.NewJSONSlice(draft.Tags),
	}

	switch qType {
	case model.MCQ:
		q.MCQData = &model.MCQData{
			Options:       datatypes.NewJSONSlice(draft.Options),
			CorrectAnswer: draft.CorrectAnswer,
			Explanation:   draft.Explanation,
		}
	case model.ShortAnswer:
		q.ShortAnswerData = &model.ShortAnswerData{
			SampleAnswer: draft.SampleAnswer,
			Keywords:     datatypes.NewJSONSlice(draft.Keywords),
			Explanation:  draft.Explanation,
		}
	case model.LongAnswer:
		q.LongAnswerData = &model.LongAnswerData{
			SampleAnswer: draft.SampleAnswer,
			KeyPoints:    datatypes.NewJSONSlice(draft.KeyPoints),
			Rubric:       datatypes.NewJSONType(draft.Rubric),
			Explanation:  draft.Explanation,
		}
	}

	return q
}

func pickDifficulty() model.Difficulty {
	switch rand.Intn(3) {
	case 0:
		return model.Easy
	case 1:
		return model.Medium
	default:
		return model.Hard
	}
}
