package service

import (
	"encoding/json"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/monitoring"
	"fmt"
	"sync"
	"time"
)

// Session 单个学习者的练习会话，仅存在于内存，不落库；
// 重新生成题目时整体替换，绝不保留旧的作答状态
type Session struct {
	UserID       uint              `json:"userId"`
	SubjectID    uint              `json:"subjectId"`
	Category     string            `json:"category"` // 请求的题型
	Questions    []model.Question  `json:"questions"`
	CurrentIndex int               `json:"currentIndex"`
	Selections   map[string]string `json:"selections"`
	Revealed     map[string]bool   `json:"revealed"`
	StartedAt    time.Time         `json:"startedAt"`
}

// ProgressMetrics 由会话状态纯函数推导，每次变更后重新计算，不单独存储
// swagger:model ProgressMetrics
type ProgressMetrics struct {
	Completed         int     `json:"completed"` // 已到达的 1-based 位置（沿用现网口径，见 DESIGN.md）
	Score             int     `json:"score"`
	AverageDifficulty float64 `json:"averageDifficultyScore"`
	EstimatedMinutes  int     `json:"estimatedMinutes"`
	Total             int     `json:"total"`
}

// SessionService 按用户维护练习会话的状态机：
// Empty → Populated，逐题 Unanswered → Selected → Revealed
type SessionService struct {
	mu             sync.RWMutex
	sessions       map[uint]*Session
	AssessmentRepo *repository.AssessmentRepository
}

func NewSessionService(assessmentRepo *repository.AssessmentRepository) *SessionService {
	return &SessionService{
		sessions:       make(map[uint]*Session),
		AssessmentRepo: assessmentRepo,
	}
}

// Start 用新生成的题目批次整体替换会话，清空所有选择与揭示状态。
// 题目批次要么整体生效要么不生效，不存在部分应用
func (s *SessionService) Start(userID uint, subjectID uint, category string, questions []model.Question) *Session {
	session := &Session{
		UserID:       userID,
		SubjectID:    subjectID,
		Category:     category,
		Questions:    questions,
		CurrentIndex: 0,
		Selections:   make(map[string]string),
		Revealed:     make(map[string]bool),
		StartedAt:    time.Now(),
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	monitoring.SessionsStarted.Inc()
	return session.snapshot()
}

func (s *SessionService) Get(userID uint) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, util.ErrNoActiveSession
	}
	return session.snapshot(), nil
}

// snapshot 返回脱离锁保护的副本：同一用户的并发请求共享 map 里的会话，
// 调用方在锁外序列化时不能与 Select/Reveal/Next 的写入交叉。
// Questions 批次只会整体替换、从不原地修改，共享底层数组是安全的
func (session *Session) snapshot() *Session {
	cp := *session
	cp.Selections = make(map[string]string, len(session.Selections))
	for k, v := range session.Selections {
		cp.Selections[k] = v
	}
	cp.Revealed = make(map[string]bool, len(session.Revealed))
	for k, v := range session.Revealed {
		cp.Revealed[k] = v
	}
	return &cp
}

// Select 记录学习者对某题的作答；揭示前可反复覆盖，揭示后拒绝（答案已锁定）
func (s *SessionService) Select(userID uint, questionID, answer string) error {
	if answer == "" {
		return util.NewValidationError("answer is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return util.ErrNoActiveSession
	}
	if !session.hasQuestion(questionID) {
		return util.ErrQuestionNotInSet
	}
	if session.Revealed[questionID] {
		return util.ErrSelectAfterReveal
	}

	session.Selections[questionID] = answer
	return nil
}

// Reveal 揭示某题答案，幂等：重复揭示不报错
func (s *SessionService) Reveal(userID uint, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return util.ErrNoActiveSession
	}
	if !session.hasQuestion(questionID) {
		return util.ErrQuestionNotInSet
	}

	session.Revealed[questionID] = true
	return nil
}

// Next 前进一题，已在末题时为 no-op
func (s *SessionService) Next(userID uint) (int, error) {
	return s.move(userID, 1)
}

// Previous 后退一题，已在首题时为 no-op
func (s *SessionService) Previous(userID uint) (int, error) {
	return s.move(userID, -1)
}

func (s *SessionService) move(userID uint, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return 0, util.ErrNoActiveSession
	}
	if len(session.Questions) == 0 {
		return 0, nil
	}

	idx := session.CurrentIndex + delta
	if idx < 0 {
		idx = 0
	}
	if max := len(session.Questions) - 1; idx > max {
		idx = max
	}
	session.CurrentIndex = idx
	return idx, nil
}

// Progress 推导当前进度指标
func (s *SessionService) Progress(userID uint) (*ProgressMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, util.ErrNoActiveSession
	}
	m := session.progress()
	return &m, nil
}

func (session *Session) progress() ProgressMetrics {
	m := ProgressMetrics{
		Total: len(session.Questions),
	}
	if m.Total == 0 {
		return m
	}

	m.Completed = session.CurrentIndex + 1

	difficultySum := 0
	for _, q := range session.Questions {
		difficultySum += q.Difficulty.Score()
		m.EstimatedMinutes += q.Type.EstimatedMinutes()

		if q.Type == model.MCQ && session.Revealed[q.ID] && q.MCQData != nil &&
			session.Selections[q.ID] == q.MCQData.CorrectAnswer {
			m.Score++
		}
	}
	m.AverageDifficulty = float64(difficultySum) / float64(m.Total)

	return m
}

func (session *Session) hasQuestion(questionID string) bool {
	for _, q := range session.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// Finish 结束会话：汇总作答明细生成成绩记录并落库，随后丢弃会话
func (s *SessionService) Finish(userID uint) (*model.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, util.ErrNoActiveSession
	}

	answers := make([]model.AssessmentAnswer, 0, len(session.Questions))
	mcqTotal, mcqCorrect := 0, 0
	for _, q := range session.Questions {
		answer := model.AssessmentAnswer{
			QuestionID: q.ID,
			Answer:     session.Selections[q.ID],
		}
		if q.Type == model.MCQ {
			mcqTotal++
			if q.MCQData != nil && session.Revealed[q.ID] && answer.Answer == q.MCQData.CorrectAnswer {
				answer.IsCorrect = true
				mcqCorrect++
			}
		}
		answers = append(answers, answer)
	}

	score := 0.0
	if mcqTotal > 0 {
		score = float64(mcqCorrect) / float64(mcqTotal) * 100
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		UserID:         userID,
		SubjectID:      session.SubjectID,
		Category:       session.Category,
		QuizScore:      score,
		Total:          len(session.Questions),
		Answers:        answersJSON,
		ImprovementTip: improvementTip(score),
	}

	if err := s.AssessmentRepo.Create(assessment); err != nil {
		return nil, err
	}

	delete(s.sessions, userID)
	return assessment, nil
}

// Clear 丢弃会话但不记成绩（用户中途放弃）
func (s *SessionService) Clear(userID uint) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

func improvementTip(score float64) string {
	switch {
	case score >= 80:
		return "表现出色，建议挑战更高难度的题目巩固优势。"
	case score >= 50:
		return fmt.Sprintf("得分 %.0f%%，建议复盘错题的解析后再练一轮。", score)
	default:
		return "正确率偏低，建议先回顾该科目的基础知识点再继续练习。"
	}
}
