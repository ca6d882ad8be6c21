package service

import (
	"encoding/json"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func mcqQuestion(id string, difficulty model.Difficulty, correct string) model.Question {
	return model.Question{
		UUIDBase:   model.UUIDBase{ID: id},
		Type:       model.MCQ,
		Text:       "下列哪一项是正确的？",
		Difficulty: difficulty,
		MCQData: &model.MCQData{
			Options:       datatypes.NewJSONSlice([]string{correct, "错误选项 A", "错误选项 B"}),
			CorrectAnswer: correct,
		},
	}
}

func shortQuestion(id string, difficulty model.Difficulty) model.Question {
	return model.Question{
		UUIDBase:   model.UUIDBase{ID: id},
		Type:       model.ShortAnswer,
		Text:       "简要说明该概念。",
		Difficulty: difficulty,
		ShortAnswerData: &model.ShortAnswerData{
			SampleAnswer: "示例答案",
			Keywords:     datatypes.NewJSONSlice([]string{"定义", "例子"}),
		},
	}
}

func longQuestion(id string, difficulty model.Difficulty) model.Question {
	return model.Question{
		UUIDBase:   model.UUIDBase{ID: id},
		Type:       model.LongAnswer,
		Text:       "论述该主题。",
		Difficulty: difficulty,
		LongAnswerData: &model.LongAnswerData{
			SampleAnswer: "完整论述",
			KeyPoints:    datatypes.NewJSONSlice([]string{"要点一"}),
			Rubric:       datatypes.NewJSONType(map[string]string{"论证深度": "层次完整"}),
		},
	}
}

const testUserID = uint(42)

func TestProgressMetricsDerivation(t *testing.T) {
	svc := NewSessionService(nil)
	svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
		mcqQuestion("q2", model.Medium, "对"),
		mcqQuestion("q3", model.Hard, "对"),
	})

	require.NoError(t, svc.Select(testUserID, "q1", "对"))
	require.NoError(t, svc.Reveal(testUserID, "q1"))

	idx, err := svc.Next(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	m, err := svc.Progress(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Completed)
	assert.Equal(t, 1, m.Score)
	assert.InDelta(t, 2.0, m.AverageDifficulty, 1e-9)
	assert.Equal(t, 6, m.EstimatedMinutes)
	assert.Equal(t, 3, m.Total)
}

func TestScoreRequiresRevealedCorrectMCQ(t *testing.T) {
	svc := NewSessionService(nil)
	svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
		mcqQuestion("q2", model.Easy, "对"),
	})

	// 选了正确答案但未揭示，不计分
	require.NoError(t, svc.Select(testUserID, "q1", "对"))
	m, err := svc.Progress(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Score)

	// 揭示后选错的不计分
	require.NoError(t, svc.Select(testUserID, "q2", "错误选项 A"))
	require.NoError(t, svc.Reveal(testUserID, "q2"))
	m, err = svc.Progress(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Score)

	require.NoError(t, svc.Reveal(testUserID, "q1"))
	m, err = svc.Progress(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Score)
}

func TestEstimatedMinutesByQuestionType(t *testing.T) {
	svc := NewSessionService(nil)
	svc.Start(testUserID, 1, "mixed", []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
		shortQuestion("q2", model.Medium),
		longQuestion("q3", model.Hard),
	})

	m, err := svc.Progress(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 17, m.EstimatedMinutes)
}

func TestSelectAfterRevealRejected(t *testing.T) {
	svc := NewSessionService(nil)
	svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
	})

	// 揭示前可以反复改选
	require.NoError(t, svc.Select(testUserID, "q1", "错误选项 A"))
	require.NoError(t, svc.Select(testUserID, "q1", "对"))

	require.NoError(t, svc.Reveal(testUserID, "q1"))
	// 重复揭示幂等
	require.NoError(t, svc.Reveal(testUserID, "q1"))

	err := svc.Select(testUserID, "q1", "错误选项 B")
	assert.ErrorIs(t, err, util.ErrSelectAfterReveal)
}

func TestSelectValidation(t *testing.T) {
	svc := NewSessionService(nil)

	assert.ErrorIs(t, svc.Select(testUserID, "q1", "对"), util.ErrNoActiveSession)
	_, err := svc.Progress(testUserID)
	assert.ErrorIs(t, err, util.ErrNoActiveSession)

	svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
	})

	var validationErr *util.ValidationError
	assert.ErrorAs(t, svc.Select(testUserID, "q1", ""), &validationErr)
	assert.ErrorIs(t, svc.Select(testUserID, "ghost", "对"), util.ErrQuestionNotInSet)
	assert.ErrorIs(t, svc.Reveal(testUserID, "ghost"), util.ErrQuestionNotInSet)
}

func TestNavigationClampsAtBounds(t *testing.T) {
	svc := NewSessionService(nil)
	svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
		mcqQuestion("q2", model.Easy, "对"),
	})

	idx, err := svc.Previous(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = svc.Next(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = svc.Next(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestStartReplacesPreviousSession(t *testing.T) {
	svc := NewSessionService(nil)
	svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("old1", model.Easy, "对"),
		mcqQuestion("old2", model.Easy, "对"),
	})
	require.NoError(t, svc.Select(testUserID, "old1", "对"))
	require.NoError(t, svc.Reveal(testUserID, "old1"))
	_, err := svc.Next(testUserID)
	require.NoError(t, err)

	svc.Start(testUserID, 2, string(model.MCQ), []model.Question{
		mcqQuestion("new1", model.Easy, "对"),
	})

	session, err := svc.Get(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, session.CurrentIndex)
	assert.Empty(t, session.Selections)
	assert.Empty(t, session.Revealed)

	// 旧批次的题目不再属于会话
	assert.ErrorIs(t, svc.Select(testUserID, "old1", "对"), util.ErrQuestionNotInSet)
}

func TestGetReturnsDetachedSnapshot(t *testing.T) {
	svc := NewSessionService(nil)
	svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
		mcqQuestion("q2", model.Easy, "对"),
	})

	before, err := svc.Get(testUserID)
	require.NoError(t, err)

	require.NoError(t, svc.Select(testUserID, "q1", "对"))
	require.NoError(t, svc.Reveal(testUserID, "q1"))
	_, err = svc.Next(testUserID)
	require.NoError(t, err)

	// 先取到的副本不随后续写入变化
	assert.Empty(t, before.Selections)
	assert.Empty(t, before.Revealed)
	assert.Equal(t, 0, before.CurrentIndex)

	after, err := svc.Get(testUserID)
	require.NoError(t, err)
	assert.Equal(t, "对", after.Selections["q1"])
	assert.True(t, after.Revealed["q1"])
	assert.Equal(t, 1, after.CurrentIndex)
}

func TestConcurrentGetAndSelect(t *testing.T) {
	svc := NewSessionService(nil)
	started := svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
		mcqQuestion("q2", model.Easy, "对"),
	})

	// Start 返回的也是副本，同样可以在锁外序列化
	_, err := json.Marshal(started)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			session, err := svc.Get(testUserID)
			if err != nil {
				continue
			}
			if _, err := json.Marshal(session); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = svc.Select(testUserID, "q1", "对")
			_, _ = svc.Next(testUserID)
			_, _ = svc.Previous(testUserID)
		}
	}()
	wg.Wait()
}

func TestFinishPersistsAssessmentAndDropsSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(repository.NewAssessmentRepository(db))

	svc.Start(testUserID, 1, string(model.MCQ), []model.Question{
		mcqQuestion("q1", model.Easy, "对"),
		mcqQuestion("q2", model.Easy, "对"),
	})
	require.NoError(t, svc.Select(testUserID, "q1", "对"))
	require.NoError(t, svc.Reveal(testUserID, "q1"))

	assessment, err := svc.Finish(testUserID)
	require.NoError(t, err)
	assert.EqualValues(t, testUserID, assessment.UserID)
	assert.Equal(t, 2, assessment.Total)
	assert.InDelta(t, 50.0, assessment.QuizScore, 1e-9)
	assert.NotEmpty(t, assessment.ImprovementTip)

	var rows int64
	require.NoError(t, db.Model(&model.Assessment{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	_, err = svc.Get(testUserID)
	assert.ErrorIs(t, err, util.ErrNoActiveSession)
}
