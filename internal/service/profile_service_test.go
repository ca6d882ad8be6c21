package service

import (
	"context"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileService(t *testing.T) (*ProfileService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewProfileService(repository.NewUserRepository(db), repository.NewInsightRepository(db), db, nil, 10*time.Second)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "测试用户",
		Email:    "user@example.com",
		Password: "hashed",
		Role:     model.Student,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCompleteProfileUpdatesUserAndCreatesInsight(t *testing.T) {
	svc, db := newProfileService(t)
	user := seedUser(t, db)

	result, err := svc.CompleteProfile(context.Background(), user.ID, CompleteProfileRequest{
		Industry:   "tech-software-development",
		Experience: 3,
		Bio:        "后端工程师",
		Skills:     []string{"Go", "MySQL"},
	})
	require.NoError(t, err)

	assert.True(t, result.User.Onboarded)
	assert.Equal(t, "tech-software-development", result.User.Industry)
	assert.Equal(t, 3, result.User.Experience)
	assert.Equal(t, []string{"Go", "MySQL"}, []string(result.User.Skills))

	// 洞察按默认值惰性创建
	insight := result.Insight
	require.NotNil(t, insight)
	assert.Equal(t, "tech-software-development", insight.Industry)
	assert.Equal(t, model.DemandMedium, insight.DemandLevel)
	assert.Equal(t, model.OutlookNeutral, insight.MarketOutlook)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), insight.NextUpdate, time.Minute)

	var stored model.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, stored.Onboarded)
}

func TestCompleteProfileReusesExistingInsight(t *testing.T) {
	svc, db := newProfileService(t)
	user := seedUser(t, db)

	other := &model.User{Name: "另一个", Email: "other@example.com", Password: "hashed", Role: model.Student}
	require.NoError(t, db.Create(other).Error)

	req := CompleteProfileRequest{Industry: "finance", Experience: 1}
	_, err := svc.CompleteProfile(context.Background(), user.ID, req)
	require.NoError(t, err)
	_, err = svc.CompleteProfile(context.Background(), other.ID, req)
	require.NoError(t, err)

	var rows int64
	require.NoError(t, db.Model(&model.IndustryInsight{}).Where("industry = ?", "finance").Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestCompleteProfileRollsBackInsightWhenUserMissing(t *testing.T) {
	svc, db := newProfileService(t)

	_, err := svc.CompleteProfile(context.Background(), 9999, CompleteProfileRequest{
		Industry:   "healthcare",
		Experience: 2,
	})
	require.ErrorIs(t, err, util.ErrUserNotFound)

	// 事务回滚后不留下洞察行
	var rows int64
	require.NoError(t, db.Model(&model.IndustryInsight{}).Where("industry = ?", "healthcare").Count(&rows).Error)
	assert.EqualValues(t, 0, rows)
}

func TestCompleteProfileValidation(t *testing.T) {
	svc, db := newProfileService(t)
	user := seedUser(t, db)
	ctx := context.Background()

	_, err := svc.CompleteProfile(ctx, 0, CompleteProfileRequest{Industry: "tech"})
	assert.ErrorIs(t, err, util.ErrUnauthorized)

	var validationErr *util.ValidationError
	_, err = svc.CompleteProfile(ctx, user.ID, CompleteProfileRequest{Industry: "   "})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CompleteProfile(ctx, user.ID, CompleteProfileRequest{Industry: "tech", Experience: -1})
	assert.ErrorAs(t, err, &validationErr)
}

func TestCompleteProfileTimeout(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(repository.NewUserRepository(db), repository.NewInsightRepository(db), db, nil, time.Nanosecond)
	user := seedUser(t, db)

	_, err := svc.CompleteProfile(context.Background(), user.ID, CompleteProfileRequest{
		Industry:   "tech",
		Experience: 1,
	})
	assert.ErrorIs(t, err, util.ErrTransactionTimeout)
}

func TestGetInsightLazilyCreatesDefault(t *testing.T) {
	svc, db := newProfileService(t)

	insight, err := svc.GetInsight(context.Background(), "education")
	require.NoError(t, err)
	assert.Equal(t, "education", insight.Industry)
	assert.Equal(t, model.DemandMedium, insight.DemandLevel)

	again, err := svc.GetInsight(context.Background(), "education")
	require.NoError(t, err)
	assert.Equal(t, insight.ID, again.ID)

	var rows int64
	require.NoError(t, db.Model(&model.IndustryInsight{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _ := newProfileService(t)
	_, err := svc.GetProfile(12345)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
