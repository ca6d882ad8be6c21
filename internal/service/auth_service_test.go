package service

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterHashesPasswordAndRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "张三", Email: "zhang@example.com", Password: "password123", Role: model.Student}
	require.NoError(t, svc.Register(user))
	assert.NotEqual(t, "password123", user.Password)

	dup := &model.User{Name: "李四", Email: "zhang@example.com", Password: "password456", Role: model.Student}
	assert.ErrorIs(t, svc.Register(dup), util.ErrEmailRegistered)
}

func TestLoginReturnsValidToken(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "张三", Email: "zhang@example.com", Password: "password123", Role: model.Student}
	require.NoError(t, svc.Register(user))

	token, err := svc.Login("zhang@example.com", "password123")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "张三", Email: "zhang@example.com", Password: "password123", Role: model.Student}
	require.NoError(t, svc.Register(user))

	_, err := svc.Login("zhang@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("none@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
