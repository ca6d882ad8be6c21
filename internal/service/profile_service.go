package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insightCacheTTL = time.Hour

// CompleteProfileRequest 入职引导表单
// swagger:model CompleteProfileRequest
type CompleteProfileRequest struct {
	Industry   string   `json:"industry" binding:"required"`
	Experience int      `json:"experience" binding:"min=0"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
}

// ProfileResult 资料更新结果：更新后的用户与（可能新建的）行业洞察
type ProfileResult struct {
	User    *model.User            `json:"user"`
	Insight *model.IndustryInsight `json:"industryInsight"`
}

// ProfileService 入职引导的事务化资料更新：
// 行业洞察按键惰性创建与用户资料更新在同一事务内提交或回滚
type ProfileService struct {
	UserRepo    *repository.UserRepository
	InsightRepo *repository.InsightRepository
	DB          *gorm.DB
	Redis       *redis.Client
	txTimeout   time.Duration
}

func NewProfileService(userRepo *repository.UserRepository, insightRepo *repository.InsightRepository, db *gorm.DB, rdb *redis.Client, txTimeout time.Duration) *ProfileService {
	if txTimeout <= 0 {
		txTimeout = 10 * time.Second
	}
	return &ProfileService{
		UserRepo:    userRepo,
		InsightRepo: insightRepo,
		DB:          db,
		Redis:       rdb,
		txTimeout:   txTimeout,
	}
}

// CompleteProfile 完成入职引导。整个单元受 txTimeout 约束，
// 超时以 ErrTransactionTimeout 报告给调用方（可重试，但本服务不自动重试）
func (s *ProfileService) CompleteProfile(ctx context.Context, userID uint, req CompleteProfileRequest) (*ProfileResult, error) {
	if userID == 0 {
		return nil, util.ErrUnauthorized
	}

	industry := strings.TrimSpace(req.Industry)
	if industry == "" {
		return nil, util.NewValidationError("industry is required")
	}
	if req.Experience < 0 {
		return nil, util.NewValidationError("experience must be non-negative")
	}

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var (
		user    model.User
		insight model.IndustryInsight
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 第一步：按行业键查找洞察，不存在则以默认值创建（并发撞唯一索引时回读）。
		// 回读走锁定读，否则 REPEATABLE READ 的旧快照看不到并发已提交的行
		err := tx.Where("industry = ?", industry).First(&insight).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			insight = *model.NewDefaultInsight(industry)
			if err := tx.Create(&insight).Error; err != nil {
				if !isDuplicateKey(err) {
					return err
				}
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("industry = ?", industry).First(&insight).Error; err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		// 第二步：更新用户资料；用户不存在时整个事务回滚（洞察的创建一并撤销）
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}

		user.Industry = industry
		user.Experience = req.Experience
		user.Bio = req.Bio
		user.Skills = req.Skills
		user.Onboarded = true

		return tx.Save(&user).Error
	})

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, util.ErrTransactionTimeout
		}
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, err
		}
		return nil, &util.PersistenceError{Op: "complete profile", Err: err}
	}

	s.invalidateInsightCache(industry)

	return &ProfileResult{User: &user, Insight: &insight}, nil
}

// GetProfile 读取当前用户资料
func (s *ProfileService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetInsight 读取行业洞察，优先走 Redis 缓存；库中不存在时惰性创建默认记录
func (s *ProfileService) GetInsight(ctx context.Context, industry string) (*model.IndustryInsight, error) {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return nil, util.NewValidationError("industry is required")
	}

	if cached := s.readInsightCache(ctx, industry); cached != nil {
		return cached, nil
	}

	var insight model.IndustryInsight
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("industry = ?", industry).First(&insight).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		insight = *model.NewDefaultInsight(industry)
		if err := tx.Create(&insight).Error; err != nil {
			if !isDuplicateKey(err) {
				return err
			}
			return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("industry = ?", industry).First(&insight).Error
		}
		return nil
	})
	if err != nil {
		return nil, &util.PersistenceError{Op: "get insight", Err: err}
	}

	s.writeInsightCache(ctx, &insight)
	return &insight, nil
}

func insightCacheKey(industry string) string {
	return "insight:" + industry
}

func (s *ProfileService) readInsightCache(ctx context.Context, industry string) *model.IndustryInsight {
	if s.Redis == nil {
		return nil
	}

	raw, err := s.Redis.Get(ctx, insightCacheKey(industry)).Result()
	if err != nil {
		return nil
	}

	var insight model.IndustryInsight
	if err := json.Unmarshal([]byte(raw), &insight); err != nil {
		return nil
	}
	return &insight
}

func (s *ProfileService) writeInsightCache(ctx context.Context, insight *model.IndustryInsight) {
	if s.Redis == nil {
		return
	}

	raw, err := json.Marshal(insight)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, insightCacheKey(insight.Industry), raw, insightCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache industry insight", zap.Error(err))
	}
}

func (s *ProfileService) invalidateInsightCache(industry string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), insightCacheKey(industry)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate insight cache", zap.Error(err))
	}
}
