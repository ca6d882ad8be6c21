package database

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		seedCatalog(db)
	}

	return db, nil
}

// Migrate 执行全量表结构迁移，测试用的 sqlite 库也复用这份清单
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.University{},
		&model.Course{},
		&model.Subject{},
		&model.Question{},
		&model.MCQData{},
		&model.ShortAnswerData{},
		&model.LongAnswerData{},
		&model.IndustryInsight{},
		&model.Assessment{},
	)
}

// seedCatalog 目录层级为空时插入几所常见院校，方便前端首次联调
func seedCatalog(db *gorm.DB) {
	var count int64
	db.Model(&model.University{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.University{
		{Name: "Tribhuvan University", ShortName: "TU"},
		{Name: "Pokhara University", ShortName: "PU"},
		{Name: "Kathmandu University", ShortName: "KU"},
	}
	for _, u := range defaults {
		db.Create(&u)
	}
}
