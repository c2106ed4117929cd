package database

import (
	"fmt"
	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	logLevel := logger.Info
	if cfg.Server.Mode == "release" {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 모드에서는 -migrate 플래그 없이 스키마를 건드리지 않는다
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.HanziCharacter{},
			&model.RelatedWord{},
			&model.ExamSession{},
			&model.ExamResult{},
			&model.WrongAnswer{},
			&model.StudyStat{},
			&model.WritingSubmission{},
			&model.GameResult{},
			&model.LearningLog{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	// 관리자 계정이 하나도 없으면 기본 계정을 생성한다 (최초 기동용)
	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&adminCount)
	if adminCount == 0 {
		admin := &model.User{
			Name:     "관리자",
			Email:    "admin@hanja-edu.local",
			Password: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
			Role:     model.Admin,
		}
		if err := db.Create(admin).Error; err != nil {
			log.Printf("failed to seed admin account: %v", err)
		} else {
			log.Println("Default admin account created (admin@hanja-edu.local)")
		}
	}

	return db, nil
}
