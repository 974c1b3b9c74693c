package infrastructure

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hack2hire/domain"
)

func NewMySQLConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Question{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// LoadCatalog reads the question bank from the database, seeding it with the
// built-in questions when the table is empty. The result is an in-memory
// catalog; the database is not consulted again.
func LoadCatalog(db *gorm.DB, logger *zap.Logger) (*domain.Catalog, error) {
	if err := seedQuestions(db, logger); err != nil {
		return nil, err
	}

	var questions []domain.Question
	if err := db.Order("id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	logger.Info("question catalog loaded from database", zap.Int("questions", len(questions)))
	return domain.NewCatalog(questions), nil
}

func seedQuestions(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&domain.Question{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		return nil
	}

	questions := domain.DefaultQuestions()
	if err := db.Create(&questions).Error; err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}

	logger.Info("seeded question catalog", zap.Int("questions", len(questions)))
	return nil
}
