package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"quizdeck/cmd/seed/internal/seedmodels"
	"quizdeck/internal/config"
	"quizdeck/internal/database"
	"quizdeck/internal/domain"
	"quizdeck/internal/logger"
	"quizdeck/internal/repository"

	"go.uber.org/zap"
)

const (
	demoOwnerGoogleID = "seed-demo-owner"
	demoOwnerEmail    = "demo@quizdeck.local"
	demoOwnerName     = "QuizDeck Demo"
)

func main() {
	seedFilePath := flag.String("file", "configs/seed_data/demo_quizzes.json", "seed file with demo quizzes")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting demo data seeding", zap.String("file", *seedFilePath))
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var seedQuizzes []seedmodels.SeedQuiz
	if err := json.Unmarshal(byteValue, &seedQuizzes); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("quizzes", len(seedQuizzes)))

	userRepo := repository.NewSQLXUserRepository(db)
	quizRepo := repository.NewSQLXQuizRepository(db)

	owner, err := ensureDemoOwner(ctx, userRepo)
	if err != nil {
		log.Fatal("Failed to create demo owner", zap.Error(err))
	}
	log.Info("Demo owner ready", zap.String("user_id", owner.ID))

	seeded := 0
	for _, sq := range seedQuizzes {
		quiz := toDomainQuiz(owner.ID, sq)
		if errs := quiz.Validate(); len(errs) > 0 {
			log.Error("Skipping invalid seed quiz", zap.String("title", sq.Title), zap.Error(errs))
			continue
		}
		if err := quizRepo.CreateQuiz(ctx, quiz); err != nil {
			log.Error("Failed to seed quiz", zap.String("title", sq.Title), zap.Error(err))
			continue
		}
		log.Info("Seeded quiz", zap.String("title", sq.Title), zap.String("quiz_id", quiz.ID))
		seeded++
	}
	log.Info("Demo data seeding completed", zap.Int("seeded", seeded))
}

// ensureDemoOwner returns the demo user, creating it on first run.
func ensureDemoOwner(ctx context.Context, userRepo domain.UserRepository) (*domain.User, error) {
	existing, err := userRepo.GetUserByGoogleID(ctx, demoOwnerGoogleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	owner := &domain.User{
		GoogleID: demoOwnerGoogleID,
		Email:    demoOwnerEmail,
		Name:     demoOwnerName,
	}
	if err := userRepo.CreateUser(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func toDomainQuiz(ownerID string, sq seedmodels.SeedQuiz) *domain.Quiz {
	quiz := domain.NewQuiz(ownerID, sq.Title, sq.Description)
	// Positions are 1-based, matching what the DTO layer assigns.
	for i, q := range sq.Questions {
		question := domain.Question{
			Text:     q.Text,
			Position: i + 1,
		}
		for j, a := range q.Answers {
			question.Answers = append(question.Answers, domain.Answer{
				Text:      a.Text,
				Position:  j + 1,
				IsCorrect: a.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz
}
