package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apperrors"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type QuestionService interface {
	ListQuestions(ctx context.Context, userID, courseID uuid.UUID) ([]*types.PracticeQuestion, error)
	CreateQuestion(ctx context.Context, userID, courseID uuid.UUID, question, answer, difficulty string) (*types.PracticeQuestion, error)
	UpdateQuestion(ctx context.Context, userID, questionID uuid.UUID, question, answer, difficulty *string) (*types.PracticeQuestion, error)
	DeleteQuestion(ctx context.Context, userID, questionID uuid.UUID) error
}

type questionService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	questionRepo repos.QuestionRepo
}

func NewQuestionService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo, questionRepo repos.QuestionRepo) QuestionService {
	serviceLog := baseLog.With("service", "QuestionService")
	return &questionService{db: db, log: serviceLog, courseRepo: courseRepo, questionRepo: questionRepo}
}

func validDifficulty(difficulty string) bool {
	switch difficulty {
	case "easy", "medium", "hard":
		return true
	}
	return false
}

func (qs *questionService) ListQuestions(ctx context.Context, userID, courseID uuid.UUID) ([]*types.PracticeQuestion, error) {
	if err := qs.requireCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}
	questions, err := qs.questionRepo.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}

func (qs *questionService) CreateQuestion(ctx context.Context, userID, courseID uuid.UUID, question, answer, difficulty string) (*types.PracticeQuestion, error) {
	if err := qs.requireCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}
	if question == "" || answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", apperrors.ErrInvalidArgument)
	}
	if difficulty == "" {
		difficulty = "medium"
	}
	if !validDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: difficulty must be easy, medium or hard", apperrors.ErrInvalidArgument)
	}

	now := time.Now()
	record := &types.PracticeQuestion{
		ID:         uuid.New(),
		CourseID:   courseID,
		Question:   question,
		Answer:     answer,
		Difficulty: difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := qs.questionRepo.Create(ctx, nil, []*types.PracticeQuestion{record}); err != nil {
		qs.log.Error("CreateQuestion failed", "error", err, "course_id", courseID)
		return nil, fmt.Errorf("create question: %w", err)
	}
	return record, nil
}

func (qs *questionService) UpdateQuestion(ctx context.Context, userID, questionID uuid.UUID, question, answer, difficulty *string) (*types.PracticeQuestion, error) {
	record, err := qs.questionRepo.GetOwned(ctx, nil, userID, questionID)
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: question", apperrors.ErrNotFound)
	}
	if question != nil {
		if *question == "" {
			return nil, fmt.Errorf("%w: question cannot be empty", apperrors.ErrInvalidArgument)
		}
		record.Question = *question
	}
	if answer != nil {
		if *answer == "" {
			return nil, fmt.Errorf("%w: answer cannot be empty", apperrors.ErrInvalidArgument)
		}
		record.Answer = *answer
	}
	if difficulty != nil {
		if !validDifficulty(*difficulty) {
			return nil, fmt.Errorf("%w: difficulty must be easy, medium or hard", apperrors.ErrInvalidArgument)
		}
		record.Difficulty = *difficulty
	}
	record.UpdatedAt = time.Now()
	if err := qs.questionRepo.Update(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return record, nil
}

func (qs *questionService) DeleteQuestion(ctx context.Context, userID, questionID uuid.UUID) error {
	record, err := qs.questionRepo.GetOwned(ctx, nil, userID, questionID)
	if err != nil {
		return fmt.Errorf("load question: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: question", apperrors.ErrNotFound)
	}
	if err := qs.questionRepo.Delete(ctx, nil, record.ID); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func (qs *questionService) requireCourse(ctx context.Context, userID, courseID uuid.UUID) error {
	course, err := qs.courseRepo.GetOwned(ctx, nil, userID, courseID)
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return fmt.Errorf("%w: course", apperrors.ErrNotFound)
	}
	return nil
}
