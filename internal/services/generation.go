package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apperrors"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

const generationSystemPrompt = "You are a study assistant that produces clear, well-organized study material for college students."

// GeneratedQuestion is the shape the model is asked to produce for each
// practice question.
type GeneratedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

type GenerationService interface {
	// GenerateNotes asks the model for study notes on a topic and persists
	// the result as a note on the course.
	GenerateNotes(ctx context.Context, userID, courseID uuid.UUID, topic, detailLevel string) (*types.Note, error)
	// GenerateQuestions asks the model for count practice questions and
	// persists the parsed result on the course.
	GenerateQuestions(ctx context.Context, userID, courseID uuid.UUID, topic string, count int, difficulty string) ([]*types.PracticeQuestion, error)
	// GenerateTestStrategies is a pass-through: nothing is persisted.
	GenerateTestStrategies(ctx context.Context, testType string, problems []string) (string, error)
}

type generationService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	noteRepo     repos.NoteRepo
	questionRepo repos.QuestionRepo
	aiClient     OpenAIClient
}

func NewGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	noteRepo repos.NoteRepo,
	questionRepo repos.QuestionRepo,
	aiClient OpenAIClient,
) GenerationService {
	serviceLog := baseLog.With("service", "GenerationService")
	return &generationService{
		db:           db,
		log:          serviceLog,
		courseRepo:   courseRepo,
		noteRepo:     noteRepo,
		questionRepo: questionRepo,
		aiClient:     aiClient,
	}
}

func (gs *generationService) GenerateNotes(ctx context.Context, userID, courseID uuid.UUID, topic, detailLevel string) (*types.Note, error) {
	course, err := gs.courseRepo.GetOwned(ctx, nil, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("resolve course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: course", apperrors.ErrNotFound)
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", apperrors.ErrInvalidArgument)
	}

	maxTokens := 1000
	switch detailLevel {
	case "brief":
		maxTokens = 500
	case "", "medium":
		maxTokens = 1000
	case "detailed":
		maxTokens = 2000
	default:
		return nil, fmt.Errorf("%w: detail level must be brief, medium or detailed", apperrors.ErrInvalidArgument)
	}

	prompt := fmt.Sprintf(`Create organized study notes for a college course.

Course: %s
Topic: %s

Include:
1. Key concepts and definitions
2. Important principles or theories
3. Relevant examples
4. Summary of main points

Use clear headings and bullet points where appropriate.`, course.Title, topic)

	content, err := gs.aiClient.GenerateText(ctx, generationSystemPrompt, prompt, maxTokens)
	if err != nil {
		gs.log.Error("GenerateNotes failed", "error", err, "course_id", courseID)
		return nil, err
	}

	now := time.Now()
	note := &types.Note{
		ID:        uuid.New(),
		CourseID:  course.ID,
		Title:     topic,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := gs.noteRepo.Create(ctx, nil, []*types.Note{note}); err != nil {
		return nil, fmt.Errorf("persist generated note: %w", err)
	}
	return note, nil
}

func (gs *generationService) GenerateQuestions(ctx context.Context, userID, courseID uuid.UUID, topic string, count int, difficulty string) ([]*types.PracticeQuestion, error) {
	course, err := gs.courseRepo.GetOwned(ctx, nil, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("resolve course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: course", apperrors.ErrNotFound)
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", apperrors.ErrInvalidArgument)
	}
	if count <= 0 || count > 20 {
		return nil, fmt.Errorf("%w: count must be between 1 and 20", apperrors.ErrInvalidArgument)
	}
	if difficulty == "" {
		difficulty = "mixed"
	}
	if difficulty != "mixed" && !validDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: difficulty must be easy, medium, hard or mixed", apperrors.ErrInvalidArgument)
	}

	difficultyPrompt := ""
	if difficulty != "mixed" {
		difficultyPrompt = fmt.Sprintf("Make all questions %s difficulty level.", difficulty)
	}

	prompt := fmt.Sprintf(`Create %d practice questions for a college course.

Course: %s
Topic: %s

For each question:
1. Write a clear question
2. Provide a comprehensive answer
3. Specify difficulty (easy, medium, or hard)

Respond with ONLY a JSON array using this structure:
[
  {
    "question": "Question text here?",
    "answer": "Answer text here.",
    "difficulty": "medium"
  }
]

%s`, count, course.Title, topic, difficultyPrompt)

	raw, err := gs.aiClient.GenerateText(ctx, generationSystemPrompt, prompt, 2000)
	if err != nil {
		gs.log.Error("GenerateQuestions failed", "error", err, "course_id", courseID)
		return nil, err
	}

	generated, err := parseGeneratedQuestions(raw)
	if err != nil {
		gs.log.Error("GenerateQuestions produced unparseable output", "error", err, "course_id", courseID)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}

	now := time.Now()
	questions := make([]*types.PracticeQuestion, 0, len(generated))
	for _, g := range generated {
		if g.Question == "" || g.Answer == "" {
			continue
		}
		if !validDifficulty(g.Difficulty) {
			g.Difficulty = "medium"
		}
		questions = append(questions, &types.PracticeQuestion{
			ID:         uuid.New(),
			CourseID:   course.ID,
			Question:   g.Question,
			Answer:     g.Answer,
			Difficulty: g.Difficulty,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: model returned no usable questions", apperrors.ErrUpstream)
	}
	if _, err := gs.questionRepo.Create(ctx, nil, questions); err != nil {
		return nil, fmt.Errorf("persist generated questions: %w", err)
	}
	return questions, nil
}

func (gs *generationService) GenerateTestStrategies(ctx context.Context, testType string, problems []string) (string, error) {
	if testType == "" {
		return "", fmt.Errorf("%w: test type is required", apperrors.ErrInvalidArgument)
	}

	problemsText := "none specified"
	if len(problems) > 0 {
		problemsText = strings.Join(problems, ", ")
	}
	prompt := fmt.Sprintf(`Provide personalized test-taking strategies for a student.

Test type: %s
Problems the student struggles with: %s

Give practical, specific advice organized as a short list.`, testType, problemsText)

	strategies, err := gs.aiClient.GenerateText(ctx, generationSystemPrompt, prompt, 1000)
	if err != nil {
		gs.log.Error("GenerateTestStrategies failed", "error", err, "test_type", testType)
		return "", err
	}
	return strategies, nil
}

// parseGeneratedQuestions tolerates markdown code fences around the JSON
// array the model was asked for.
func parseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	// Fall back to the outermost bracket pair when the model wrapped the
	// array in prose.
	if !strings.HasPrefix(cleaned, "[") {
		start := strings.Index(cleaned, "[")
		end := strings.LastIndex(cleaned, "]")
		if start == -1 || end == -1 || end < start {
			return nil, fmt.Errorf("no JSON array in model output")
		}
		cleaned = cleaned[start : end+1]
	}

	var parsed []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("decode questions JSON: %w", err)
	}
	return parsed, nil
}
