package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/models"
	"github.com/kw-muji/team-match-api/internal/repository"
)

var (
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrSurveyTitleRequired = errors.New("survey title is required")
	ErrNoQuestions         = errors.New("survey needs at least one question")
	ErrQuestionNotInSurvey = errors.New("answer references a question outside this survey")
	ErrNoAnswers           = errors.New("submission needs at least one answer")
)

// SurveyService handles survey creation, retrieval, and submissions.
type SurveyService struct {
	surveys repository.SurveyRepository
	users   repository.UserRepository
}

// NewSurveyService creates a new SurveyService
func NewSurveyService(surveys repository.SurveyRepository, users repository.UserRepository) *SurveyService {
	return &SurveyService{
		surveys: surveys,
		users:   users,
	}
}

// QuestionInput represents one question in a create request
type QuestionInput struct {
	Text    string
	Type    models.QuestionType
	Options []string
}

// CreateSurveyInput represents input for creating a survey
type CreateSurveyInput struct {
	OwnerID     uint64
	Title       string
	Description string
	Questions   []QuestionInput
}

// CreateSurvey validates the owner and questions and stores the survey.
func (s *SurveyService) CreateSurvey(input CreateSurveyInput) (uint64, error) {
	if strings.TrimSpace(input.Title) == "" {
		return 0, ErrSurveyTitleRequired
	}
	if len(input.Questions) == 0 {
		return 0, ErrNoQuestions
	}

	if _, err := s.users.FindByID(input.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to find owner: %w", err)
	}

	survey := &models.Survey{
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
	}
	for i, q := range input.Questions {
		question := models.SurveyQuestion{
			Seq:  i + 1,
			Text: q.Text,
			Type: q.Type,
		}
		if question.Type == "" {
			question.Type = models.QuestionText
		}
		for j, opt := range q.Options {
			question.Options = append(question.Options, models.SurveyOption{
				Seq:  j + 1,
				Text: opt,
			})
		}
		survey.Questions = append(survey.Questions, question)
	}

	if err := s.surveys.Create(survey); err != nil {
		return 0, fmt.Errorf("failed to create survey: %w", err)
	}

	return survey.ID, nil
}

// ListSurveys returns surveys matching the optional search term.
func (s *SurveyService) ListSurveys(search string, page, pageSize int) ([]models.Survey, int64, error) {
	surveys, total, err := s.surveys.List(repository.SurveyFilter{
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list surveys: %w", err)
	}
	return surveys, total, nil
}

// GetSurvey returns a survey with its questions and options.
func (s *SurveyService) GetSurvey(surveyID uint64) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(surveyID, "Questions", "Questions.Options")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to find survey: %w", err)
	}
	return survey, nil
}

// AnswerInput represents one answer in a submission
type AnswerInput struct {
	QuestionID uint64
	Value      string
}

// SubmitSurvey stores an immutable response record. Every answer must
// reference a question belonging to the survey.
func (s *SurveyService) SubmitSurvey(surveyID, userID uint64, answers []AnswerInput) (uint64, error) {
	if len(answers) == 0 {
		return 0, ErrNoAnswers
	}

	survey, err := s.surveys.FindByID(surveyID, "Questions")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSurveyNotFound
		}
		return 0, fmt.Errorf("failed to find survey: %w", err)
	}

	questionIDs := make(map[uint64]struct{}, len(survey.Questions))
	for _, q := range survey.Questions {
		questionIDs[q.ID] = struct{}{}
	}

	response := &models.SurveyResponse{
		SurveyID:    surveyID,
		UserID:      userID,
		SubmittedAt: time.Now(),
	}
	for _, a := range answers {
		if _, ok := questionIDs[a.QuestionID]; !ok {
			return 0, ErrQuestionNotInSurvey
		}
		response.Answers = append(response.Answers, models.SurveyAnswer{
			QuestionID: a.QuestionID,
			Value:      a.Value,
		})
	}

	if err := s.surveys.CreateResponse(response); err != nil {
		return 0, fmt.Errorf("failed to store submission: %w", err)
	}

	return response.ID, nil
}
