package dto

import (
	"time"

	"github.com/kw-muji/team-match-api/internal/models"
	"github.com/kw-muji/team-match-api/internal/utils"
)

// SurveyRequest is the body of POST /survey/create/:userId
type SurveyRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Questions   []QuestionRequest `json:"questions" binding:"required"`
}

// QuestionRequest represents one question in a create request
type QuestionRequest struct {
	Text    string              `json:"text" binding:"required"`
	Type    models.QuestionType `json:"type"`
	Options []string            `json:"options"`
}

// SurveySubmitRequest is the body of POST /survey/submit/:surveyId
type SurveySubmitRequest struct {
	Answers []AnswerRequest `json:"answers" binding:"required"`
}

// AnswerRequest represents one answer in a submission
type AnswerRequest struct {
	QuestionID uint64 `json:"questionId" binding:"required"`
	Value      string `json:"value"`
}

// SurveyListItemDTO represents a survey in list responses
type SurveyListItemDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SurveyListResponse is a paginated list of surveys
type SurveyListResponse struct {
	Surveys    []SurveyListItemDTO      `json:"surveys"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// SurveyOptionDTO represents a choice option
type SurveyOptionDTO struct {
	ID   uint64 `json:"id"`
	Seq  int    `json:"seq"`
	Text string `json:"text"`
}

// SurveyQuestionDTO represents a question with options
type SurveyQuestionDTO struct {
	ID      uint64              `json:"id"`
	Seq     int                 `json:"seq"`
	Text    string              `json:"text"`
	Type    models.QuestionType `json:"type"`
	Options []SurveyOptionDTO   `json:"options,omitempty"`
}

// SurveyDetailDTO represents full survey detail
type SurveyDetailDTO struct {
	ID          uint64              `json:"id"`
	OwnerID     uint64              `json:"owner_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"created_at"`
	Questions   []SurveyQuestionDTO `json:"questions"`
}

// Conversion functions

// ToSurveyListResponse converts surveys to a paginated list response
func ToSurveyListResponse(surveys []models.Survey, params utils.PaginationParams, total int64) SurveyListResponse {
	items := make([]SurveyListItemDTO, len(surveys))
	for i, s := range surveys {
		items[i] = SurveyListItemDTO{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			CreatedAt:   s.CreatedAt,
		}
	}
	return SurveyListResponse{
		Surveys:    items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}

// ToSurveyDetailDTO converts a survey with preloaded questions
func ToSurveyDetailDTO(survey models.Survey) SurveyDetailDTO {
	questions := make([]SurveyQuestionDTO, len(survey.Questions))
	for i, q := range survey.Questions {
		question := SurveyQuestionDTO{
			ID:   q.ID,
			Seq:  q.Seq,
			Text: q.Text,
			Type: q.Type,
		}
		for _, opt := range q.Options {
			question.Options = append(question.Options, SurveyOptionDTO{
				ID:   opt.ID,
				Seq:  opt.Seq,
				Text: opt.Text,
			})
		}
		questions[i] = question
	}
	return SurveyDetailDTO{
		ID:          survey.ID,
		OwnerID:     survey.OwnerID,
		Title:       survey.Title,
		Description: survey.Description,
		CreatedAt:   survey.CreatedAt,
		Questions:   questions,
	}
}
