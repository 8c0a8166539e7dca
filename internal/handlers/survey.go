package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kw-muji/team-match-api/internal/dto"
	"github.com/kw-muji/team-match-api/internal/middleware"
	"github.com/kw-muji/team-match-api/internal/response"
	"github.com/kw-muji/team-match-api/internal/services"
	"github.com/kw-muji/team-match-api/internal/utils"
)

// SurveyHandler coordinates survey HTTP handlers.
type SurveyHandler struct {
	surveys *services.SurveyService
}

// NewSurveyHandler creates a new SurveyHandler.
func NewSurveyHandler(surveys *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveys: surveys}
}

// List returns surveys with search and pagination.
// GET /survey?search&page
func (h *SurveyHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	search := c.Query("search")

	surveys, total, err := h.surveys.ListSurveys(search, params.Page, params.Limit)
	if err != nil {
		respondSurveyError(c, err)
		return
	}

	response.OK(c, dto.ToSurveyListResponse(surveys, params, total))
}

// Create stores a survey with its questions.
// POST /survey/create/:userId
func (h *SurveyHandler) Create(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req dto.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	questions := make([]services.QuestionInput, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = services.QuestionInput{
			Text:    q.Text,
			Type:    q.Type,
			Options: q.Options,
		}
	}

	surveyID, err := h.surveys.CreateSurvey(services.CreateSurveyInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Questions:   questions,
	})
	if err != nil {
		respondSurveyError(c, err)
		return
	}

	response.OKWith(c, "surveyId", surveyID)
}

// Detail returns a survey with its questions.
// GET /survey/:surveyId
func (h *SurveyHandler) Detail(c *gin.Context) {
	surveyID, err := strconv.ParseUint(c.Param("surveyId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid survey id")
		return
	}

	survey, err := h.surveys.GetSurvey(surveyID)
	if err != nil {
		respondSurveyError(c, err)
		return
	}

	response.OK(c, dto.ToSurveyDetailDTO(*survey))
}

// Submit stores an immutable submission.
// POST /survey/submit/:surveyId
func (h *SurveyHandler) Submit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	surveyID, err := strconv.ParseUint(c.Param("surveyId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid survey id")
		return
	}

	var req dto.SurveySubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	answers := make([]services.AnswerInput, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = services.AnswerInput{
			QuestionID: a.QuestionID,
			Value:      a.Value,
		}
	}

	responseID, err := h.surveys.SubmitSurvey(surveyID, userID, answers)
	if err != nil {
		respondSurveyError(c, err)
		return
	}

	response.OKWith(c, "responseId", responseID)
}

func respondSurveyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSurveyNotFound),
		errors.Is(err, services.ErrSurveyTitleRequired),
		errors.Is(err, services.ErrNoQuestions),
		errors.Is(err, services.ErrQuestionNotInSurvey),
		errors.Is(err, services.ErrNoAnswers),
		errors.Is(err, services.ErrUserNotFound):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}
