package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/models"
	"github.com/kw-muji/team-match-api/internal/repository"
	"github.com/kw-muji/team-match-api/internal/services"
)

type surveyTestEnv struct {
	db      *gorm.DB
	handler *SurveyHandler
	service *services.SurveyService
}

func setupSurveyTestEnv(t *testing.T) surveyTestEnv {
	t.Helper()

	db := setupTestDB(t)
	surveyRepo := repository.NewSurveyRepository(db)
	userRepo := repository.NewUserRepository(db)
	service := services.NewSurveyService(surveyRepo, userRepo)
	handler := NewSurveyHandler(service)

	return surveyTestEnv{db: db, handler: handler, service: service}
}

func surveyRouter(env surveyTestEnv, user *models.User) *gin.Engine {
	r := gin.New()
	group := r.Group("/survey")
	{
		group.GET("", env.handler.List)
		group.GET("/:surveyId", env.handler.Detail)
		group.POST("/create/:userId", env.handler.Create)
		group.POST("/submit/:surveyId", authAs(user), env.handler.Submit)
	}
	return r
}

func createSampleSurvey(t *testing.T, env surveyTestEnv, ownerID uint64, title string) uint64 {
	t.Helper()

	id, err := env.service.CreateSurvey(services.CreateSurveyInput{
		OwnerID:     ownerID,
		Title:       title,
		Description: "team preferences",
		Questions: []services.QuestionInput{
			{Text: "Preferred role?", Type: models.QuestionChoice, Options: []string{"Backend", "Frontend", "Design"}},
			{Text: "Anything else?"},
		},
	})
	require.NoError(t, err)
	return id
}

func TestSurveyHandler_CreateAndDetail(t *testing.T) {
	env := setupSurveyTestEnv(t)
	owner := createTestUser(t, env.db, "owner@kw.ac.kr", "Owner")
	r := surveyRouter(env, owner)

	w := postJSON(t, r, "/survey/create/"+itoa(owner.ID), gin.H{
		"title":       "Team Preferences",
		"description": "pre-matching survey",
		"questions": []gin.H{
			{"text": "Preferred role?", "type": "CHOICE", "options": []string{"Backend", "Frontend"}},
			{"text": "Anything else?"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Code     int    `json:"code"`
		SurveyID uint64 `json:"surveyId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.SurveyID)

	req := httptest.NewRequest(http.MethodGet, "/survey/"+itoa(created.SurveyID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Code int `json:"code"`
		Data struct {
			Title     string `json:"title"`
			OwnerID   uint64 `json:"owner_id"`
			Questions []struct {
				Seq     int    `json:"seq"`
				Text    string `json:"text"`
				Type    string `json:"type"`
				Options []struct {
					Seq  int    `json:"seq"`
					Text string `json:"text"`
				} `json:"options"`
			} `json:"questions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Equal(t, "Team Preferences", detail.Data.Title)
	require.Equal(t, owner.ID, detail.Data.OwnerID)
	require.Len(t, detail.Data.Questions, 2)
	require.Equal(t, 1, detail.Data.Questions[0].Seq)
	require.Equal(t, "CHOICE", detail.Data.Questions[0].Type)
	require.Len(t, detail.Data.Questions[0].Options, 2)
	// Untyped questions default to free text.
	require.Equal(t, "TEXT", detail.Data.Questions[1].Type)
	require.Empty(t, detail.Data.Questions[1].Options)
}

func TestSurveyHandler_Create_Validation(t *testing.T) {
	env := setupSurveyTestEnv(t)
	owner := createTestUser(t, env.db, "owner@kw.ac.kr", "Owner")
	r := surveyRouter(env, owner)

	// Unknown owner.
	w := postJSON(t, r, "/survey/create/9999", gin.H{
		"title":     "Survey",
		"questions": []gin.H{{"text": "Q?"}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// No questions.
	w = postJSON(t, r, "/survey/create/"+itoa(owner.ID), gin.H{
		"title":     "Survey",
		"questions": []gin.H{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Survey{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSurveyHandler_List(t *testing.T) {
	env := setupSurveyTestEnv(t)
	owner := createTestUser(t, env.db, "owner@kw.ac.kr", "Owner")
	r := surveyRouter(env, owner)

	createSampleSurvey(t, env, owner.ID, "Matching Alpha")
	createSampleSurvey(t, env, owner.ID, "Matching Beta")
	createSampleSurvey(t, env, owner.ID, "Retrospective")

	req := httptest.NewRequest(http.MethodGet, "/survey?search=Matching", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Code int `json:"code"`
		Data struct {
			Surveys []struct {
				Title string `json:"title"`
			} `json:"surveys"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Data.Surveys, 2)
	require.EqualValues(t, 2, res.Data.Pagination.Total)
}

func TestSurveyHandler_Submit(t *testing.T) {
	env := setupSurveyTestEnv(t)
	owner := createTestUser(t, env.db, "owner@kw.ac.kr", "Owner")
	respondent := createTestUser(t, env.db, "respondent@kw.ac.kr", "Respondent")
	r := surveyRouter(env, respondent)

	surveyID := createSampleSurvey(t, env, owner.ID, "Team Preferences")

	var questions []models.SurveyQuestion
	require.NoError(t, env.db.Where("survey_id = ?", surveyID).Order("seq").Find(&questions).Error)
	require.Len(t, questions, 2)

	w := postJSON(t, r, "/survey/submit/"+itoa(surveyID), gin.H{
		"answers": []gin.H{
			{"questionId": questions[0].ID, "value": "Backend"},
			{"questionId": questions[1].ID, "value": "Evenings only"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Code       int    `json:"code"`
		ResponseID uint64 `json:"responseId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotZero(t, res.ResponseID)

	var stored models.SurveyResponse
	require.NoError(t, env.db.Preload("Answers").First(&stored, res.ResponseID).Error)
	require.Equal(t, respondent.ID, stored.UserID)
	require.False(t, stored.SubmittedAt.IsZero())
	require.Len(t, stored.Answers, 2)
}

func TestSurveyHandler_Submit_ForeignQuestionRejected(t *testing.T) {
	env := setupSurveyTestEnv(t)
	owner := createTestUser(t, env.db, "owner@kw.ac.kr", "Owner")
	respondent := createTestUser(t, env.db, "respondent@kw.ac.kr", "Respondent")
	r := surveyRouter(env, respondent)

	firstID := createSampleSurvey(t, env, owner.ID, "First")
	secondID := createSampleSurvey(t, env, owner.ID, "Second")

	var foreignQuestion models.SurveyQuestion
	require.NoError(t, env.db.Where("survey_id = ?", secondID).First(&foreignQuestion).Error)

	w := postJSON(t, r, "/survey/submit/"+itoa(firstID), gin.H{
		"answers": []gin.H{
			{"questionId": foreignQuestion.ID, "value": "Backend"},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing persisted.
	var count int64
	require.NoError(t, env.db.Model(&models.SurveyResponse{}).Count(&count).Error)
	require.Zero(t, count)
}
