package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kw-muji/team-match-api/internal/dto"
	"github.com/kw-muji/team-match-api/internal/middleware"
	"github.com/kw-muji/team-match-api/internal/response"
	"github.com/kw-muji/team-match-api/internal/services"
	"github.com/kw-muji/team-match-api/internal/utils"
)

const deadlineLayout = "2006-01-02"

// TeamHandler coordinates project-related HTTP handlers.
type TeamHandler struct {
	teams *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teams *services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// Register creates a project with its CREATOR participation.
// POST /team/register (multipart: name, description, deadlineAt, image)
func (h *TeamHandler) Register(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	deadline, err := time.Parse(deadlineLayout, c.PostForm("deadlineAt"))
	if err != nil {
		response.BadRequest(c, "deadlineAt must be formatted as YYYY-MM-DD")
		return
	}

	input := services.RegisterProjectInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		DeadlineAt:  deadline,
		CreatorID:   userID,
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, image, err := openUpload(fileHeader)
		if err != nil {
			response.InternalError(c, "")
			return
		}
		defer file.Close()
		input.Image = image
	}

	if _, err := h.teams.RegisterProject(c.Request.Context(), input); err != nil {
		respondTeamError(c, err)
		return
	}

	response.OK(c, true)
}

// Detail returns full project fields plus the requester's role.
// GET /team/:projectId
func (h *TeamHandler) Detail(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, role, err := h.teams.GetProjectDetail(projectID, userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	response.OK(c, dto.ToProjectDetailDTO(*project, role, h.teams.ImageURL(project.Image)))
}

// List returns ongoing projects with search and pagination.
// GET /team?page&search
func (h *TeamHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	search := c.Query("search")

	projects, total, err := h.teams.ListProjects(search, params.Page, params.Limit)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	response.OK(c, dto.ToProjectListResponse(projects, params, total))
}

// MyProjects returns the requester's created projects with applicants.
// GET /team/my
func (h *TeamHandler) MyProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	projects, err := h.teams.MyProjects(userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	items := make([]dto.MyProjectDTO, len(projects))
	for i, p := range projects {
		items[i] = dto.ToMyProjectDTO(p)
	}
	response.OK(c, items)
}

// ResumeList returns the requester's resumes for the apply screen.
// GET /team/apply
func (h *TeamHandler) ResumeList(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	resumes, err := h.teams.ListResumes(userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	response.OK(c, dto.ToResumeListResponse(resumes))
}

// Apply creates an APPLICANT participation.
// POST /team/apply {projectId, resumeId}
func (h *TeamHandler) Apply(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	_, err := h.teams.Apply(services.ApplyInput{
		UserID:    userID,
		ProjectID: req.ProjectID,
		ResumeID:  req.ResumeID,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	response.OK(c, true)
}

// Update applies a creator-only partial update.
// PATCH /team (multipart or JSON)
func (h *TeamHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		ProjectID:   req.ID,
		ActorID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Start:       req.Start,
		ProjectType: req.ProjectType,
		DeleteImage: req.DeleteImage,
	}

	if req.DeadlineAt != nil {
		deadline, err := time.Parse(deadlineLayout, *req.DeadlineAt)
		if err != nil {
			response.BadRequest(c, "deadlineAt must be formatted as YYYY-MM-DD")
			return
		}
		input.DeadlineAt = &deadline
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, image, err := openUpload(fileHeader)
		if err != nil {
			response.InternalError(c, "")
			return
		}
		defer file.Close()
		input.Image = image
	}

	project, err := h.teams.UpdateProject(c.Request.Context(), input)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	response.OK(c, dto.ToProjectDetailDTO(*project, nil, h.teams.ImageURL(project.Image)))
}

// Delete removes a project and everything it owns.
// DELETE /team/:projectId
func (h *TeamHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.teams.DeleteProject(c.Request.Context(), projectID, userID); err != nil {
		respondTeamError(c, err)
		return
	}

	response.OK(c, true)
}

func openUpload(fileHeader *multipart.FileHeader) (multipart.File, *services.FileInput, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	return file, &services.FileInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	}, nil
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrResumeNotFound),
		errors.Is(err, services.ErrNotResumeOwner),
		errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrNotProjectCreator):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}
