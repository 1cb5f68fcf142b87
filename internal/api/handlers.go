package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huangsam/maintscore/core"
	"github.com/huangsam/maintscore/internal/iostore"
	"github.com/huangsam/maintscore/schema"
)

// insertFileRequest is the payload for file ingestion endpoints.
type insertFileRequest struct {
	FilePath    string `json:"file_path" binding:"required"`
	Content     string `json:"content" binding:"required"`
	ProjectName string `json:"project_name" binding:"required"`
	SessionID   string `json:"session_id"`
}

// generateKeyRequest is the payload for key creation.
type generateKeyRequest struct {
	UserEmail string `json:"user_email" binding:"required,email"`
	Name      string `json:"name" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerateKey(c *gin.Context) {
	var req generateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := schema.APIKey{
		Key:          uuid.NewString(),
		UserEmail:    req.UserEmail,
		Name:         req.Name,
		CreationDate: time.Now().UTC(),
		Status:       schema.ActiveKey,
	}
	if err := s.store.InsertAPIKey(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create API key"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"api_key": key.Key})
}

// fileFromRequest builds a file record for the authed user, reusing the
// caller's session id when one is given so multi-file uploads group together.
func (s *Server) fileFromRequest(c *gin.Context, req insertFileRequest) (schema.FileRecord, bool) {
	sessionID := uuid.New()
	if req.SessionID != "" {
		parsed, err := uuid.Parse(req.SessionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session_id"})
			return schema.FileRecord{}, false
		}
		sessionID = parsed
	}
	return schema.NewFileRecord(req.FilePath, req.Content, req.ProjectName, authedUser(c), sessionID), true
}

func (s *Server) handleInsertFile(c *gin.Context) {
	var req insertFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, ok := s.fileFromRequest(c, req)
	if !ok {
		return
	}
	if err := s.store.InsertFile(c.Request.Context(), file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to insert file"})
		return
	}
	s.recordProject(c, file.ProjectName)

	c.JSON(http.StatusCreated, gin.H{
		"file_id":    file.FileID,
		"session_id": file.SessionID,
		"loc":        file.LOC,
	})
}

func (s *Server) handleExtractMetrics(c *gin.Context) {
	if s.extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "extraction is not configured"})
		return
	}

	var req insertFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, ok := s.fileFromRequest(c, req)
	if !ok {
		return
	}
	if err := s.store.InsertFile(c.Request.Context(), file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to insert file"})
		return
	}
	s.recordProject(c, file.ProjectName)

	observations, err := s.extractor.ExtractFile(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"file_id":      file.FileID,
		"observations": observations,
	})
}

func (s *Server) handleGetMetrics(c *gin.Context) {
	projectName := c.Query("project")
	if projectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project query parameter is required"})
		return
	}

	series, err := core.ProjectSeries(c.Request.Context(), s.store, s.catalog, authedUser(c), projectName, s.keyFileLimit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

func (s *Server) handleGetUserEmail(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_email": authedUser(c)})
}

func (s *Server) handleGetUserProjects(c *gin.Context) {
	projects, err := s.store.ListProjects(c.Request.Context(), authedUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	if projects == nil {
		projects = []schema.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) handleListAPIKeys(c *gin.Context) {
	keys, err := s.store.ListAPIKeys(c.Request.Context(), authedUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list API keys"})
		return
	}
	if keys == nil {
		keys = []schema.APIKey{}
	}
	c.JSON(http.StatusOK, gin.H{"api_keys": keys})
}

func (s *Server) handleDeleteAPIKey(c *gin.Context) {
	key := c.Param("key")
	if err := s.store.DeleteAPIKey(c.Request.Context(), key); err != nil {
		if errors.Is(err, iostore.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete API key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleFetchRepoStructure(c *gin.Context) {
	if s.host == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "source host is not configured"})
		return
	}

	owner := c.Query("owner")
	repo := c.Query("repo")
	if owner == "" || repo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner and repo query parameters are required"})
		return
	}

	paths, err := s.host.ListFiles(c.Request.Context(), owner, repo, c.Query("branch"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if paths == nil {
		paths = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"files": paths})
}

func (s *Server) handleFetchFileContent(c *gin.Context) {
	if s.host == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "source host is not configured"})
		return
	}

	owner := c.Query("owner")
	repo := c.Query("repo")
	path := c.Query("path")
	if owner == "" || repo == "" || path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner, repo and path query parameters are required"})
		return
	}

	content, err := s.host.GetFileContent(c.Request.Context(), owner, repo, path)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

// recordProject tracks the project for listings; failures only warn.
func (s *Server) recordProject(c *gin.Context, projectName string) {
	project := schema.Project{
		PrimaryID: uuid.New(),
		Name:      projectName,
		UserEmail: authedUser(c),
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	if err := s.store.UpsertProject(c.Request.Context(), project); err != nil {
		_ = c.Error(err)
	}
}
