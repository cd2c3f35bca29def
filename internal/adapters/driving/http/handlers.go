package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// IngestRequest is the body for document ingestion and preview
// @Description Document ingestion request
type IngestRequest struct {
	Name       string                     `json:"name" example:"invoice_jan.pdf"`
	MimeType   string                     `json:"mime_type" example:"application/pdf"`
	RawText    string                     `json:"raw_text"`
	Resolution domain.DuplicateResolution `json:"resolution,omitempty" example:"keep_both"`
	Async      bool                       `json:"async,omitempty"`
}

// TaskResponse is returned for async ingestion
// @Description Queued task reference
type TaskResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status" example:"pending"`
}

// ListDocumentsResponse wraps a documents page with the corpus total
type ListDocumentsResponse struct {
	Documents []*domain.Document `json:"documents"`
	Total     int                `json:"total"`
}

// QueryRequest is the body for search and chat
type QueryRequest struct {
	Query string `json:"query" example:"receipts from last month"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and queue connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backend is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "task queue unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "email and password are required")
		case domain.ErrInvalidCredentials:
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSetup godoc
// @Summary      Initial setup
// @Description  Create the instance owner. This endpoint can only be called once when no users exist.
// @Tags         Setup
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SetupRequest  true  "Owner details"
// @Success      201      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      403      {object}  ErrorResponse  "Setup already complete"
// @Failure      500      {object}  ErrorResponse  "Setup failed"
// @Router       /setup [post]
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req domain.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := s.authService.Setup(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "email and password are required")
		case domain.ErrAlreadyExists:
			writeError(w, http.StatusForbidden, "setup already complete")
		default:
			writeError(w, http.StatusInternalServerError, "setup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, summary)
}

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's identity
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AuthContext
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, authCtx)
}

// Document endpoints

// handleListDocuments godoc
// @Summary      List documents
// @Description  List stored documents in insertion order with pagination
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 50)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  ListDocumentsResponse
// @Router       /documents [get]
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	docs, err := s.docService.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	total, err := s.docService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count documents")
		return
	}

	writeJSON(w, http.StatusOK, ListDocumentsResponse{Documents: docs, Total: total})
}

// handleGetDocument godoc
// @Summary      Get a document
// @Description  Get a document by ID including extracted fields and tags
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.Document
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Router       /documents/{id} [get]
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleIngestDocument godoc
// @Summary      Ingest a document
// @Description  Run the intelligence pipeline over an upload and store it. Set async to queue a background task instead.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      IngestRequest  true  "Document content"
// @Success      201      {object}  domain.Document
// @Success      202      {object}  TaskResponse  "Queued for background processing"
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      409      {object}  ErrorResponse  "Skipped as duplicate"
// @Router       /documents [post]
func (s *Server) handleIngestDocument(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := domain.IngestInput{Name: req.Name, MimeType: req.MimeType, RawText: req.RawText}

	if req.Async {
		if s.taskQueue == nil {
			writeError(w, http.StatusServiceUnavailable, "background processing unavailable")
			return
		}
		task, err := domain.NewIngestTask(input, req.Resolution)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create task")
			return
		}
		if err := s.taskQueue.Enqueue(r.Context(), task); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to queue task")
			return
		}
		writeJSON(w, http.StatusAccepted, TaskResponse{TaskID: task.ID, Status: string(task.Status)})
		return
	}

	doc, err := s.ingestionService.Ingest(r.Context(), input, req.Resolution)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "document name is required")
		case domain.ErrDuplicateSkipped:
			writeError(w, http.StatusConflict, "skipped as duplicate")
		default:
			writeError(w, http.StatusInternalServerError, "ingestion failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// handlePreviewDocument godoc
// @Summary      Preview ingestion
// @Description  Run extraction, classification and duplicate detection without storing anything
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      IngestRequest  true  "Document content"
// @Success      200      {object}  domain.IngestPreview
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Router       /documents/preview [post]
func (s *Server) handlePreviewDocument(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	preview, err := s.ingestionService.Preview(r.Context(), domain.IngestInput{
		Name:     req.Name,
		MimeType: req.MimeType,
		RawText:  req.RawText,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			writeError(w, http.StatusBadRequest, "document name is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "preview failed")
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

// handleRenameDocument godoc
// @Summary      Rename a document
// @Description  Update a document's display name
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Document ID"
// @Param        request  body      object{name=string}  true  "New name"
// @Success      200      {object}  domain.Document
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      404      {object}  ErrorResponse  "Document not found"
// @Router       /documents/{id} [put]
func (s *Server) handleRenameDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := s.docService.Rename(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleSetDocumentTags godoc
// @Summary      Set document tags
// @Description  Replace a document's tags with a user-chosen set
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Document ID"
// @Param        request  body      object{tags=[]string}  true  "New tags"
// @Success      200      {object}  domain.Document
// @Failure      400      {object}  ErrorResponse  "Unknown tag"
// @Failure      404      {object}  ErrorResponse  "Document not found"
// @Router       /documents/{id}/tags [put]
func (s *Server) handleSetDocumentTags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tags []domain.Tag `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := s.docService.SetTags(r.Context(), r.PathValue("id"), req.Tags)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleReextractDocument godoc
// @Summary      Re-extract a document
// @Description  Re-run extraction and classification on a stored document
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.Document
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Router       /documents/{id}/reextract [post]
func (s *Server) handleReextractDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.ingestionService.Reextract(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleDeleteDocument godoc
// @Summary      Delete a document
// @Description  Remove a document from the corpus
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Router       /documents/{id} [delete]
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.docService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleListTags godoc
// @Summary      List tags
// @Description  Returns the tag vocabulary
// @Tags         Tags
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.Tag
// @Router       /tags [get]
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]domain.Tag{"tags": domain.AllTags()})
}

// Search endpoints

// handleSearch godoc
// @Summary      Search documents
// @Description  Answer a free-text query over the stored corpus
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      QueryRequest  true  "Search query"
// @Success      200      {object}  domain.SearchResult
// @Failure      400      {object}  ErrorResponse  "Empty query"
// @Router       /search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.searchService.Search(r.Context(), req.Query)
	if err != nil {
		if err == domain.ErrInvalidInput {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleChat godoc
// @Summary      Ask about documents
// @Description  Answer a query as a chat response with reference snippets
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      QueryRequest  true  "Question"
// @Success      200      {object}  domain.ChatAnswer
// @Failure      400      {object}  ErrorResponse  "Empty query"
// @Router       /chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.searchService.Ask(r.Context(), req.Query)
	if err != nil {
		if err == domain.ErrInvalidInput {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "chat failed")
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// Helper functions

func writeDocumentError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidInput:
		writeError(w, http.StatusBadRequest, "invalid input")
	case domain.ErrNotFound:
		writeError(w, http.StatusNotFound, "document not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
