package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"github.com/gin-gonic/gin"
)

func toNote(n models.JobNote) shared.JobNote {
	return shared.JobNote{
		ID:        n.ID,
		JobID:     n.JobID,
		UserID:    n.UserID,
		NoteText:  n.NoteText,
		CreatedAt: n.CreatedAt,
	}
}

func (h *Handler) register(c *gin.Context) {
	var req shared.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, errBadRequestBody)
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, shared.SuccessResponse{Success: true})
}

func (h *Handler) token(c *gin.Context) {
	var req shared.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, errBadRequestBody)
		return
	}

	tok, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, shared.TokenResponse{
		AccessToken: tok.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tok.ExpiresIn.Seconds()),
	})
}

func (h *Handler) listNotes(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	notes, err := h.notes.List(c.Request.Context(), userID, c.Param("jobId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out := make([]shared.JobNote, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNote(n))
	}
	c.JSON(http.StatusOK, shared.JobNotesResponse{Notes: out})
}

func (h *Handler) createNote(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	var req shared.CreateJobNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, errBadRequestBody)
		return
	}

	note, err := h.notes.Add(c.Request.Context(), userID, c.Param("jobId"), req.NoteText)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.NotesCreated.Inc()
	}

	c.JSON(http.StatusCreated, shared.JobNoteResponse{Note: toNote(*note)})
}

func (h *Handler) deleteNote(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	if err := h.notes.Delete(c.Request.Context(), userID, c.Param("jobId"), c.Param("noteId")); err != nil {
		h.abortWithError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.NotesDeleted.Inc()
	}

	c.JSON(http.StatusOK, shared.SuccessResponse{Success: true})
}

func (h *Handler) uploadURL(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	var req shared.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, errBadRequestBody)
		return
	}

	key, u, err := h.attachments.UploadURL(c.Request.Context(), userID, c.Param("jobId"), req.FileName, req.ContentType)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, shared.UploadURLResponse{Key: key, URL: u})
}

func (h *Handler) downloadURL(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	u, err := h.attachments.DownloadURL(c.Request.Context(), userID, c.Query("key"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, shared.DownloadURLResponse{URL: u})
}
