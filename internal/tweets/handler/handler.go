package handler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"triage-server/internal/apierrors"
	"triage-server/internal/observability"
	"triage-server/internal/tweets/media"
	"triage-server/internal/tweets/processor"
)

//go:embed templates/*.html
var templateFS embed.FS

// Multipart framing around the file itself.
const multipartOverhead = 1 << 20

// TweetProcessor classifies a tweet with optional media
type TweetProcessor interface {
	ProcessTweet(ctx context.Context, text, mediaName string) (processor.Result, error)
}

// MediaLibrary stores and lists uploaded media
type MediaLibrary interface {
	List() []media.File
	Save(name string, r io.Reader) (media.File, error)
	Resolve(name string) (media.File, error)
	MaxBytes() int64
}

type Handler struct {
	processor TweetProcessor
	library   MediaLibrary
	templates *template.Template
	logger    *observability.Logger
}

func New(processor TweetProcessor, library MediaLibrary, logger *observability.Logger) (Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return Handler{}, err
	}
	return Handler{
		processor: processor,
		library:   library,
		templates: tmpl,
		logger:    logger,
	}, nil
}

// ClassifyTweetRequest represents the JSON classification request
type ClassifyTweetRequest struct {
	TweetText    string `json:"tweet_text" binding:"required"`
	SelectedFile string `json:"selected_file"`
}

type indexPage struct {
	Title     string
	Files     []media.File
	TweetText string
	Error     string
	Notice    string
}

type resultPage struct {
	Title      string
	TweetText  string
	Media      *media.File
	Degraded   bool
	ResultJSON string
}

// HandleIndex handles GET /
func (h *Handler) HandleIndex(c *gin.Context) {
	page := h.newIndexPage()
	if name := c.Query("uploaded"); name != "" {
		page.Notice = "Uploaded " + name
	}
	h.render(c, http.StatusOK, "index.html", page)
}

// HandleUpload handles POST /upload
func (h *Handler) HandleUpload(c *gin.Context) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.library.MaxBytes()+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderIndexError(c, media.ErrFileTooLarge, "")
			return
		}
		h.renderIndexError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "No file selected"), "")
		return
	}
	if fileHeader.Size > h.library.MaxBytes() {
		h.renderIndexError(c, media.ErrFileTooLarge, "")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.renderIndexError(c, err, "")
		return
	}
	defer src.Close()

	saved, err := h.library.Save(fileHeader.Filename, src)
	if err != nil {
		h.renderIndexError(c, err, "")
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "media_file", Value: saved.Name},
		observability.Field{Key: "size", Value: saved.Size},
	)
	h.logger.Info(ctx, "Media uploaded")
	c.Redirect(http.StatusSeeOther, "/?uploaded="+url.QueryEscape(saved.Name))
}

// HandleProcessTweet handles POST /process_tweet
func (h *Handler) HandleProcessTweet(c *gin.Context) {
	ctx := c.Request.Context()
	text := c.PostForm("tweet_text")
	selected := c.PostForm("selected_file")

	result, err := h.processor.ProcessTweet(ctx, text, selected)
	if err != nil {
		h.renderIndexError(c, err, text)
		return
	}

	body, err := json.MarshalIndent(result.Classification, "", "  ")
	if err != nil {
		h.renderIndexError(c, err, text)
		return
	}

	page := resultPage{
		Title:      "Classification",
		TweetText:  strings.TrimSpace(text),
		Degraded:   result.Degraded,
		ResultJSON: string(body),
	}
	if selected != "" {
		if f, err := h.library.Resolve(selected); err == nil {
			page.Media = &f
		}
	}
	h.render(c, http.StatusOK, "result.html", page)
}

// HandleClassifyTweet handles POST /api/tweets/classify
func (h *Handler) HandleClassifyTweet(c *gin.Context) {
	ctx := c.Request.Context()

	var req ClassifyTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.processor.ProcessTweet(ctx, req.TweetText, req.SelectedFile)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) newIndexPage() indexPage {
	return indexPage{
		Title: "Disaster tweet triage",
		Files: h.library.List(),
	}
}

// renderIndexError shows the form again with a user-facing message.
func (h *Handler) renderIndexError(c *gin.Context, err error, tweetText string) {
	apiErr := apierrors.MapError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "Tweet form request failed", err)
	}

	page := h.newIndexPage()
	page.Error = apiErr.Message
	page.TweetText = tweetText
	h.render(c, apiErr.StatusCode, "index.html", page)
}

func (h *Handler) render(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: h.templates, Name: name, Data: data})
}
