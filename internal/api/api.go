package api

import (
	"net/http"

	ticketHandler "triage-server/internal/tickets/handler"
	tweetHandler "triage-server/internal/tweets/handler"
	voiceCallHandler "triage-server/internal/voicecall/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	voiceCallHandler voiceCallHandler.Handler
	ticketHandler    ticketHandler.Handler
	tweetHandler     tweetHandler.Handler
	uploadDir        string
}

func New(
	router *gin.RouterGroup,
	voiceCallHandler voiceCallHandler.Handler,
	ticketHandler ticketHandler.Handler,
	tweetHandler tweetHandler.Handler,
	uploadDir string,
) API {
	return API{
		router:           router,
		voiceCallHandler: voiceCallHandler,
		ticketHandler:    ticketHandler,
		tweetHandler:     tweetHandler,
		uploadDir:        uploadDir,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()

	// Telephony webhook and media stream
	a.router.Match([]string{http.MethodGet, http.MethodPost}, "/incoming-call", a.voiceCallHandler.HandleIncomingCall)
	a.router.GET("/media-stream", a.voiceCallHandler.HandleMediaStream)

	// Tweet classification pages
	a.router.GET("/", a.tweetHandler.HandleIndex)
	a.router.POST("/upload", a.tweetHandler.HandleUpload)
	a.router.POST("/process_tweet", a.tweetHandler.HandleProcessTweet)
	a.router.Static("/uploads", a.uploadDir)

	apiGroup := a.router.Group("/api")
	{
		apiGroup.POST("/tweets/classify", a.tweetHandler.HandleClassifyTweet)

		ticketsGroup := apiGroup.Group("/tickets")
		ticketsGroup.GET("", a.ticketHandler.HandleListTickets)
		ticketsGroup.GET("/:ticket_id", a.ticketHandler.HandleGetTicket)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
