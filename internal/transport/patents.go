package transport

import (
	"net/http"

	"go-patent-vision/internal/logger"
	"go-patent-vision/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{Title: "Patent & Image Tools", Heading: "Patent & Image Tools"})
}

func newPatentPage() patentPageData {
	return patentPageData{pageData: pageData{
		Title:   "Patent Search and Information",
		Heading: "Find a Patent and Get Basic Info",
	}}
}

func (h *Handler) patentPage(c *gin.Context) {
	c.HTML(http.StatusOK, "patents.html", newPatentPage())
}

func (h *Handler) patentSubmit(c *gin.Context) {
	data := newPatentPage()
	data.PatentID = c.PostForm("patent_id")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.lookup.Lookup(ctx, data.PatentID)
	if err != nil {
		data.Messages = []models.StatusMessage{statusFor(err)}
		c.HTML(http.StatusOK, "patents.html", data)
		return
	}

	data.Result = result
	data.Messages = result.Messages
	c.HTML(http.StatusOK, "patents.html", data)
}

func (h *Handler) lookupPatentAPI(c *gin.Context) {
	var req models.PatentLookupRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.lookup.Lookup(ctx, req.PatentID)
	if err != nil {
		respondError(c, determineStatusCode(err), "patent lookup failed", err)
		return
	}

	logger.WithFields(logrus.Fields{
		"patent_id": result.PatentID,
		"status":    result.Status,
		"url":       result.URL,
	}).Info("Patent lookup served")

	c.JSON(http.StatusOK, result)
}
