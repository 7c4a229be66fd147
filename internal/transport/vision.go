package transport

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	apperrors "go-patent-vision/internal/errors"
	"go-patent-vision/pkg/models"

	"github.com/gin-gonic/gin"
)

func newVisionPage() visionPageData {
	return visionPageData{pageData: pageData{
		Title:   "Gemini Image Demo",
		Heading: "Gemini Application",
	}}
}

func (h *Handler) visionPage(c *gin.Context) {
	c.HTML(http.StatusOK, "vision.html", newVisionPage())
}

// visionSubmit is the only HTML route that reaches the provider.
func (h *Handler) visionSubmit(c *gin.Context) {
	data := newVisionPage()

	req, err := h.readGenerationRequest(c)
	data.Prompt = req.Prompt
	if err != nil {
		data.Messages = []models.StatusMessage{statusFor(err)}
		c.HTML(http.StatusOK, "vision.html", data)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.describer.Describe(ctx, req)
	if err != nil {
		data.Messages = []models.StatusMessage{statusFor(err)}
		c.HTML(http.StatusOK, "vision.html", data)
		return
	}

	data.Result = result
	data.Messages = result.Messages
	// Built from bytes that passed image validation.
	data.Preview = template.URL(result.PreviewDataURL)
	c.HTML(http.StatusOK, "vision.html", data)
}

func (h *Handler) describeImageAPI(c *gin.Context) {
	req, err := h.readGenerationRequest(c)
	if err != nil {
		respondError(c, determineStatusCode(err), "invalid upload", err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.describer.Describe(ctx, req)
	if err != nil {
		respondError(c, determineStatusCode(err), "image description failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// readGenerationRequest reads the multipart form. A missing file leaves
// Image nil so the service can reject it.
func (h *Handler) readGenerationRequest(c *gin.Context) (models.GenerationRequest, error) {
	req := models.GenerationRequest{Prompt: c.PostForm("prompt")}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, apperrors.NewValidationError(
				fmt.Sprintf("upload exceeds the %d byte limit", tooLarge.Limit), err)
		}
		return req, apperrors.NewValidationError("could not read upload", err)
	}
	if fh.Size > h.cfg.MaxImageSize {
		return req, apperrors.NewValidationError(
			fmt.Sprintf("image exceeds the %d byte limit", h.cfg.MaxImageSize), nil)
	}

	f, err := fh.Open()
	if err != nil {
		return req, apperrors.NewInternalError("could not open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.cfg.MaxImageSize+1))
	if err != nil {
		return req, apperrors.NewInternalError("could not read upload", err)
	}

	req.Image = &models.UploadedImage{
		Filename: fh.Filename,
		MIMEType: fh.Header.Get("Content-Type"),
		Data:     data,
	}
	return req, nil
}
