package transport

import (
	"html/template"

	apperrors "go-patent-vision/internal/errors"
	"go-patent-vision/pkg/models"
)

var templateFuncs = template.FuncMap{
	"field": func(v *string) string {
		if v == nil {
			return "Not available"
		}
		return *v
	},
}

type pageData struct {
	Title    string
	Heading  string
	Messages []models.StatusMessage
}

type patentPageData struct {
	pageData
	PatentID string
	Result   *models.LookupResult
}

type visionPageData struct {
	pageData
	Prompt  string
	Preview template.URL
	Result  *models.DescriptionResult
}

// statusFor turns a pipeline error into a status line: invalid input is a
// warning, everything else an error.
func statusFor(err error) models.StatusMessage {
	appErr, ok := apperrors.As(err)
	if !ok {
		return models.Error(err.Error())
	}
	if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		return models.Warning(appErr.Message)
	}
	if appErr.Cause != nil {
		return models.Error(appErr.Message + ": " + appErr.Cause.Error())
	}
	return models.Error(appErr.Message)
}
