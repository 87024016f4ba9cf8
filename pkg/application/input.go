package application

import (
	"bytes"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/artem13815/internhub/pkg/document"
	"github.com/artem13815/internhub/pkg/scoring"
)

// SubmitInput is a candidate's form submission.
type SubmitInput struct {
	FullName     string `validate:"required,max=200"`
	Email        string `validate:"required,email,max=254"`
	College      string `validate:"required,max=200"`
	Degree       string `validate:"required,max=200"`
	GithubURL    string `validate:"required,max=500"`
	PortfolioURL string `validate:"omitempty,url,max=500"`
	Ratings      scoring.Ratings

	ResumeFilename    string
	ResumeContentType string
	Resume            []byte
}

const msgOnlyPDF = "Only PDF files are allowed."

var validate = validator.New()

var fieldNames = map[string]string{
	"FullName":     "full_name",
	"Email":        "email",
	"College":      "college",
	"Degree":       "degree",
	"GithubURL":    "github",
	"PortfolioURL": "portfolio",
}

func (in *SubmitInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.College = strings.TrimSpace(in.College)
	in.Degree = strings.TrimSpace(in.Degree)
	in.GithubURL = strings.TrimSpace(in.GithubURL)
	in.PortfolioURL = strings.TrimSpace(in.PortfolioURL)
}

// Validate checks the document type first, then form fields.
func (in SubmitInput) Validate() error {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(in.ResumeContentType, ";", 2)[0]))
	if ct != document.ContentTypePDF {
		return invalid("resume", msgOnlyPDF)
	}
	if len(in.Resume) > 0 && !document.IsPDF(bytes.TrimLeft(in.Resume, "\x00\t\r\n ")) {
		return invalid("resume", msgOnlyPDF)
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			name := fieldNames[fe.Field()]
			switch fe.Tag() {
			case "required":
				return invalid(name, name+" is required")
			case "email":
				return invalid(name, "email is not a valid address")
			case "url":
				return invalid(name, name+" must be a valid URL")
			default:
				return invalid(name, name+" is too long")
			}
		}
		return invalid("", err.Error())
	}
	if err := in.Ratings.Validate(); err != nil {
		return invalid("ratings", err.Error())
	}
	return nil
}
