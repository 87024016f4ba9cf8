package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/internhub/api/http/presenter"
	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/scoring"
)

// ApplicationHandler - публичная часть: подача заявки и кабинет кандидата.
type ApplicationHandler struct {
	uc        application.UseCase
	maxBytes  int64
	publicURL string
}

func NewApplicationHandler(uc application.UseCase, maxBytes int64, publicURL string) *ApplicationHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20 // 10MB
	}
	return &ApplicationHandler{uc: uc, maxBytes: maxBytes, publicURL: strings.TrimRight(publicURL, "/")}
}

func (h *ApplicationHandler) dashboardURL(id string) string {
	return h.publicURL + "/api/v1/applications/" + id
}

// Submit принимает анкету кандидата с PDF-резюме.
// @Summary     Подать заявку
// @Description Сохраняет заявку и резюме, затем запускает обогащение (разбор резюме, GitHub, скоринг).
// @Tags        Заявки
// @Accept      multipart/form-data
// @Produce     json
// @Param       full_name       formData string true  "ФИО"
// @Param       email           formData string true  "Email"
// @Param       college         formData string true  "ВУЗ"
// @Param       degree          formData string true  "Степень/программа"
// @Param       github          formData string true  "Ссылка на GitHub-профиль"
// @Param       portfolio       formData string false "Портфолио (Kaggle и т.п.)"
// @Param       programming     formData int    true  "Самооценка 0-10"
// @Param       data_structures formData int    true  "Самооценка 0-10"
// @Param       ml_ai           formData int    true  "Самооценка 0-10"
// @Param       web_dev         formData int    true  "Самооценка 0-10"
// @Param       tools           formData int    true  "Самооценка 0-10"
// @Param       resume          formData file   true  "Резюме (PDF)"
// @Success     201 {object} presenter.SubmitResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     500 {object} presenter.ErrorResponse
// @Router      /applications [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	fh, err := c.FormFile("resume")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "resume file is required")
	}
	ratings, err := parseRatings(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	portfolio := c.FormValue("portfolio")
	if portfolio == "" {
		portfolio = c.FormValue("kaggle")
	}
	a, err := h.uc.Submit(c.UserContext(), application.SubmitInput{
		FullName:          c.FormValue("full_name"),
		Email:             c.FormValue("email"),
		College:           c.FormValue("college"),
		Degree:            c.FormValue("degree"),
		GithubURL:         c.FormValue("github"),
		PortfolioURL:      portfolio,
		Ratings:           ratings,
		ResumeFilename:    fh.Filename,
		ResumeContentType: fh.Header.Get(fiber.HeaderContentType),
		Resume:            data,
	})
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, presenter.SubmitResponse{
		ApplicationID: a.ApplicationID,
		Status:        a.Status,
		DashboardURL:  h.dashboardURL(a.ApplicationID),
	})
}

func parseRatings(c *fiber.Ctx) (scoring.Ratings, error) {
	var r scoring.Ratings
	fields := map[string]*int{
		scoring.Programming:    &r.Programming,
		scoring.DataStructures: &r.DataStructures,
		scoring.MLAI:           &r.MLAI,
		scoring.WebDev:         &r.WebDev,
		scoring.Tools:          &r.Tools,
	}
	for _, name := range scoring.Categories {
		v := strings.TrimSpace(c.FormValue(name))
		if v == "" {
			return r, fiber.NewError(http.StatusBadRequest, name+" rating is required")
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return r, fiber.NewError(http.StatusBadRequest, name+" rating must be an integer")
		}
		*fields[name] = n
	}
	return r, nil
}

type trackRequest struct {
	ApplicationID string `json:"applicationId"`
}

// Track проверяет номер заявки.
// @Summary Найти заявку по номеру
// @Tags    Заявки
// @Accept  json
// @Produce json
// @Param   input body trackRequest true "номер заявки"
// @Success 200 {object} presenter.TrackResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/track [post]
func (h *ApplicationHandler) Track(c *fiber.Ctx) error {
	var req trackRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	id := strings.TrimSpace(req.ApplicationID)
	if id == "" {
		return presenter.Error(c, http.StatusBadRequest, "applicationId is required")
	}
	ok, err := h.uc.Exists(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	return presenter.JSON(c, http.StatusOK, presenter.TrackResponse{
		ApplicationID: id,
		DashboardURL:  h.dashboardURL(id),
	})
}

// Get возвращает кабинет кандидата.
// @Summary Статус заявки
// @Tags    Заявки
// @Produce json
// @Param   id path string true "номер заявки"
// @Success 200 {object} presenter.ApplicationView
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, presenter.NewApplicationView(a, false))
}
