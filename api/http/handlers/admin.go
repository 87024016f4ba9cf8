package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/internhub/api/http/presenter"
	"github.com/artem13815/internhub/pkg/application"
)

const defaultPageSize = 50

// AdminHandler - кабинет рекрутера. Все маршруты закрыты JWT.
type AdminHandler struct {
	uc  application.UseCase
	now func() time.Time
}

func NewAdminHandler(uc application.UseCase) *AdminHandler {
	return &AdminHandler{uc: uc, now: time.Now}
}

// List возвращает кандидатов по убыванию балла.
// @Summary     Список кандидатов
// @Tags        Рекрутер
// @Produce     json
// @Param       limit  query int false "размер страницы (1-200)"
// @Param       offset query int false "смещение"
// @Security    BearerAuth
// @Success     200 {object} presenter.ListResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Router      /admin/applications [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultPageSize)
	apps, total, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]presenter.ListItem, 0, len(apps))
	for _, a := range apps {
		items = append(items, presenter.NewListItem(a))
	}
	return presenter.JSON(c, http.StatusOK, presenter.ListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Detail возвращает полную карточку кандидата.
// @Summary  Карточка кандидата
// @Tags     Рекрутер
// @Produce  json
// @Param    id path string true "номер заявки"
// @Security BearerAuth
// @Success  200 {object} presenter.ApplicationView
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /admin/applications/{id} [get]
func (h *AdminHandler) Detail(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, presenter.NewApplicationView(a, true))
}

// Rescore пересчитывает балл по сохранённым данным.
// @Summary  Пересчитать балл
// @Tags     Рекрутер
// @Produce  json
// @Param    id path string true "номер заявки"
// @Security BearerAuth
// @Success  200 {object} presenter.ApplicationView
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /admin/applications/{id}/rescore [post]
func (h *AdminHandler) Rescore(c *fiber.Ctx) error {
	a, err := h.uc.Rescore(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, presenter.NewApplicationView(a, true))
}

// Export отдаёт все заявки одним JSON-файлом.
// @Summary  Выгрузка кандидатов
// @Tags     Рекрутер
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} application.ExportRecord
// @Router   /admin/export [get]
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	records, err := h.uc.Export(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to encode export")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, application.ExportFilename(h.now())))
	return c.Status(http.StatusOK).Send(body)
}
