package listreminders

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	c "github.com/Ebbabire/call-reminder/internal/core/domain/common"
	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
	service "github.com/Ebbabire/call-reminder/internal/core/services/list_reminders"
	"github.com/Ebbabire/call-reminder/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Reminders  []response.Reminder `json:"reminders"`
	TotalCount uint                `json:"total_count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawStatusIn := r.URL.Query().Get("status_in")
	statusIn, err := parseStatusIn(rawStatusIn)
	if err != nil {
		response.RenderError(rw, "invalid status_in query parameter", http.StatusBadRequest)
		return
	}

	search := c.Optional[string]{}
	if rawSearch := r.URL.Query().Get("search"); rawSearch != "" {
		search = c.NewOptional(rawSearch, true)
	}

	rawOrderBy := r.URL.Query().Get("order_by")
	orderBy, err := parseOrderBy(rawOrderBy)
	if err != nil {
		response.RenderError(rw, "invalid order_by query parameter", http.StatusBadRequest)
		return
	}

	rawLimit := r.URL.Query().Get("limit")
	limit, err := parseLimit(rawLimit)
	if err != nil {
		response.RenderError(rw, "invalid limit query parameter", http.StatusBadRequest)
		return
	}

	rawOffset := r.URL.Query().Get("offset")
	offset, err := parseOffset(rawOffset)
	if err != nil {
		response.RenderError(rw, "invalid offset query parameter", http.StatusBadRequest)
		return
	}

	input := service.Input{
		StatusIn:    statusIn,
		TitleSearch: search,
		OrderBy:     orderBy,
		Limit:       limit,
		Offset:      offset,
	}
	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	respReminders := make([]response.Reminder, 0, len(result.Reminders))
	for _, rem := range result.Reminders {
		respReminder := response.Reminder{}
		respReminder.FromDomainType(rem)
		respReminders = append(respReminders, respReminder)
	}
	response.Render(rw, Result{Reminders: respReminders, TotalCount: result.TotalCount}, http.StatusOK)
}

func parseStatusIn(raw string) (result c.Optional[[]reminder.Status], err error) {
	if raw == "" {
		return result, nil
	}
	rawStatuses := strings.SplitN(raw, ",", 4)
	statuses := make([]reminder.Status, 0, len(rawStatuses))
	for _, rawStatus := range rawStatuses {
		status, err := reminder.ParseStatus(rawStatus)
		if err != nil {
			return result, err
		}
		statuses = append(statuses, status)
	}

	result.IsPresent = true
	result.Value = statuses
	return result, err
}

func parseOrderBy(raw string) (orderBy reminder.OrderBy, err error) {
	if raw == "" {
		return orderBy, nil
	}
	orderBy, err = reminder.ParseOrderBy(raw)
	return orderBy, err
}

func parseLimit(raw string) (limit c.Optional[uint], err error) {
	if raw == "" {
		return limit, nil
	}
	l, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return limit, err
	}
	if l > uint64(service.DEFAULT_LIMIT) {
		return limit, fmt.Errorf("limit must be less than or equal to %v", service.DEFAULT_LIMIT)
	}
	limit.IsPresent = true
	limit.Value = uint(l)
	return limit, nil
}

func parseOffset(raw string) (offset uint, err error) {
	if raw == "" {
		return offset, nil
	}
	o, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return offset, err
	}
	return uint(o), nil
}
