package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/username/honorary-calc/internal/calendar"
	"github.com/username/honorary-calc/internal/fare"
	"github.com/username/honorary-calc/pkg/dateutil"
)

// HolidayLister lists the named holidays of a year
type HolidayLister interface {
	Holidays(year int) ([]calendar.Holiday, error)
}

type dayResponse struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	BusinessDay bool   `json:"business_day"`
	Note        string `json:"note,omitempty"`
}

type holidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type holidaysResponse struct {
	Year     int               `json:"year"`
	Holidays []holidayResponse `json:"holidays"`
}

// Handler serves the honorary and calendar endpoints
type Handler struct {
	engine   *fare.Engine
	calendar calendar.Calendar
	holidays HolidayLister
	fares    fare.Fares
	logger   *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(engine *fare.Engine, cal calendar.Calendar, holidays HolidayLister, fares fare.Fares, logger *zap.Logger) *Handler {
	return &Handler{
		engine:   engine,
		calendar: cal,
		holidays: holidays,
		fares:    fares,
		logger:   logger,
	}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Honorary computes the fee for ?start=...&end=...[&first_hour_bonus=true]
func (h *Handler) Honorary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, err := dateutil.ParseInstant(query.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid start: %v", err))
		return
	}
	end, err := dateutil.ParseInstant(query.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid end: %v", err))
		return
	}

	firstHourBonus := false
	if raw := query.Get("first_hour_bonus"); raw != "" {
		firstHourBonus, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "first_hour_bonus must be true or false")
			return
		}
	}

	result, err := h.engine.Compute(start, end, h.fares, firstHourBonus)
	if err != nil {
		h.writeComputeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Day returns the classification of /v1/days/{date}
func (h *Handler) Day(w http.ResponseWriter, r *http.Request) {
	date, err := dateutil.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := h.calendar.GetDayInfo(date)
	if err != nil {
		h.writeComputeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dayResponse{
		Date:        info.Date.Format(dateutil.DateLayout),
		Type:        info.Type.String(),
		BusinessDay: info.IsBusinessDay,
		Note:        info.Note,
	})
}

// Holidays lists the named holidays of /v1/holidays/{year}
func (h *Handler) Holidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	holidays, err := h.holidays.Holidays(year)
	if err != nil {
		h.writeComputeError(w, err)
		return
	}

	resp := holidaysResponse{Year: year, Holidays: make([]holidayResponse, 0, len(holidays))}
	for _, holiday := range holidays {
		resp.Holidays = append(resp.Holidays, holidayResponse{
			Date: holiday.Date.Format(dateutil.DateLayout),
			Name: holiday.Name,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeComputeError(w http.ResponseWriter, err error) {
	var (
		rangeErr    *fare.InvalidRangeError
		spanErr     *fare.UnsupportedSpanError
		instantErr  *fare.InvalidInstantError
		outRangeErr *calendar.OutOfRangeError
	)

	switch {
	case errors.As(err, &rangeErr), errors.As(err, &spanErr), errors.As(err, &instantErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &outRangeErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("Request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
