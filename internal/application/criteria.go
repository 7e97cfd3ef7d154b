package application

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/example/hearing-board/internal/hearing"
)

// ParseFilterInput validates in and fills blank bounds from defaults.
func ParseFilterInput(in FilterInput, defaults hearing.Criteria) (hearing.Criteria, error) {
	vErr := &ValidationError{}
	c := defaults

	if d, ok := parseDateField(in.DateFrom, "date_from", vErr); ok {
		c.DateFrom = d
	}
	if d, ok := parseDateField(in.DateTo, "date_to", vErr); ok {
		c.DateTo = d
	}
	if t, ok := parseTimeField(in.TimeFrom, "time_from", vErr); ok {
		c.TimeFrom = t
	}
	if t, ok := parseTimeField(in.TimeTo, "time_to", vErr); ok {
		c.TimeTo = hearing.ClockPtr(t)
	}

	if c.DateFrom != (civil.Date{}) && c.DateTo != (civil.Date{}) && c.DateTo.Before(c.DateFrom) {
		vErr.add("date_to", "La fecha final debe ser igual o posterior a la fecha inicial.")
	}
	if c.UpperTime().Before(c.TimeFrom) {
		vErr.add("time_to", "La hora final debe ser igual o posterior a la hora inicial.")
	}

	room, err := parseRoom(in.Room)
	if err != "" {
		vErr.add("room", err)
	} else {
		c.Room = room
	}

	if judge := strings.TrimSpace(in.Judge); judge != "" {
		c.Judge = judge
	}
	// Case and party are substring needles and keep their spaces.
	c.CaseNumber = in.CaseNumber
	c.Party = in.Party

	if vErr.HasErrors() {
		return hearing.Criteria{}, vErr
	}
	return c, nil
}

func parseDateField(value, field string, vErr *ValidationError) (civil.Date, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return civil.Date{}, false
	}
	d, err := civil.ParseDate(value)
	if err != nil {
		vErr.add(field, "Fecha no válida, use el formato AAAA-MM-DD.")
		return civil.Date{}, false
	}
	return d, true
}

func parseTimeField(value, field string, vErr *ValidationError) (civil.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return civil.Time{}, false
	}
	if strings.Count(value, ":") == 1 {
		value += ":00"
	}
	t, err := civil.ParseTime(value)
	if err != nil || !t.IsValid() {
		vErr.add(field, "Hora no válida, use el formato HH:MM.")
		return civil.Time{}, false
	}
	return t, true
}

func parseRoom(value string) (*int, string) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "all", "todas", "todos":
		return nil, ""
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, "La sala debe ser un número entero o \"all\"."
	}
	return &n, ""
}
