package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Modality tells whether a section meets in person or online.
type Modality string

const (
	ModalityInPerson Modality = "Presencial"
	ModalityVirtual  Modality = "Virtual"
)

// Weekday is a repetition day as the API spells it.
type Weekday string

const (
	Monday    Weekday = "lunes"
	Tuesday   Weekday = "martes"
	Wednesday Weekday = "miercoles"
	Thursday  Weekday = "jueves"
	Friday    Weekday = "viernes"
	Saturday  Weekday = "sabado"
	Sunday    Weekday = "domingo"
)

// Weekdays lists the repetition days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of the seven weekdays.
func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// Schedule is the recurrence attached to a section.
type Schedule struct {
	ID             ID        `json:"id"`
	FechaInicio    string    `json:"fechaInicio"`
	FechaFin       string    `json:"fechaFin"`
	HoraInicio     string    `json:"horaInicio"`
	HoraFin        string    `json:"horaFin"`
	Tipo           Modality  `json:"tipo,omitempty"`
	DiasRepeticion []Weekday `json:"diasRepeticion"`
}

// UnmarshalJSON also accepts the fechaFinal/horaFinal and dias spellings
// used by some endpoints.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	type plain Schedule
	var aux struct {
		plain
		FechaFinal string    `json:"fechaFinal"`
		HoraFinal  string    `json:"horaFinal"`
		Dias       []Weekday `json:"dias"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Schedule(aux.plain)
	if s.FechaFin == "" {
		s.FechaFin = aux.FechaFinal
	}
	if s.HoraFin == "" {
		s.HoraFin = aux.HoraFinal
	}
	if len(s.DiasRepeticion) == 0 && len(aux.Dias) > 0 {
		s.DiasRepeticion = make([]Weekday, 0, len(aux.Dias))
		for _, d := range aux.Dias {
			s.DiasRepeticion = append(s.DiasRepeticion, Weekday(strings.ToLower(string(d))))
		}
	}
	return nil
}

// Valid checks date ordering, time ordering and the repetition days.
func (s Schedule) Valid() bool {
	start, err := ParseDate(s.FechaInicio)
	if err != nil {
		return false
	}
	end, err := ParseDate(s.FechaFin)
	if err != nil || start.After(end) {
		return false
	}
	from, ok := ClockMinutes(s.HoraInicio)
	if !ok {
		return false
	}
	to, ok := ClockMinutes(s.HoraFin)
	if !ok || from >= to {
		return false
	}
	if len(s.DiasRepeticion) == 0 {
		return false
	}
	for _, d := range s.DiasRepeticion {
		if !d.Valid() {
			return false
		}
	}
	return true
}

// ParseDate reads a calendar date in YYYY-MM-DD form or a full RFC 3339
// timestamp, keeping only the date part.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ClockMinutes converts a 24-hour HH:MM string into minutes after midnight.
func ClockMinutes(raw string) (int, bool) {
	if len(raw) != 5 || raw[2] != ':' {
		return 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	h := int(raw[0]-'0')*10 + int(raw[1]-'0')
	m := int(raw[3]-'0')*10 + int(raw[4]-'0')
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
