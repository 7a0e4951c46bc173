// Package validation checks portal forms before anything is sent to the
// EDUCA API. Failures carry one Spanish message per JSON field.
package validation

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

const (
	minAge = 5
	maxAge = 120
)

var (
	clockRegex      = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	personNameRegex = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)
	phoneRegex      = regexp.MustCompile(`^\+\d{1,3}(424|412|414|416|426)\d{7}$`)
)

// Option configures a Validator.
type Option func(*Validator)

// WithClock replaces the clock used for age checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// Validator wraps go-playground/validator with the portal's custom tags and
// messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
	now        func() time.Time
}

// New builds a validator with every custom tag registered.
func New(opts ...Option) *Validator {
	v := &Validator{validate: validator.New(), now: time.Now}
	for _, opt := range opts {
		opt(v)
	}

	locale := es.New()
	uni := ut.New(locale, locale)
	v.translator, _ = uni.GetTranslator("es")
	_ = es_translations.RegisterDefaultTranslations(v.validate, v.translator)

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.validate.RegisterValidation("clock", matches(clockRegex))
	_ = v.validate.RegisterValidation("person_name", matches(personNameRegex))
	_ = v.validate.RegisterValidation("phone", matches(phoneRegex))
	_ = v.validate.RegisterValidation("bank", validBank)
	_ = v.validate.RegisterValidation("positive_amount", positiveAmount)
	_ = v.validate.RegisterValidation("calendar_date", calendarDate)
	_ = v.validate.RegisterValidation("iso_date", isoDate)
	_ = v.validate.RegisterValidation("weekday", validWeekday)
	_ = v.validate.RegisterValidation("age_range", v.ageRange)
	v.validate.RegisterStructValidation(scheduleOrder, dto.ScheduleForm{})

	noop := func(ut.Translator) error { return nil }
	for tag := range tagMessages {
		_ = v.validate.RegisterTranslation(tag, v.translator, noop, translateCustom)
	}
	return v
}

// Struct validates form and returns a validation error listing every
// invalid field, or nil.
func (v *Validator) Struct(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = v.message(fe)
	}
	return appErrors.Validation(fields)
}

// Age returns the whole years between birth and the validator clock.
func (v *Validator) Age(birth time.Time) int {
	return ageAt(birth, v.now())
}

func (v *Validator) message(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		form := ns[:i]
		if msg, ok := formMessages[form+"."+fe.Field()+"."+fe.Tag()]; ok {
			return msg
		}
	}
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Translate(v.translator)
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	return tagMessages[fe.Tag()]
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func validBank(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, bank := range models.Banks {
		if bank == value {
			return true
		}
	}
	return false
}

func positiveAmount(fl validator.FieldLevel) bool {
	amount, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	return amount > 0
}

func calendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

func validWeekday(fl validator.FieldLevel) bool {
	return models.Weekday(fl.Field().String()).Valid()
}

// ageRange leaves malformed dates to calendar_date.
func (v *Validator) ageRange(fl validator.FieldLevel) bool {
	birth, err := time.Parse(time.DateOnly, fl.Field().String())
	if err != nil {
		return true
	}
	age := v.Age(birth)
	return age >= minAge && age <= maxAge
}

// ageAt counts full years, one less while the birthday has not yet come
// around in the current year.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// scheduleOrder enforces start date <= end date and start time < end time.
func scheduleOrder(sl validator.StructLevel) {
	form, ok := sl.Current().Interface().(dto.ScheduleForm)
	if !ok {
		return
	}
	start, errStart := models.ParseDate(form.FechaInicio)
	end, errEnd := models.ParseDate(form.FechaFin)
	if errStart == nil && errEnd == nil && start.After(end) {
		sl.ReportError(form.FechaFin, "fechaFin", "FechaFin", "date_order", "")
	}
	from, okFrom := models.ClockMinutes(form.HoraInicio)
	to, okTo := models.ClockMinutes(form.HoraFin)
	if okFrom && okTo && from >= to {
		sl.ReportError(form.HoraFin, "horaFin", "HoraFin", "time_order", "")
	}
}
