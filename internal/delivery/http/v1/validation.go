package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/models"
)

// timeNow is the clock of the notpast validator.
var timeNow = time.Now

var registerOnce sync.Once

func registerValidators(logger zerolog.Logger) {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.Error().Msg("binding validator is not go-playground/validator")
			panic(errUnsupportedValidator)
		}
		mustRegisterValidation(logger, v, "duedate", validateDueDate)
		mustRegisterValidation(logger, v, "notpast", validateNotPast)
	})
}

func mustRegisterValidation(logger zerolog.Logger, v *validator.Validate, tag string, fn validator.Func) {
	err := v.RegisterValidation(tag, fn)
	if err != nil {
		logger.Error().
			Err(err).
			Str("tag", tag).
			Msg("failed to register validation")
		panic(err)
	}
}

// trimmer is a request whose string fields are trimmed before validation.
type trimmer interface {
	trim()
}

// bindTrimmedJSON decodes the body into req, trims it and only then runs
// the binding rules, so padding never counts towards a length rule.
func bindTrimmedJSON(c *gin.Context, req trimmer) error {
	if c.Request == nil || c.Request.Body == nil {
		return errInvalidRequestBody
	}
	err := json.NewDecoder(c.Request.Body).Decode(req)
	if err != nil {
		return err
	}
	req.trim()
	return binding.Validator.ValidateStruct(req)
}

func validateDueDate(fl validator.FieldLevel) bool {
	_, err := models.ParseDueDate(fl.Field().String())
	return err == nil
}

// validateNotPast accepts due dates from the start of the current UTC
// day onwards.
func validateNotPast(fl validator.FieldLevel) bool {
	due, err := models.ParseDueDate(fl.Field().String())
	if err != nil {
		return false
	}
	now := timeNow().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !due.Before(today)
}

var fieldMessages = map[string]string{
	"required": "%s is required",
	"min":      "%s must be at least %s characters long",
	"max":      "%s must be no longer than %s characters",
	"oneof":    "%s must be one of: %s",
	"duedate":  "%s must be a date (YYYY-MM-DD) or an RFC 3339 timestamp",
	"notpast":  "%s cannot be in the past",
}

// validationMessage renders bind errors for the response body.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errInvalidRequestBody.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		field := lowerFirst(e.Field())
		format, ok := fieldMessages[e.Tag()]
		if !ok {
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
			continue
		}
		if strings.Count(format, "%s") == 2 {
			msgs = append(msgs, fmt.Sprintf(format, field, e.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf(format, field))
		}
	}
	return strings.Join(msgs, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
