package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"StartTime":          "Start time",
	"EndTime":            "End time",
	"Mode":               "Interview mode",
	"Venue":              "Venue",
	"StudentIDs":         "Students",
	"MentorID":           "Mentor",
	"InterviewerID":      "Interviewer",
	"DurationMinutes":    "Duration",
	"ParticipantIDs":     "Participants",
	"Title":              "Title",
	"Company":            "Company",
	"Description":        "Description",
	"ResumeURL":          "Resume",
	"StartHour":          "Opening hour",
	"EndHour":            "Closing hour",
	"MinDurationMinutes": "Minimum duration",
	"MaxDurationMinutes": "Maximum duration",
}

// Messages maps validator tags to message templates
var messages = map[string]string{
	"required":    "%s is required",
	"email":       "%s must be a valid email address",
	"oneof":       "%s has an invalid value",
	"min":         "%s is too short",
	"max":         "%s is too long",
	"gt":          "%s must be greater than %s",
	"gte":         "%s must be at least %s",
	"lte":         "%s must be at most %s",
	"gtfield":     "%s must be greater than %s",
	"gtefield":    "%s must not be less than %s",
	"valid_venue": "%s contains invalid characters",
	"future":      "%s must be in the future",
}

// FormatErrors converts validator errors into user-friendly messages
func FormatErrors(err error) []string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		label := FieldLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}

		tmpl, ok := messages[fe.Tag()]
		if !ok {
			out = append(out, fmt.Sprintf("%s is invalid", label))
			continue
		}
		if strings.Count(tmpl, "%s") == 2 {
			out = append(out, fmt.Sprintf(tmpl, label, fe.Param()))
		} else {
			out = append(out, fmt.Sprintf(tmpl, label))
		}
	}
	return out
}
