package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for a blank tag name, so panicking here is a
	// programming error, not a runtime condition.
	if err := v.RegisterValidation("taskstatus", enumValidator(Statuses)); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("taskpriority", enumValidator(Priorities)); err != nil {
		panic(err)
	}
	return v
}

func enumValidator(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return IsAllowedValue(allowed, fl.Field().String())
	}
}

// IsAllowedValue reports whether value matches one of the allowed set,
// ignoring case and treating underscores as spaces ("in_progress" matches
// "In Progress").
func IsAllowedValue(allowed []string, value string) bool {
	normalized := strings.ReplaceAll(value, "_", " ")
	for _, a := range allowed {
		if strings.EqualFold(a, normalized) {
			return true
		}
	}
	return false
}

// ValidateTask returns the list of constraint violations as human-readable
// messages, empty when the task is valid.
func ValidateTask(t *Task) []string {
	return translate(validate.Struct(t))
}

// ValidateComment returns the list of constraint violations as
// human-readable messages, empty when the comment is valid.
func ValidateComment(c *Comment) []string {
	return translate(validate.Struct(c))
}

// fieldLabels maps struct field names to the labels used in validation
// messages where the default spacing of the field name is not wanted.
var fieldLabels = map[string]string{
	"UserName":            "User name",
	"DescriptionRichText": "Description rich text",
}

func translate(err error) []string {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, message(fe))
	}
	return messages
}

func message(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s can't be blank", label)
	case "max":
		return fmt.Sprintf("%s is too long (maximum is %s characters)", label, fe.Param())
	case "taskstatus", "taskpriority":
		return fmt.Sprintf("%s is not included in the list", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// MsgNumberTaken is appended by stores when the business key collides with
// an active task; the wording matches the other validation messages.
const MsgNumberTaken = "Number has already been taken"
