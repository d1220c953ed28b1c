// Package profile holds the learner's profile and its validation rules.
package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/talkbuddy/internal/scenario"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid profile")

const (
	MinAge = 4
	MaxAge = 16
)

// Avatars are the selectable profile icons.
var Avatars = []string{"🦁", "🐱", "🐶", "🐰", "🦊", "🐼", "🐨", "🦄"}

// Profile describes the learner.
type Profile struct {
	Name            string              `json:"name" validate:"required,max=40"`
	Age             int                 `json:"age" validate:"gte=4,lte=16"`
	LearningLevel   scenario.Difficulty `json:"learning_level" validate:"oneof=beginner intermediate advanced"`
	PreferredThemes []scenario.Theme    `json:"preferred_themes" validate:"min=1,unique,dive,oneof=school friends family emotions playground shopping"`
	Avatar          string              `json:"avatar" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks p and returns an error wrapping ErrInvalid that names every bad field.
func (p Profile) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		return "name is required (at most 40 characters)"
	case "age":
		return fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge)
	case "learning_level":
		return "learning level must be beginner, intermediate or advanced"
	case "preferred_themes":
		return "choose at least one distinct theme"
	case "avatar":
		return "avatar is required"
	}
	if strings.HasPrefix(fe.Field(), "preferred_themes[") {
		return fmt.Sprintf("unknown theme %q", fe.Value())
	}
	return fmt.Sprintf("field %s failed on %q", fe.Field(), fe.Tag())
}

// DisplayName returns the name used in dialogue, falling back to "friend".
func (p Profile) DisplayName() string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}
	return "friend"
}

// CatalogFilter returns the selector filter implied by the profile.
func (p Profile) CatalogFilter() scenario.Filter {
	return scenario.Filter{
		Level:           p.LearningLevel,
		PreferredThemes: p.PreferredThemes,
	}
}
