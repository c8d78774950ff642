package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned by Struct when one or more fields fail their constraints.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Messenger lets a request type replace the default message for a field,
// keyed by the field's JSON name.
type Messenger interface {
	ValidationMessages() map[string]string
}

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("password_complexity", func(fl validator.FieldLevel) bool {
		return PasswordComplex(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}
	if err := v.RegisterTranslation("password_complexity", trans,
		func(ut ut.Translator) error {
			return ut.Add("password_complexity", "{0} must be 8 to 72 characters and include a lowercase letter, an uppercase letter, a number, and a special character", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("password_complexity", fe.Field())
			return t
		},
	); err != nil {
		return nil, err
	}

	return &Validator{validate: v, trans: trans}, nil
}

// Struct checks s against its `validate` tags and returns Errors on failure.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var overrides map[string]string
	if m, ok := s.(Messenger); ok {
		overrides = m.ValidationMessages()
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := overrides[fe.Field()]
		if !ok {
			msg = fe.Translate(v.trans)
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

var (
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,72}$`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSpecial = regexp.MustCompile(`[@$!%*?&]`)
)

// PasswordComplex reports whether password is 8 to 72 characters drawn from
// letters, digits and @$!%*?&, with at least one of each class. 72 bytes is
// the most bcrypt will hash.
func PasswordComplex(password string) bool {
	return passwordCharset.MatchString(password) &&
		passwordLower.MatchString(password) &&
		passwordUpper.MatchString(password) &&
		passwordDigit.MatchString(password) &&
		passwordSpecial.MatchString(password)
}
