package form

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags
const (
	NotBlankTag = "notblank"
	PosIntTag   = "posint"
	EmailTag    = "emailaddr"
)

var (
	indexRegex = regexp.MustCompile(`\[(\d+)\]`)
	emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// Messages maps "<path pattern>|<tag>" or "<path pattern>" to a message.
// Numeric path segments are written as "*", e.g. "questions.*.marks|required".
type Messages map[string]string

// Validator wraps validator.Validate and turns its field errors into an
// ErrorMap keyed by dotted paths.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator returns a validator that reports fields by their json names
// and knows the notblank, posint and emailaddr tags.
func NewValidator() *Validator {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(NotBlankTag, notBlankValidation)
	registerCustomTranslation(validate, translator, NotBlankTag, "{0} cannot be blank")
	_ = validate.RegisterValidation(PosIntTag, posIntValidation)
	registerCustomTranslation(validate, translator, PosIntTag, "{0} must be a positive number")
	_ = validate.RegisterValidation(EmailTag, emailValidation)
	registerCustomTranslation(validate, translator, EmailTag, "{0} must be a valid email address")

	return &Validator{validate: validate, translator: translator}
}

// RegisterStructValidation registers struct level rules for the given types.
func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	v.validate.RegisterStructValidation(fn, types...)
}

// RegisterValidation adds a custom tag. text is the english message used
// when no Messages entry matches, with {0} standing for the field.
func (v *Validator) RegisterValidation(tag string, fn validator.Func, text string) {
	_ = v.validate.RegisterValidation(tag, fn)
	registerCustomTranslation(v.validate, v.translator, tag, text)
}

// Check validates s and returns every failure in one pass.
func (v *Validator) Check(s any, msgs Messages) ErrorMap {
	errs := ErrorMap{}
	err := v.validate.Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("form", err.Error())
		return errs
	}
	for _, fe := range verrs {
		path := FieldPath(fe.Namespace())
		errs.Add(path, v.message(path, fe, msgs))
	}
	return errs
}

func (v *Validator) message(path string, fe validator.FieldError, msgs Messages) string {
	pattern := Pattern(path)
	if m, ok := msgs[pattern+"|"+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[pattern]; ok {
		return m
	}
	return fe.Translate(v.translator)
}

// registerCustomTranslation registers the english text of a custom tag.
func registerCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldPath converts a validator namespace such as "Draft.modules[0].topics[1]"
// into the dotted path "modules.0.topics.1".
func FieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexRegex.ReplaceAllString(namespace, ".$1")
}

// Pattern replaces numeric segments of a dotted path with "*".
func Pattern(path string) string {
	parts := strings.Split(path, ".")
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = "*"
		}
	}
	return strings.Join(parts, ".")
}

// IsBlank reports whether s is empty once surrounding whitespace is removed.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParsePositiveInt parses a form input that must hold an integer > 0.
func ParsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Custom Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return !IsBlank(str)
	}
	return false
}

// emailValidation accepts anything shaped like user@host.tld, the same
// loose check the sign-up forms use.
func emailValidation(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func posIntValidation(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		_, ok := ParsePositiveInt(field.String())
		return ok
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() > 0
	}
	return false
}

// IntOrRaw returns s as an int when it holds one and s unchanged otherwise,
// so a bad numeric input still reaches the server and is rejected there.
func IntOrRaw(s string) any {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return s
}
