package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// NombreMinLength is the minimum length of a catalog name
	NombreMinLength = 3
	// NombreMaxLength is the column width of catalog names
	NombreMaxLength = 150
)

var (
	// nombreRegex accepts letters, Spanish accented letters and whitespace only
	nombreRegex = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]+$`)

	forbiddenChars = []string{"<", ">", "{", "}", "[", "]", "\\", "|"}
)

// Name rule messages
const (
	MsgRequired        = "Este campo es obligatorio."
	MsgNombreVacio     = "El nombre no puede estar vacío."
	MsgCaracteres      = "El nombre contiene caracteres no permitidos."
	MsgNombreCorto     = "El nombre debe tener al menos 3 caracteres."
	MsgNombreInvalido  = "El nombre solo puede contener letras y espacios."
	msgNombreLargoTmpl = "Asegúrese de que este valor tenga como máximo %d caracteres (tiene %d)."
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the catalog name tags
// registered.
func NewValidator() *Validator {
	v := validator.New()
	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("nombre_safe", validateNombreSafe)
	_ = v.RegisterValidation("nombre_alpha", validateNombreAlpha)
	_ = v.RegisterValidation("notblank_trim", validateNotBlank)
	return &Validator{
		validate: v,
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// nombreRules are checked in order and every failure is reported, so a
// client sees all problems with a name at once.
var nombreRules = []struct {
	tag string
	msg string
}{
	{"notblank_trim", MsgNombreVacio},
	{"nombre_safe", MsgCaracteres},
	{fmt.Sprintf("min=%d", NombreMinLength), MsgNombreCorto},
	{"nombre_alpha", MsgNombreInvalido},
}

// NombreErrors runs the catalog name rules on an already trimmed value.
func (v *Validator) NombreErrors(nombre string) []string {
	var errs []string
	if n := utf8.RuneCountInString(nombre); n > NombreMaxLength {
		errs = append(errs, fmt.Sprintf(msgNombreLargoTmpl, NombreMaxLength, n))
	}
	for _, rule := range nombreRules {
		if err := v.validate.Var(nombre, rule.tag); err != nil {
			errs = append(errs, rule.msg)
		}
	}
	return errs
}

func validateNombreSafe(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, c := range forbiddenChars {
		if strings.Contains(value, c) {
			return false
		}
	}
	return true
}

func validateNombreAlpha(fl validator.FieldLevel) bool {
	return nombreRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FormatValidationErrors converts validation errors to a field → messages map
func FormatValidationErrors(err error) map[string][]string {
	errors := make(map[string][]string)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			field := strings.ToLower(e.Field())
			var msg string
			switch e.Tag() {
			case "required":
				msg = MsgRequired
			case "min":
				if isNumeric(e.Kind()) {
					msg = fmt.Sprintf("Asegúrese de que este valor sea mayor o igual a %s.", e.Param())
				} else {
					msg = fmt.Sprintf("Asegúrese de que este valor tenga al menos %s caracteres.", e.Param())
				}
			case "max":
				if isNumeric(e.Kind()) {
					msg = fmt.Sprintf("Asegúrese de que este valor sea menor o igual a %s.", e.Param())
				} else {
					msg = fmt.Sprintf("Asegúrese de que este valor tenga como máximo %s caracteres.", e.Param())
				}
			case "nombre_safe":
				msg = MsgCaracteres
			case "nombre_alpha":
				msg = MsgNombreInvalido
			default:
				msg = fmt.Sprintf("%s no es válido.", e.Field())
			}
			errors[field] = append(errors[field], msg)
		}
	}

	return errors
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// SanitizeString removes null bytes and surrounding whitespace
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.TrimSpace(s)
	return s
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest. A Caser keeps state, so one is built per call.
func TitleCase(s string) string {
	return cases.Title(language.Spanish).String(s)
}
