package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 64 << 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeJSONBody decodes and validates the request body into dest. Unknown
// fields are ignored so older site builds keep working.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty request body")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]any{"body": "JSON inválido"})
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

var requiredMessages = map[string]string{
	"name":    "Nombre es requerido",
	"gift_id": "Regalo es requerido",
	"message": "Mensaje es requerido",
	"phone":   "Teléfono es requerido",
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return "Campo requerido"
	case "min":
		return fmt.Sprintf("Debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("Debe ser como máximo %s", fe.Param())
	case "email":
		return "Correo inválido"
	}
	return "Valor inválido"
}
