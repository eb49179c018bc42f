package validation

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yoockh/orbitmatch/internal/matching"
)

// ValidateTimezoneRange accepts "<offset>..<offset>" with min <= max.
func ValidateTimezoneRange(fl validator.FieldLevel) bool {
	_, err := matching.ParseTimezoneRange(fl.Field().String())
	return err == nil
}

// RegisterMatchValidators registers the custom rules used by request models.
func RegisterMatchValidators(v *validator.Validate) error {
	return v.RegisterValidation("tzrange", ValidateTimezoneRange)
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterWithGin installs the rules on gin's binding engine once per process.
func RegisterWithGin() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		registerErr = RegisterMatchValidators(v)
	})
	return registerErr
}

var (
	standaloneOnce sync.Once
	standalone     *validator.Validate
	standaloneErr  error
)

// Struct validates v against its `binding` tags outside of gin, for inputs
// that do not arrive over HTTP (request files fed to the CLI).
func Struct(v any) error {
	standaloneOnce.Do(func() {
		standalone = validator.New()
		standalone.SetTagName("binding")
		standaloneErr = RegisterMatchValidators(standalone)
	})
	if standaloneErr != nil {
		return standaloneErr
	}
	return standalone.Struct(v)
}
