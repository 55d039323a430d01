package teacher

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/walimuhq/walimu/core"
)

var (
	statusTag  = "teacherstatus"
	statusText = "invalid status"

	payMethodTag  = "paymethod"
	payMethodText = "invalid payment method"

	payStatusTag  = "paystatus"
	payStatusText = "invalid payment status"
)

// InitValidators registers the teacher-specific validators and their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, oneOfValidation(AllStatuses))
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)

	_ = validate.RegisterValidation(payMethodTag, oneOfValidation(AllPaymentMethods))
	core.RegisterCustomTranslation(validate, translator, payMethodTag, payMethodText)

	_ = validate.RegisterValidation(payStatusTag, oneOfValidation(AllPaymentStatuses))
	core.RegisterCustomTranslation(validate, translator, payStatusTag, payStatusText)
}

// oneOfValidation checks that the field value is one of the allowed values.
func oneOfValidation(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, a := range allowed {
			if val == a {
				return true
			}
		}
		return false
	}
}
