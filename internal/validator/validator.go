package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)

// IsPhone 自定义校验函数，校验可选的电话号码格式
func IsPhone(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}
