package util

import (
	"training_portal_backend/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 注册自定义绑定校验规则：course_theme、module_type
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("course_theme", func(fl validator.FieldLevel) bool {
		return model.Theme(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("module_type", func(fl validator.FieldLevel) bool {
		return model.ModuleType(fl.Field().String()).Valid()
	})
}
