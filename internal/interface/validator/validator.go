package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// CustomValidator はEcho用のカスタムバリデーターです
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator は新しいCustomValidatorを作成します
func NewCustomValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// カスタムバリデーション登録
	_ = v.RegisterValidation("groupcode", validateGroupCode)
	_ = v.RegisterValidation("groupname", validateGroupName)

	return &CustomValidator{validator: v}
}

// Validate はリクエストを検証します
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return cv.formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors はバリデーションエラーをフォーマットします
func (cv *CustomValidator) formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.NewValidationError(err.Error(), nil)
	}

	details := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, apperror.FieldError{
			Field:   toCamelCase(e.Field()),
			Message: getValidationMessage(e),
		})
	}

	return apperror.NewValidationError("validation failed", details)
}

// validateGroupCode は参加コード（大文字小文字・前後空白は許容）を検証します
func validateGroupCode(fl validator.FieldLevel) bool {
	_, err := valueobject.NewGroupCode(fl.Field().String())
	return err == nil
}

// validateGroupName はグループ名を検証します
func validateGroupName(fl validator.FieldLevel) bool {
	_, err := valueobject.NewGroupName(fl.Field().String())
	return err == nil
}

// getValidationMessage はバリデーションエラーメッセージを返します
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "groupcode":
		return "must be a 6 character code of letters and digits"
	case "groupname":
		return "must be 1-100 characters"
	case "url":
		return "must be a valid URL"
	default:
		return "validation failed"
	}
}

// toCamelCase はPascalCaseのフィールド名をJSONと同じcamelCaseに変換します
func toCamelCase(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
