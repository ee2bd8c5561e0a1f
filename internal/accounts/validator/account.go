package validator

import (
	"fmt"

	"tutorbook/pkg/model"
	"tutorbook/pkg/validation"
)

type AccountValidator struct {
	v *validation.Validator
}

func NewAccountValidator() *AccountValidator {
	return &AccountValidator{v: validation.New()}
}

func (a *AccountValidator) ValidateStudent(student *model.Student) error {
	return a.v.Struct(student)
}

func (a *AccountValidator) ValidateTeacher(teacher *model.Teacher) error {
	if err := a.v.Struct(teacher); err != nil {
		return err
	}
	return validateSlots(teacher.Slots)
}

func validateSlots(slots []string) error {
	seen := make(map[string]struct{}, len(slots))
	for i, slot := range slots {
		if _, ok := seen[slot]; ok {
			return validation.ValidationError{
				Field:   fmt.Sprintf("slots[%d]", i),
				Message: fmt.Sprintf("duplicate slot %q", slot),
			}
		}
		seen[slot] = struct{}{}
	}
	return nil
}
