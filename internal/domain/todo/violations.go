package todo

import "github.com/jsamuelsen11/todo-service/internal/domain"

// Violation codes. These are part of the public API and must stay stable.
const (
	CodeTitleNull       = "TITLE_NULL"
	CodeTitleSize       = "TITLE_SIZE"
	CodeDescriptionSize = "DESCRIPTION_SIZE"
	CodeDueDateNull     = "DUEDATE_NULL"

	CodeStateInvalid  = "STATE_INVALID"
	CodeLimitMin      = "LIMIT_MIN"
	CodeLimitMax      = "LIMIT_MAX"
	CodeLimitInvalid  = "LIMIT_INVALID"
	CodeOffsetMin     = "OFFSET_MIN"
	CodeOffsetMax     = "OFFSET_MAX"
	CodeOffsetInvalid = "OFFSET_INVALID"
)

var (
	violationTitleNull       = domain.Violation{Code: CodeTitleNull, Message: "title must not be null"}
	violationTitleSize       = domain.Violation{Code: CodeTitleSize, Message: "title size must be between 1 and 30"}
	violationDescriptionSize = domain.Violation{
		Code:    CodeDescriptionSize,
		Message: "description size must be between 0 and 500",
	}
	violationDueDateNull = domain.Violation{Code: CodeDueDateNull, Message: "dueDate must not be null"}

	violationStateInvalid  = domain.Violation{Code: CodeStateInvalid, Message: "state must be ALL or UNFINISHED"}
	violationLimitMin      = domain.Violation{Code: CodeLimitMin, Message: "limit must be greater or equal to 0"}
	violationLimitMax      = domain.Violation{Code: CodeLimitMax, Message: "limit must be less or equal to 10"}
	violationLimitInvalid  = domain.Violation{Code: CodeLimitInvalid, Message: "limit must be an integer"}
	violationOffsetMin     = domain.Violation{Code: CodeOffsetMin, Message: "offset must be greater or equal to 0"}
	violationOffsetMax     = domain.Violation{Code: CodeOffsetMax, Message: "offset must be less or equal to 100"}
	violationOffsetInvalid = domain.Violation{Code: CodeOffsetInvalid, Message: "offset must be an integer"}
)
