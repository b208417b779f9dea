package trigger

import "errors"

var (
	// ErrTriggerNotFound means the referenced trigger definition does not exist.
	ErrTriggerNotFound = errors.New("trigger not found")
	// ErrTemplateMissing means a text-based trigger has no stored template.
	ErrTemplateMissing = errors.New("stored template not found for trigger")
	// ErrPromptRequired means a dynamic trigger was fired without a prompt.
	ErrPromptRequired = errors.New("prompt is required for dynamic trigger")
	// ErrAuthTokenRequired means the firing request carried no auth token.
	ErrAuthTokenRequired = errors.New("auth token is required")
)
