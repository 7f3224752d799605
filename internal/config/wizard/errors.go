package wizard

import "errors"

// Validation errors for the interactive wizard.
var errNumberInvalid = errors.New("enter a whole number")
