package mutation

import "errors"

// ErrConfirmationRequired gates cart deletion: without an explicit user
// confirmation the destructive call is never issued.
var ErrConfirmationRequired = errors.New("cart deletion requires confirmation")
