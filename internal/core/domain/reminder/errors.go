package reminder

import "errors"

var ErrReminderDoesNotExist = errors.New("reminder does not exist")
var ErrInvalidStatusTransition = errors.New("invalid reminder status transition")
var ErrInvalidTimezone = errors.New("invalid timezone")
