package domain

import "errors"

var (
	ErrMissingProject        = errors.New("project name is required")
	ErrMissingRequiredFields = errors.New("required field(s) missing")
	ErrMissingID             = errors.New("missing _id")
	ErrNoUpdateFields        = errors.New("no update field(s) sent")
	ErrInvalidID             = errors.New("invalid _id")
	ErrIncompatibleValue     = errors.New("value does not fit field type")
	ErrIssueNotFound         = errors.New("issue not found")
	ErrCouldNotUpdate        = errors.New("could not update")
	ErrCouldNotDelete        = errors.New("could not delete")
)
