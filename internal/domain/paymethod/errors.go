package paymethod

import "errors"

var (
	ErrPayMethodNotFound  = errors.New("payment method not found")
	ErrPayMethodNameTaken = errors.New("payment method name already used")
)
