package repository

import "errors"

var ErrCardNotFound = errors.New("card not found")
