package domain

import "errors"

var (
	ErrNotFound          = errors.New("kayıt bulunamadı")
	ErrInvalidTransition = errors.New("geçersiz durum geçişi")
)
