package profileservice

import "errors"

var (
	// ErrAdvisorNotFound возвращается, когда в системе нет ни одного профиля администратора
	ErrAdvisorNotFound = errors.New("profileservice: no admin profile found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")
)
