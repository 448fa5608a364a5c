package config

import "errors"

var (
	// ErrDecode возвращается, когда файл конфигурации не удалось прочитать
	ErrDecode = errors.New("config: failed to decode file")

	// ErrInvalidEnv возвращается при некорректном значении переменной окружения
	ErrInvalidEnv = errors.New("config: invalid environment variable")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
