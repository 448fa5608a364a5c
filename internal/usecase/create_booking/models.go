package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          string           // uid из проверенного токена
	ServiceID       string           // ID услуги
	CompanyID       *string          // ID компании-работодателя (для госслужащих)
	FullName        string           // ФИО клиента
	PhoneNumber     string           // Телефон
	CarType         string           // Тип автомобиля
	LicensePlate    string           // Госномер
	Location        string           // Адрес мойки
	AppointmentDate time.Time        // Дата и время записи
	IsPublicServant bool             // Клиент заявил себя госслужащим
	TotalPrice      *decimal.Decimal // Цена, рассчитанная клиентом (опционально)
}
