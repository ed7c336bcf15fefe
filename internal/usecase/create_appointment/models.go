package create_appointment

import "time"

// Request модель запроса на создание встречи
type Request struct {
	ProspectID string     // ID клиента
	AdvisorID  string     // ID консультанта
	StartTime  time.Time  // Начало встречи
	EndTime    *time.Time // Конец встречи, по умолчанию начало + длительность встречи
}

// Response модель ответа с созданной встречей
type Response struct {
	ID         string
	ProspectID string
	AdvisorID  string
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
