package models

// Plan представляет тарифный план членства: цена и длительность в днях.
// Справочные данные, на них ссылаются пользователи и платежи.
type Plan struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Price        int    `json:"price"`
	DurationDays int    `json:"durationDays"`
	Description  string `json:"description,omitempty"`
}

// DummyPlan используется для приёма данных тарифного плана из JSON-запроса.
type DummyPlan struct {
	Name         string `json:"name" validate:"required"`
	Price        int    `json:"price" validate:"required,gt=0"`
	DurationDays int    `json:"durationDays" validate:"required,gt=0"`
	Description  string `json:"description,omitempty" validate:"omitempty"`
}
