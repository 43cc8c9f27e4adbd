// Package expiry содержит расчёт даты окончания членства при назначении
// тарифного плана. Используется при регистрации с планом, при записи платежа
// с планом и при переназначении плана администратором — во всех трёх случаях
// логика одна и та же.
package expiry

import "time"

// Next вычисляет новую дату окончания членства.
//
// База — текущая дата окончания current, если членство ещё активно
// (current позже опорной даты ref), иначе сама ref. Результат — база плюс
// durationDays дней. Таким образом продление неистёкшего членства
// наращивается поверх старой даты, а истёкшее начинается заново от ref.
func Next(current *time.Time, ref time.Time, durationDays int) time.Time {
	base := ref
	if current != nil && current.After(ref) {
		base = *current
	}
	return base.AddDate(0, 0, durationDays)
}
