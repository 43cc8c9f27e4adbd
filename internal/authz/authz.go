// Package authz реализует единую проверку прав доступа к ресурсам клуба.
//
// Вместо разбросанных по обработчикам проверок роли используется одна
// функция Authorize(principal, action, resource), возвращающая решение
// Allow или Deny с причиной. Решение принимается по роли и принадлежности
// ресурса: доступ либо полный, либо запрещён, частичного доступа к полям нет.
package authz

import "github.com/ketewodros41-star/gym/internal/models"

// Action — действие над ресурсом, для которого проверяются права.
type Action string

// Поддерживаемые действия.
const (
	ActionUserList       Action = "user.list"
	ActionUserRead       Action = "user.read"
	ActionUserUpdate     Action = "user.update"
	ActionUserDelete     Action = "user.delete"
	ActionPlanRead       Action = "plan.read"
	ActionPlanWrite      Action = "plan.write"
	ActionPaymentCreate  Action = "payment.create"
	ActionPaymentList    Action = "payment.list"
	ActionAttendanceMark Action = "attendance.mark"
	ActionAttendanceRead Action = "attendance.read"
)

// Principal — аутентифицированный пользователь, выполняющий запрос.
type Principal struct {
	UID  string
	Role string
}

// Resource описывает принадлежность ресурса: участника, которого касается
// ресурс, и закреплённого за ним тренера. Для действий без конкретного
// ресурса (списки, справочники) передаётся нулевое значение.
type Resource struct {
	MemberUID  string
	TrainerUID string
}

// Decision — результат проверки прав.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow возвращает разрешающее решение.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny возвращает запрещающее решение с причиной.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize решает, может ли principal выполнить action над resource.
// Отказ — не ошибка, а осознанный запрет; отсутствие валидных учётных
// данных обрабатывается раньше, в middleware.
func Authorize(p Principal, action Action, r Resource) Decision {
	if p.Role == models.RoleAdmin {
		return Allow()
	}

	switch action {
	case ActionUserList:
		// Тренер получает только своих участников, выборку сужает хранилище.
		if p.Role == models.RoleTrainer {
			return Allow()
		}
		return Deny("members may not list users")

	case ActionUserRead:
		if p.UID == r.MemberUID {
			return Allow()
		}
		if p.Role == models.RoleTrainer && p.UID == r.TrainerUID {
			return Allow()
		}
		return Deny("not your record")

	case ActionUserUpdate:
		if p.UID == r.MemberUID {
			return Allow()
		}
		return Deny("only the owner or an admin may update a user")

	case ActionUserDelete:
		return Deny("only admins may delete users")

	case ActionPlanRead:
		return Allow()

	case ActionPlanWrite:
		return Deny("only admins may manage plans")

	case ActionPaymentCreate:
		if p.Role == models.RoleMember && p.UID == r.MemberUID {
			return Allow()
		}
		return Deny("payments may be recorded only for yourself")

	case ActionPaymentList:
		if p.Role == models.RoleMember {
			// Участник видит только свои платежи, выборку сужает хранилище.
			return Allow()
		}
		return Deny("trainers may not list payments")

	case ActionAttendanceMark:
		if p.Role == models.RoleTrainer {
			return Allow()
		}
		if p.UID == r.MemberUID {
			return Allow()
		}
		return Deny("members may mark attendance only for themselves")

	case ActionAttendanceRead:
		if p.UID == r.MemberUID {
			return Allow()
		}
		if p.Role == models.RoleTrainer && p.UID == r.TrainerUID {
			return Allow()
		}
		return Deny("not your attendance history")
	}

	return Deny("unknown action")
}
