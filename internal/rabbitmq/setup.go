package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Exchange и очереди пайплайна уведомлений об истёкших членствах.
const (
	NotificationsExchange = "notifications"
	// QueueExpired — персональные письма участникам с истёкшим членством.
	QueueExpired = "notifications.expired"
	// QueueAdmins — сводка для администраторов клуба.
	QueueAdmins = "notifications.admins"

	RoutingKeyExpired = "expired"
	RoutingKeyAdmins  = "admins"
)

// SetupChannel открывает канал и объявляет exchange и очереди уведомлений.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		NotificationsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, q := range GetNotificationQueues() {
		_, err = ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		err = ch.QueueBind(q.QueueName, q.RoutingKey, NotificationsExchange, false, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ch, nil
}
