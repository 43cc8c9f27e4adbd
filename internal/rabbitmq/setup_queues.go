package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди пайплайна уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueExpired, RoutingKey: RoutingKeyExpired},
		{QueueName: QueueAdmins, RoutingKey: RoutingKeyAdmins},
	}
}
