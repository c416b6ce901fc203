// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация сообщений
//   - consumer.go   — потребление сообщений из очередей
//
// Типы сообщений:
//   - conversion.completed — конверсия curl-команды завершена (успешно или с ошибкой)
//
// Exchanges:
//   - curl2make.conversions — события конверсий
//   - curl2make.dlq         — dead letter queue
package mq
