// Package audit реализует журнал конверсий.
//
// Журнал хранит только метаданные (канал, результат, метод, хост,
// длительность). Сгенерированный документ и значения заголовков
// никуда не записываются.
//
// Путь события:
//
//	api → Recorder → (RabbitMQ conversion.completed) → Handler → Store
//
// Без RabbitMQ используется StoreRecorder: запись идёт прямо в Store.
// Без базы данных — NopRecorder.
//
// Pruner по расписанию удаляет записи старше срока хранения.
package audit
