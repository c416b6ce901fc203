// Package engine содержит ядро конвертера: разбор curl-команды
// и генерацию документа Make.
//
// Включает:
//   - parser.go    — нормализация, токенизация и разбор команды в RequestDescriptor
//   - generator.go — построение и сериализация Blueprint с одним HTTP модулем
//   - errors.go    — ErrMissingURL, ErrMalformedInput и ParseError
//
// Пакет не выполняет ввод-вывод, не логирует и не хранит состояние:
// каждый вызов независим и безопасен для конкурентного использования.
//
//	doc, desc, err := engine.Convert(`curl -X POST https://example.com -d "a=1"`)
//	if err != nil {
//	    // errors.Is(err, engine.ErrMissingURL) или engine.ErrMalformedInput
//	}
//	out, _ := engine.Marshal(doc)
package engine
