package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shaiso/curl2make/internal/domain"
)

const (
	// ModuleHTTPSendData — модуль Make "HTTP: Make a request".
	ModuleHTTPSendData = "http:ActionSendData"

	httpModuleVersion = 3
	blueprintVersion  = 1

	// choseMode — режим "выбрано из списка" в форме редактора.
	choseMode = "chose"
)

// httpModuleTemplate — статическая часть HTTP модуля.
//
// Все поля-структуры передаются по значению, поэтому копия шаблона
// не разделяет состояние с оригиналом. Срезы Headers и QS в шаблоне
// пустые и всегда заменяются при генерации.
var httpModuleTemplate = domain.Module{
	ID:      1,
	Module:  ModuleHTTPSendData,
	Version: httpModuleVersion,
	Parameters: domain.ModuleParameters{
		HandleErrors:         false,
		UseNewZLibDeCompress: true,
	},
	Mapper: domain.HTTPMapper{
		BodyType:           "raw",
		ParseResponse:      true,
		AuthUser:           "",
		AuthPass:           "",
		Timeout:            "",
		ShareCookies:       false,
		CA:                 "",
		RejectUnauthorized: true,
		FollowRedirect:     true,
		UseQuerystring:     false,
		Gzip:               true,
		UseMtls:            false,
		ContentType:        "application/json",
		Data:               "",
		FollowAllRedirects: false,
	},
	Metadata: domain.ModuleMetadata{
		Designer: domain.DesignerPosition{X: 8, Y: -158},
		Restore: domain.Restore{
			Expect: domain.RestoreExpect{
				Method:      domain.ChoiceLabel{Mode: choseMode},
				Headers:     domain.Choice{Mode: choseMode},
				QS:          domain.Choice{Mode: choseMode},
				BodyType:    domain.Label{Label: "Raw"},
				ContentType: domain.Label{Label: "JSON (application/json)"},
			},
		},
	},
}

// Generate строит документ Make с одним HTTP модулем по дескриптору.
//
// Вычисляются только url, method, headers, qs и подпись метода;
// остальное берётся из httpModuleTemplate.
func Generate(desc *domain.RequestDescriptor) domain.Blueprint {
	module := httpModuleTemplate

	module.Mapper.URL = desc.URL
	module.Mapper.Method = desc.Method
	module.Mapper.Headers = clonePairs(desc.Headers)
	module.Mapper.QS = clonePairs(desc.Params)
	module.Metadata.Restore.Expect.Method.Label = desc.MethodLabel()

	return domain.Blueprint{
		Subflows: []domain.Subflow{
			{Flow: []domain.Module{module}},
		},
		Metadata: domain.BlueprintVersion{Version: blueprintVersion},
	}
}

// Marshal сериализует документ в JSON с отступом в 4 пробела.
// Для одинакового документа результат побайтово совпадает.
func Marshal(doc domain.Blueprint) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal blueprint: %w", err)
	}

	// Encode добавляет перевод строки в конце
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Convert разбирает команду и генерирует документ.
func Convert(command string) (domain.Blueprint, *domain.RequestDescriptor, error) {
	desc, err := Parse(command)
	if err != nil {
		return domain.Blueprint{}, nil, err
	}
	return Generate(desc), desc, nil
}

// clonePairs копирует срез пар; nil превращается в пустой срез,
// чтобы в JSON всегда был массив.
func clonePairs(pairs []domain.Pair) []domain.Pair {
	out := make([]domain.Pair, len(pairs))
	copy(out, pairs)
	return out
}
