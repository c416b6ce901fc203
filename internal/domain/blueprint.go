package domain

// Blueprint — документ сценария Make.com с одним HTTP модулем.
//
// Порядок полей в структурах задаёт порядок ключей в JSON,
// поэтому сериализация детерминирована.
//
//	{
//	    "subflows": [{"flow": [ <Module> ]}],
//	    "metadata": {"version": 1}
//	}
type Blueprint struct {
	Subflows []Subflow        `json:"subflows"`
	Metadata BlueprintVersion `json:"metadata"`
}

// Subflow — цепочка модулей сценария.
type Subflow struct {
	Flow []Module `json:"flow"`
}

// BlueprintVersion — метаданные документа.
type BlueprintVersion struct {
	Version int `json:"version"`
}

// Module — узел сценария (действие "HTTP: Make a request").
type Module struct {
	// ID — номер модуля внутри сценария.
	ID int `json:"id"`

	// Module — идентификатор типа модуля, например "http:ActionSendData".
	Module string `json:"module"`

	// Version — версия модуля в Make.
	Version int `json:"version"`

	Parameters ModuleParameters `json:"parameters"`
	Mapper     HTTPMapper       `json:"mapper"`
	Metadata   ModuleMetadata   `json:"metadata"`
}

// ModuleParameters — статические параметры действия.
type ModuleParameters struct {
	HandleErrors         bool `json:"handleErrors"`
	UseNewZLibDeCompress bool `json:"useNewZLibDeCompress"`
}

// HTTPMapper — маппинг полей HTTP запроса.
//
// Вычисляются только URL, Method, Headers и QS; остальные поля —
// политика безопасных значений по умолчанию.
type HTTPMapper struct {
	URL                string `json:"url"`
	Method             string `json:"method"`
	Headers            []Pair `json:"headers"`
	QS                 []Pair `json:"qs"`
	BodyType           string `json:"bodyType"`
	ParseResponse      bool   `json:"parseResponse"`
	AuthUser           string `json:"authUser"`
	AuthPass           string `json:"authPass"`
	Timeout            string `json:"timeout"`
	ShareCookies       bool   `json:"shareCookies"`
	CA                 string `json:"ca"`
	RejectUnauthorized bool   `json:"rejectUnauthorized"`
	FollowRedirect     bool   `json:"followRedirect"`
	UseQuerystring     bool   `json:"useQuerystring"`
	Gzip               bool   `json:"gzip"`
	UseMtls            bool   `json:"useMtls"`
	ContentType        string `json:"contentType"`
	Data               string `json:"data"`
	FollowAllRedirects bool   `json:"followAllRedirects"`
}

// ModuleMetadata — данные для редактора сценариев.
type ModuleMetadata struct {
	Designer DesignerPosition `json:"designer"`
	Restore  Restore          `json:"restore"`
}

// DesignerPosition — позиция модуля на холсте.
type DesignerPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Restore — состояние формы модуля при повторном открытии в редакторе.
type Restore struct {
	Expect RestoreExpect `json:"expect"`
}

// RestoreExpect — выбранные варианты полей формы.
type RestoreExpect struct {
	Method      ChoiceLabel `json:"method"`
	Headers     Choice      `json:"headers"`
	QS          Choice      `json:"qs"`
	BodyType    Label       `json:"bodyType"`
	ContentType Label       `json:"contentType"`
}

// ChoiceLabel — выбор из списка с подписью.
type ChoiceLabel struct {
	Mode  string `json:"mode"`
	Label string `json:"label"`
}

// Choice — выбор из списка без подписи.
type Choice struct {
	Mode string `json:"mode"`
}

// Label — подпись выбранного значения.
type Label struct {
	Label string `json:"label"`
}

// HTTPModule возвращает единственный HTTP модуль документа.
// Возвращает nil, если документ пуст.
func (b *Blueprint) HTTPModule() *Module {
	if len(b.Subflows) == 0 || len(b.Subflows[0].Flow) == 0 {
		return nil
	}
	return &b.Subflows[0].Flow[0]
}
