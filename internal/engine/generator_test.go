package engine

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/shaiso/curl2make/internal/domain"
)

// assertGolden сравнивает got с файлом testdata/name и выводит читаемый diff.
func assertGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	want, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read golden file: %v", err)
	}
	if bytes.Equal(got, want) {
		return
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(want), string(got), false)
	t.Errorf("output differs from %s:\n%s", name, dmp.DiffPrettyText(diffs))
}

func TestGenerate_Golden(t *testing.T) {
	doc, _, err := Convert(`curl -X POST https://example.com/x -H "Content-Type: json" -H "X-Id: a:b:c" -d "a=1" -d "q=a=b" -d flag`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	assertGolden(t, "post_blueprint.golden.json", out)
}

func TestGenerate_MethodLabel(t *testing.T) {
	tests := []struct {
		method string
		label  string
	}{
		{method: "get", label: "GET"},
		{method: "post", label: "POST"},
		{method: "delete", label: "DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			doc := Generate(&domain.RequestDescriptor{URL: "https://example.com", Method: tt.method})

			module := doc.HTTPModule()
			if module == nil {
				t.Fatal("blueprint has no module")
			}
			if module.Metadata.Restore.Expect.Method.Label != tt.label {
				t.Errorf("expected label %q, got %q", tt.label, module.Metadata.Restore.Expect.Method.Label)
			}
			if module.Mapper.Method != tt.method {
				t.Errorf("expected mapper method %q, got %q", tt.method, module.Mapper.Method)
			}
		})
	}
}

func TestGenerate_EchoesDescriptor(t *testing.T) {
	desc := &domain.RequestDescriptor{
		URL:     "https://example.com/x",
		Method:  "post",
		Headers: []domain.Pair{{Name: "B", Value: "2"}, {Name: "A", Value: "1"}},
		Params:  []domain.Pair{{Name: "z", Value: ""}, {Name: "y", Value: "v"}},
	}

	doc := Generate(desc)

	if len(doc.Subflows) != 1 || len(doc.Subflows[0].Flow) != 1 {
		t.Fatalf("expected exactly one module, got %+v", doc.Subflows)
	}

	m := doc.HTTPModule()
	if m.ID != 1 || m.Module != ModuleHTTPSendData || m.Version != 3 {
		t.Errorf("unexpected module identity: id=%d module=%s version=%d", m.ID, m.Module, m.Version)
	}
	if m.Mapper.URL != desc.URL {
		t.Errorf("expected url %q, got %q", desc.URL, m.Mapper.URL)
	}
	if m.Mapper.Headers[0].Name != "B" || m.Mapper.Headers[1].Name != "A" {
		t.Errorf("headers reordered: %+v", m.Mapper.Headers)
	}
	if m.Mapper.QS[0].Name != "z" || m.Mapper.QS[1].Name != "y" {
		t.Errorf("params reordered: %+v", m.Mapper.QS)
	}
	if doc.Metadata.Version != 1 {
		t.Errorf("expected blueprint version 1, got %d", doc.Metadata.Version)
	}
}

func TestGenerate_StaticPolicy(t *testing.T) {
	doc := Generate(&domain.RequestDescriptor{URL: "https://example.com", Method: "get"})
	m := doc.HTTPModule()

	if m.Parameters.HandleErrors || !m.Parameters.UseNewZLibDeCompress {
		t.Errorf("unexpected parameters: %+v", m.Parameters)
	}
	if !m.Mapper.FollowRedirect || !m.Mapper.RejectUnauthorized || !m.Mapper.Gzip {
		t.Error("followRedirect, rejectUnauthorized and gzip must be on")
	}
	if m.Mapper.ShareCookies || m.Mapper.UseQuerystring || m.Mapper.UseMtls || m.Mapper.FollowAllRedirects {
		t.Error("other toggles must be off")
	}
	if m.Mapper.BodyType != "raw" || m.Mapper.ContentType != "application/json" {
		t.Errorf("unexpected body settings: %s / %s", m.Mapper.BodyType, m.Mapper.ContentType)
	}
	if m.Metadata.Designer.X != 8 || m.Metadata.Designer.Y != -158 {
		t.Errorf("unexpected designer position: %+v", m.Metadata.Designer)
	}
}

func TestGenerate_DoesNotShareState(t *testing.T) {
	desc := &domain.RequestDescriptor{
		URL:     "https://example.com",
		Method:  "post",
		Headers: []domain.Pair{{Name: "A", Value: "1"}},
	}

	first := Generate(desc)
	first.HTTPModule().Mapper.Headers[0].Value = "mutated"
	first.HTTPModule().Metadata.Restore.Expect.Method.Label = "MUTATED"

	second := Generate(desc)
	if second.HTTPModule().Mapper.Headers[0].Value != "1" {
		t.Error("generated document shares headers with descriptor or previous document")
	}
	if second.HTTPModule().Metadata.Restore.Expect.Method.Label != "POST" {
		t.Error("generated document shares metadata with template")
	}
	if desc.Headers[0].Value != "1" {
		t.Error("descriptor was mutated")
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	desc, err := Parse(`curl -X PUT https://example.com -H "A: 1" -H "B: 2" -d "x=<tag>&y"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := Marshal(Generate(desc))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := Marshal(Generate(desc))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("serialized output is not deterministic")
	}
	if !bytes.Contains(first, []byte("<tag>&y")) {
		t.Error("html characters must not be escaped")
	}
}

func TestMarshal_EmptyListsAsArrays(t *testing.T) {
	out, err := Marshal(Generate(&domain.RequestDescriptor{URL: "https://example.com", Method: "get"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw struct {
		Subflows []struct {
			Flow []struct {
				Mapper map[string]json.RawMessage `json:"mapper"`
			} `json:"flow"`
		} `json:"subflows"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	mapper := raw.Subflows[0].Flow[0].Mapper
	if string(mapper["headers"]) != "[]" || string(mapper["qs"]) != "[]" {
		t.Errorf("expected empty arrays, got headers=%s qs=%s", mapper["headers"], mapper["qs"])
	}
}
