package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shaiso/curl2make/internal/domain"
)

func TestParse_FullCommand(t *testing.T) {
	desc, err := Parse(`curl -X POST https://example.com/x -H "Content-Type: json" -d "a=1"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &domain.RequestDescriptor{
		URL:     "https://example.com/x",
		Method:  "post",
		Headers: []domain.Pair{{Name: "Content-Type", Value: "json"}},
		Params:  []domain.Pair{{Name: "a", Value: "1"}},
	}
	if !reflect.DeepEqual(desc, want) {
		t.Errorf("descriptor mismatch:\n got  %+v\n want %+v", desc, want)
	}
}

func TestParse_URL(t *testing.T) {
	tests := []struct {
		name    string
		command string
		wantURL string
	}{
		{name: "bare url", command: "curl https://api.example.com/v1/items", wantURL: "https://api.example.com/v1/items"},
		{name: "quoted url", command: `curl "http://localhost:8080/a?b=c&d=e"`, wantURL: "http://localhost:8080/a?b=c&d=e"},
		{name: "url after flags", command: "curl -s -v -X GET https://example.com", wantURL: "https://example.com"},
		{name: "first match wins", command: "curl https://first.example.com https://second.example.com", wantURL: "https://first.example.com"},
		{name: "header value is not url", command: `curl -H "Referer: https://ref.example.com" https://target.example.com`, wantURL: "https://target.example.com"},
		{name: "literal http prefix", command: "curl httpbin.org/get", wantURL: "httpbin.org/get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Parse(tt.command)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc.URL != tt.wantURL {
				t.Errorf("expected url %q, got %q", tt.wantURL, desc.URL)
			}
		})
	}
}

func TestParse_Method(t *testing.T) {
	tests := []struct {
		name       string
		command    string
		wantMethod string
	}{
		{name: "default get", command: "curl https://example.com", wantMethod: "get"},
		{name: "short flag", command: "curl -X PUT https://example.com", wantMethod: "put"},
		{name: "long flag", command: "curl --request DELETE https://example.com", wantMethod: "delete"},
		{name: "already lower", command: "curl -X patch https://example.com", wantMethod: "patch"},
		{name: "last wins", command: "curl -X POST -X PUT https://example.com", wantMethod: "put"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Parse(tt.command)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc.Method != tt.wantMethod {
				t.Errorf("expected method %q, got %q", tt.wantMethod, desc.Method)
			}
		})
	}
}

func TestParse_Headers(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []domain.Pair
	}{
		{
			name:    "split on first colon",
			command: `curl https://example.com -H "X-Id: a:b:c"`,
			want:    []domain.Pair{{Name: "X-Id", Value: "a:b:c"}},
		},
		{
			name:    "quoted value with spaces",
			command: `curl https://example.com -H "Authorization: Bearer abc def"`,
			want:    []domain.Pair{{Name: "Authorization", Value: "Bearer abc def"}},
		},
		{
			name:    "single quotes and long flag",
			command: `curl https://example.com --header 'Accept:   application/json  '`,
			want:    []domain.Pair{{Name: "Accept", Value: "application/json"}},
		},
		{
			name:    "order preserved",
			command: `curl -H "B: 2" https://example.com -H "A: 1" -H "C: 3"`,
			want: []domain.Pair{
				{Name: "B", Value: "2"},
				{Name: "A", Value: "1"},
				{Name: "C", Value: "3"},
			},
		},
		{
			name:    "empty value",
			command: `curl https://example.com -H "X-Empty:"`,
			want:    []domain.Pair{{Name: "X-Empty", Value: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Parse(tt.command)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(desc.Headers, tt.want) {
				t.Errorf("expected headers %+v, got %+v", tt.want, desc.Headers)
			}
		})
	}
}

func TestParse_Params(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []domain.Pair
	}{
		{
			name:    "split on first equals",
			command: `curl https://example.com -d "q=a=b"`,
			want:    []domain.Pair{{Name: "q", Value: "a=b"}},
		},
		{
			name:    "no equals",
			command: `curl https://example.com -d flag`,
			want:    []domain.Pair{{Name: "flag", Value: ""}},
		},
		{
			name:    "all data flags in order",
			command: `curl https://example.com -d a=1 --data b=2 --data-urlencode "c=x y"`,
			want: []domain.Pair{
				{Name: "a", Value: "1"},
				{Name: "b", Value: "2"},
				{Name: "c", Value: "x y"},
			},
		},
		{
			name:    "value looking like url is consumed by flag",
			command: `curl -d "next=https://other.example.com" https://example.com`,
			want:    []domain.Pair{{Name: "next", Value: "https://other.example.com"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Parse(tt.command)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(desc.Params, tt.want) {
				t.Errorf("expected params %+v, got %+v", tt.want, desc.Params)
			}
		})
	}
}

func TestParse_EmptyListsAreNotNil(t *testing.T) {
	desc, err := Parse("curl https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Headers == nil || desc.Params == nil {
		t.Errorf("expected empty, non-nil slices, got headers=%v params=%v", desc.Headers, desc.Params)
	}
}

func TestParse_MultilineCommand(t *testing.T) {
	command := "curl -X POST \\\n  https://example.com/x \\\r\n  -H 'Content-Type: application/json' \\\n\t-d 'a=1'\n"

	desc, err := Parse(command)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.URL != "https://example.com/x" {
		t.Errorf("expected url, got %q", desc.URL)
	}
	if len(desc.Headers) != 1 || desc.Headers[0].Value != "application/json" {
		t.Errorf("unexpected headers: %+v", desc.Headers)
	}
	if len(desc.Params) != 1 || desc.Params[0].Name != "a" {
		t.Errorf("unexpected params: %+v", desc.Params)
	}
}

func TestParse_MissingURL(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{name: "only program", command: "curl"},
		{name: "flags only", command: `curl -X POST -H "A: b" -d x=1`},
		{name: "url as flag value", command: `curl -d https://example.com`},
		{name: "empty command", command: ""},
		{name: "whitespace only", command: "   \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.command)
			if !errors.Is(err, ErrMissingURL) {
				t.Fatalf("expected ErrMissingURL, got %v", err)
			}
			if err.Error() != "Could not find URL in command" {
				t.Errorf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestParse_MalformedInput(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		wantFlag string
	}{
		{name: "header last", command: "curl https://example.com -H", wantFlag: "-H"},
		{name: "method last", command: "curl https://example.com --request", wantFlag: "--request"},
		{name: "data last", command: "curl https://example.com -d", wantFlag: "-d"},
		{name: "header without colon", command: `curl https://example.com -H "NoColon"`, wantFlag: "-H"},
		{name: "unbalanced double quote", command: `curl "https://example.com`},
		{name: "unbalanced single quote", command: `curl https://example.com -H 'A: b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.command)
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}

			var pErr *ParseError
			if !errors.As(err, &pErr) {
				t.Fatalf("expected ParseError, got %T", err)
			}
			if pErr.Flag != tt.wantFlag {
				t.Errorf("expected flag %q, got %q", tt.wantFlag, pErr.Flag)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"curl   https://example.com",
		"curl \\\n https://example.com \\\n -H 'A:  b'",
		"\t curl\r\n-X POST\n\nhttps://example.com  ",
		`curl -H "X:   spaced   value" https://example.com`,
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q != %q", in, once, twice)
		}

		t1, err1 := Tokenize(once)
		t2, err2 := Tokenize(twice)
		if err1 != nil || err2 != nil {
			t.Fatalf("tokenize failed: %v / %v", err1, err2)
		}
		if !reflect.DeepEqual(t1, t2) {
			t.Errorf("token streams differ for %q: %v vs %v", in, t1, t2)
		}
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("  curl \\\n   -X   POST\n\thttps://example.com  ")
	want := "curl -X POST https://example.com"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestErrorCode(t *testing.T) {
	_, missing := Parse("curl -X GET")
	_, malformed := Parse("curl https://example.com -H")

	if code := ErrorCode(missing); code != "MISSING_URL" {
		t.Errorf("expected MISSING_URL, got %q", code)
	}
	if code := ErrorCode(malformed); code != "MALFORMED_INPUT" {
		t.Errorf("expected MALFORMED_INPUT, got %q", code)
	}
	if code := ErrorCode(errors.New("other")); code != "" {
		t.Errorf("expected empty code, got %q", code)
	}
}
