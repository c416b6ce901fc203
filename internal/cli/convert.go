package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/shaiso/curl2make/internal/domain"
	"github.com/shaiso/curl2make/internal/engine"
)

// NewConvertCmd создаёт команду convert.
//
// Источник команды: аргументы, --file или stdin.
func NewConvertCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var file string
	var remote bool
	var descriptorOnly bool

	cmd := &cobra.Command{
		Use:   "convert [CURL COMMAND...]",
		Short: "Convert a curl command to a Make.com HTTP module blueprint",
		Example: `  curl2make convert 'curl -X POST https://api.example.com -H "Accept: application/json"'
  curl2make convert curl https://api.example.com -d a=1
  pbpaste | curl2make convert
  curl2make convert --file request.sh --remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			command, err := readCommand(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}

			var (
				doc  domain.Blueprint
				desc *domain.RequestDescriptor
			)
			if remote {
				res, err := clientFn().Convert(cmd.Context(), command)
				if err != nil {
					return err
				}
				doc, desc = res.Blueprint, &res.Descriptor
			} else {
				doc, desc, err = engine.Convert(command)
				if err != nil {
					return err
				}
			}

			if descriptorOnly {
				printDescriptor(out, desc)
				return nil
			}

			b, err := engine.Marshal(doc)
			if err != nil {
				return err
			}
			out.Raw(b)
			return nil
		},
	}

	// Всё после первого аргумента — часть curl-команды, а не флаги convert
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the command from a file (- for stdin)")
	cmd.Flags().BoolVar(&remote, "remote", false, "Convert on the API server instead of locally")
	cmd.Flags().BoolVar(&descriptorOnly, "descriptor", false, "Print the parsed request instead of the blueprint")

	return cmd
}

// readCommand собирает текст команды.
//
// Один аргумент считается готовой командой. Несколько аргументов
// склеиваются с shell-экранированием, чтобы "-H 'A: b'" не распался.
func readCommand(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", fmt.Errorf("use either --file or arguments, not both")
	case file == "-":
		return readAll(stdin)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read command file: %w", err)
		}
		return string(b), nil
	case len(args) == 1:
		return args[0], nil
	case len(args) > 1:
		return shellquote.Join(args...), nil
	default:
		return readAll(stdin)
	}
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read command from stdin: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("no curl command given: pass it as an argument, with --file or on stdin")
	}
	return string(b), nil
}

// printDescriptor выводит разобранный запрос: одна строка на URL, метод,
// каждый заголовок и параметр.
func printDescriptor(out *Output, desc *domain.RequestDescriptor) {
	rows := [][]string{
		{"url", "", desc.URL},
		{"method", "", desc.MethodLabel()},
	}
	for _, h := range desc.Headers {
		rows = append(rows, []string{"header", h.Name, h.Value})
	}
	for _, p := range desc.Params {
		rows = append(rows, []string{"param", p.Name, p.Value})
	}

	out.Print([]string{"KIND", "NAME", "VALUE"}, rows, desc)
}
