package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewHistoryCmd создаёт команду history.
func NewHistoryCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions recorded by the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			records, err := client.ListConversions(cmd.Context(), limit)
			if err != nil {
				return err
			}

			headers := []string{"ID", "SOURCE", "STATUS", "METHOD", "HOST", "ERROR", "DURATION_MS", "CREATED"}
			rows := make([][]string, len(records))
			for i, r := range records {
				rows[i] = []string{
					shortID(r.ID),
					r.Source,
					r.Status,
					r.Method,
					r.URLHost,
					r.ErrorCode,
					strconv.FormatInt(r.DurationMs, 10),
					r.CreatedAt,
				}
			}

			out.Print(headers, rows, records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records")

	return cmd
}

// shortID возвращает первые 8 символов UUID для таблицы.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
