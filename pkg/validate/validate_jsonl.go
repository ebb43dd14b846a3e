package validate

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/orders_api/internal/ports"
)

// JSONLResult — итог потоковой валидации: сколько строк прошло и сколько нет.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// ValidateJSONLStream — построчная валидация JSONL-потока.
// Валидные строки пишутся в ow в каноническом JSON; невалидные считаются,
// но поток не прерывают. Ошибка возвращается только при сбое чтения/записи.
func ValidateJSONLStream(ctx context.Context, validator ports.OrderValidator, r io.Reader, ow io.Writer) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(r)
	// строки с большими заказами не должны валить сканер
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		req, err := ValidateOrderFromJSON(ctx, validator, []byte(line))
		if err != nil {
			res.InvalidLinesCount++
			continue
		}

		canonical, _ := json.Marshal(req)
		if _, err := ow.Write(canonical); err != nil {
			return res, fmt.Errorf("write json: %w", err)
		}
		if _, err := ow.Write([]byte("\n")); err != nil {
			return res, fmt.Errorf("write newline: %w", err)
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read stream: %w", err)
	}
	return res, nil
}
