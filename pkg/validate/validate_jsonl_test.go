package validate

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestValidateJSONLStream_MixedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"clientName":"a","items":[{"description":"x","quantity":1,"unitPrice":1}]}`,
		``,
		`not json`,
		`{"clientName":"","items":[{"description":"x","quantity":1,"unitPrice":1}]}`,
		`{"clientName":"b","items":[{"description":"y","quantity":3,"unitPrice":2.5}]}`,
	}, "\n")

	var out bytes.Buffer
	res, err := ValidateJSONLStream(context.Background(), NewOrderValidator(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 2 {
		t.Fatalf("want 2 valid / 2 invalid, got %+v", res)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 output lines, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"clientName":"a"`) || !strings.Contains(lines[1], `"clientName":"b"`) {
		t.Fatalf("canonical output lost order data: %q", out.String())
	}
}

func TestValidateJSONLStream_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	res, err := ValidateJSONLStream(context.Background(), NewOrderValidator(), strings.NewReader(""), &out)
	if err != nil || res.ValidLinesCount != 0 || res.InvalidLinesCount != 0 {
		t.Fatalf("unexpected result %+v, err=%v", res, err)
	}
}
