// Package report renders the end-of-day closing report. The layout is the
// one the shop has always printed, in Portuguese, and is treated as frozen:
// downstream tooling greps these files.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"caixalivre/backend/internal/domain"
)

const timeLayout = "02/01/2006 15:04:05"

// Render produces the plain-text closing report.
func Render(result domain.ClosingResult) string {
	closing := result.Closing

	var b strings.Builder
	b.WriteString("RELATÓRIO DE FECHAMENTO DE CAIXA\n")
	b.WriteString("================================\n\n")
	fmt.Fprintf(&b, "Data: %s\n\n", closing.CreatedAt.Format(timeLayout))

	b.WriteString("PRODUTOS VENDIDOS:\n")
	b.WriteString("-------------------\n")
	for _, ps := range result.ProductSales {
		fmt.Fprintf(&b, "%s:\n", ps.ProductName)
		fmt.Fprintf(&b, "  Quantidade: %d\n", ps.Quantity)
		fmt.Fprintf(&b, "  Total: R$ %s\n\n", ps.Total.StringFixed(2))
	}

	b.WriteString("RESUMO POR FORMA DE PAGAMENTO:\n")
	b.WriteString("------------------------------\n")
	for _, method := range domain.PaymentMethods() {
		fmt.Fprintf(&b, "%s: R$ %s\n", method.Label(), closing.PaymentSummary[method].StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTOTAL VENDIDO: R$ %s\n", closing.TotalReceived.StringFixed(2))

	return b.String()
}

// FileName returns the artifact name for a closing done at t, one file per
// calendar day.
func FileName(t time.Time) string {
	return fmt.Sprintf("relatorio_%s.txt", t.Format("2006-01-02"))
}

// FileSink writes rendered reports into a directory. A second closing on
// the same day overwrites the earlier file.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Write renders the closing and persists it, returning the path of the
// written artifact.
func (s *FileSink) Write(result domain.ClosingResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(s.dir, FileName(result.Closing.CreatedAt))
	if err := os.WriteFile(path, []byte(Render(result)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
