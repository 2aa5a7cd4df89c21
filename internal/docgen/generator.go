// Package docgen is the notice-document boundary. Rendering backends
// (PDF, letter templates) live behind the Generator interface.
package docgen

import (
	"context"
	"fmt"

	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/types"
)

// Generator produces a stored notice document and returns its path
type Generator interface {
	GenerateNotice(ctx context.Context, templateKey, subject, body string) (string, error)
}

// LogGenerator records the request and returns a deterministic path.
// Used in local mode and in tests.
type LogGenerator struct {
	logger *logger.Logger
}

// NewLogGenerator creates a log-only generator
func NewLogGenerator(logger *logger.Logger) *LogGenerator {
	return &LogGenerator{logger: logger}
}

func (g *LogGenerator) GenerateNotice(ctx context.Context, templateKey, subject, body string) (string, error) {
	path := fmt.Sprintf("notices/%s_%s.txt", templateKey, types.GenerateShortIDWithPrefix("DOC"))
	g.logger.Infow("notice document (log generator)",
		"template_key", templateKey,
		"subject", subject,
		"path", path,
	)
	return path, nil
}
