package notify

import "github.com/advisorlane/advisor-admin/internal/colors"

// CLI prints notifications to the terminal through the colors package.
type CLI struct{}

// NewCLI creates a CLI notifier.
func NewCLI() *CLI {
	return &CLI{}
}

// Notify implements Notifier.
func (c *CLI) Notify(title, description string, kind Kind) {
	msg := title
	if description != "" {
		msg = title + ": " + description
	}
	switch kind {
	case KindSuccess:
		colors.Success(msg)
	case KindWarning:
		colors.Warning(msg)
	case KindError:
		colors.Error(msg)
	default:
		colors.Info(msg)
	}
}
