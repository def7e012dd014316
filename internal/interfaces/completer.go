package interfaces

import "context"

// Completer asks an LLM provider for a single text completion.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
