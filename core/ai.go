package core

import "context"

// TextGenerator is any service that can turn a prompt into free text,
// typically a hosted language model.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
