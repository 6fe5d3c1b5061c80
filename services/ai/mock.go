package aisvc

import (
	"context"

	"github.com/upliftai/backend/core"
)

// textGeneratorMock returns a scripted reply; for tests.
type textGeneratorMock struct {
	text string
	err  error
}

var _ core.TextGenerator = (*textGeneratorMock)(nil)

func NewTextGeneratorMock(text string, err error) core.TextGenerator {
	return &textGeneratorMock{text: text, err: err}
}

func (svc *textGeneratorMock) GenerateText(context.Context, string) (string, error) {
	return svc.text, svc.err
}
