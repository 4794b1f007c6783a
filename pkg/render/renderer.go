package render

import (
	"context"

	"github.com/goliatone/go-fileview/pkg/model"
)

// Renderer converts a FormModel into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
