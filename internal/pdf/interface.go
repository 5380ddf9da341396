package pdf

import (
	"context"

	"github.com/kpauljoseph/trimfit/pkg/models"
)

type DocumentProcessor interface {
	ProcessFile(ctx context.Context, inputPath, outputPath string) (*models.RunReport, error)
}
