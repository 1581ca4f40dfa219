package convert

import (
	"github.com/AliEhsanian/YouTube-Downloader/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(model.ConversionTask))
	StartConversion(inputPath string, target Target) (*model.ConversionTask, error)
	StopConversion(taskID string) error
	GetTask(taskID string) (model.ConversionTask, bool)
}

var _ Converter = (*Service)(nil)
