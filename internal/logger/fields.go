package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the generator provider.
	FieldProvider = "generator"
	// FieldModel is the structured log field key for the model identifier.
	FieldModel = "model"
	// FieldStep is the structured log field key for the wizard step name.
	FieldStep = "wizard_step"
	// FieldStepIndex is the structured log field key for the 1-based step position.
	FieldStepIndex = "wizard_step_index"
	// FieldPhase is the structured log field key for the wizard phase.
	FieldPhase = "wizard_phase"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// GeneratorFields describes which generator and model served a request.
func GeneratorFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// StepFields describes the wizard position. index is 0-based; the logged
// position is "index+1/total".
func StepFields(index, total int, step, phase string) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldStep, Value: step},
		StringField{Key: FieldPhase, Value: phase},
	)
	if total > 0 {
		fields = append(fields, zap.Int(FieldStepIndex, index+1), zap.Int("wizard_steps", total))
	}
	return fields
}
