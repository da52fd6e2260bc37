package debugger

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
)

// maxLoggedOutput caps how much raw model text is logged.
const maxLoggedOutput = 8 << 10

// LogModelOutput records raw model output at debug level, pretty-printed
// when it is JSON. It is a no-op unless debug logging is enabled.
func LogModelOutput(logger *zap.Logger, label string, output string) {
	if logger == nil || !logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	if len(output) > maxLoggedOutput {
		output = output[:maxLoggedOutput]
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(output), "", "  "); err == nil {
		logger.Debug("Model output", zap.String("label", label), zap.String("json", pretty.String()))
		return
	}
	logger.Debug("Model output", zap.String("label", label), zap.String("raw", output))
}
