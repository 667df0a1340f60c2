package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/portway/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		isTTY bool
		ci    string
		want  detector.LogFormat
	}{
		{name: "interactive terminal", isTTY: true, ci: "", want: detector.FormatPretty},
		{name: "piped output", isTTY: false, ci: "", want: detector.FormatJSON},
		{name: "ci true", isTTY: true, ci: "true", want: detector.FormatJSON},
		{name: "ci one", isTTY: true, ci: "1", want: detector.FormatJSON},
		{name: "ci false", isTTY: true, ci: "false", want: detector.FormatPretty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Detect(tt.isTTY, tt.ci))
		})
	}
}

func TestResolveLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		detected detector.LogFormat
		flag     string
		want     detector.LogFormat
	}{
		{name: "auto keeps detection", detected: detector.FormatJSON, flag: "auto", want: detector.FormatJSON},
		{name: "empty keeps detection", detected: detector.FormatPretty, flag: "", want: detector.FormatPretty},
		{name: "force pretty", detected: detector.FormatJSON, flag: "pretty", want: detector.FormatPretty},
		{name: "text alias", detected: detector.FormatJSON, flag: "text", want: detector.FormatPretty},
		{name: "force json", detected: detector.FormatPretty, flag: "json", want: detector.FormatJSON},
		{name: "unknown", detected: detector.FormatPretty, flag: "xml", want: detector.FormatPretty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveLogFormat(tt.detected, tt.flag))
		})
	}
}

func TestDetectLogFormat_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.FormatJSON, detector.DetectLogFormat())
}
