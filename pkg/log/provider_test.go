package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

func TestZerologProviderJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, false)
	p.SetLevel(LevelDebug)

	logger := p.GetLoggerWithName("tree.builder").With(ModelNameKey, "DecisionTreeClassifier")
	logger.Debug("Split selected",
		SplitFeatureKey, "Outlook",
		SplitThresholdKey, 0.0,
		SplitScoreKey, 0.375,
		NodeIDKey, 3,
	)

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not a single JSON object: %v (%q)", err, buf.String())
	}

	want := map[string]interface{}{
		"level":         "debug",
		"message":       "Split selected",
		ComponentKey:    "tree.builder",
		ModelNameKey:    "DecisionTreeClassifier",
		SplitFeatureKey: "Outlook",
		SplitScoreKey:   0.375,
		NodeIDKey:       3.0,
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestZerologProviderLevel(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, false)
	p.SetLevel(LevelWarn)

	logger := p.GetLogger()
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record emitted at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %s", out)
	}
	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("error should be enabled")
	}
}

func TestZerologBareError(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, false)

	p.GetLogger().Error("Prediction failed", scierrors.New("boom"), OperationKey, OperationPredict)

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
	if entry[OperationKey] != OperationPredict {
		t.Errorf("%s = %v", OperationKey, entry[OperationKey])
	}
}

func TestSetupFormats(t *testing.T) {
	defer SetProvider(NewZerologProvider(&bytes.Buffer{}, true))

	tests := []struct {
		name    string
		format  string
		level   string
		wantErr bool
		wantKey string
	}{
		{name: "json", format: FormatJSON, level: "info", wantKey: `"message":"hello"`},
		{name: "cloud", format: FormatCloud, level: "debug", wantKey: `"severity":"INFO"`},
		{name: "bad format", format: "xml", level: "info", wantErr: true},
		{name: "bad level", format: FormatJSON, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Setup(tt.format, tt.level, &buf)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				var ve *scierrors.ValidationError
				if !scierrors.As(err, &ve) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			GetLoggerWithName("cli").Info("hello")
			if !strings.Contains(buf.String(), tt.wantKey) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.wantKey)
			}
		})
	}
}

func TestCloudHandlerStacktrace(t *testing.T) {
	var buf bytes.Buffer
	p := NewSlogProvider(&buf)

	p.GetLogger().Error("Fit failed", scierrors.NewValueError("Fit", "y has 3 classes"))

	out := buf.String()
	if !strings.Contains(out, `"`+StacktraceAttrKey+`"`) {
		t.Errorf("expected stacktrace attribute in %s", out)
	}
	if !strings.Contains(out, "y has 3 classes") {
		t.Errorf("expected error message in %s", out)
	}
}

func TestWarningsRoutedToProvider(t *testing.T) {
	tp, _ := NewTestLoggerProvider(LevelDebug)
	SetProvider(tp)
	defer SetProvider(NewZerologProvider(&bytes.Buffer{}, true))

	scierrors.Warn(scierrors.NewUndefinedMetricWarning("precision", "no positive predictions", 0))

	if !tp.Logger().ContainsField(ComponentKey, "warnings") {
		t.Error("warning was not logged through the provider")
	}
	if !tp.Logger().ContainsMessage("precision") {
		t.Error("warning message missing")
	}
}
