package cmd

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const weatherCSV = `outlook,temp,play
sunny,30,no
sunny,25,no
rain,20,yes
rain,15,yes
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestFitCommand(t *testing.T) {
	data := writeTemp(t, "weather.csv", weatherCSV)
	dir := t.TempDir()
	dot := filepath.Join(dir, "tree.dot")
	png := filepath.Join(dir, "importances.png")

	stdout, stderr, err := run(t, "fit",
		"--data", data, "--label", "play",
		"--dot", dot, "--importances", png,
		"--log-format", "json")
	if err != nil {
		t.Fatalf("fit failed: %v\n%s", err, stderr)
	}

	for _, want := range []string{
		"nodes: 3 leaves: 2 depth: 1",
		"[0] Splitting on outlook=rain (samples=4)",
		"  [1] Predicting: yes (samples=2)",
		"  [2] Predicting: no (samples=2)",
		"positive class: no",
		"accuracy     1.000",
		"auc          1.000",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stderr, "Tree fitted") {
		t.Errorf("stderr missing fit log:\n%s", stderr)
	}

	raw, err := os.ReadFile(dot)
	if err != nil {
		t.Fatalf("DOT file not written: %v", err)
	}
	if !strings.Contains(string(raw), "digraph") {
		t.Errorf("unexpected DOT content:\n%s", raw)
	}
	if _, err := os.Stat(png); err != nil {
		t.Errorf("importance chart not written: %v", err)
	}
}

func TestFitCommandTestLabelsTrimmed(t *testing.T) {
	data := writeTemp(t, "weather.csv", weatherCSV)
	test := writeTemp(t, "test.csv", "outlook,temp,play\nsunny ,30,no \nrain,20,yes  \n")

	stdout, stderr, err := run(t, "fit", "-d", data, "-l", "play", "--test", test, "-q")
	if err != nil {
		t.Fatalf("fit failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "accuracy     1.000") {
		t.Errorf("trailing spaces in labels should not count as errors:\n%s", stdout)
	}
}

func TestFitCommandRegression(t *testing.T) {
	data := writeTemp(t, "steps.csv", "x,y\n1,1\n2,1\n3,5\n4,5\n5,5\n")

	stdout, _, err := run(t, "fit", "-d", data, "-l", "y", "-t", "regression", "--quiet")
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	for _, want := range []string{"mse          0.000", "r2           1.000"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "Splitting on") {
		t.Errorf("--quiet should not print the tree:\n%s", stdout)
	}
}

func TestFitCommandSchema(t *testing.T) {
	data := writeTemp(t, "sizes.csv", "size,label\n1,a\n2,a\n1,b\n2,b\n")
	schema := writeTemp(t, "schema.yaml", "features:\n  size: continuous\n")

	stdout, _, err := run(t, "fit", "-d", data, "-l", "label", "--schema", schema, "--log-level", "error")
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	// size declared continuous splits on a numeric threshold
	if !strings.Contains(stdout, "size=1.5") {
		t.Errorf("expected a numeric split on size:\n%s", stdout)
	}
}

func TestFitCommandSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE weather (outlook TEXT, temp REAL, play TEXT)`,
		`INSERT INTO weather VALUES ('sunny', 30, 'no'), ('sunny', 25, 'no'), ('rain', 20, 'yes'), ('rain', 15, 'yes')`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	db.Close()

	stdout, stderr, err := run(t, "fit", "-d", path, "--table", "weather", "-l", "play", "-q")
	if err != nil {
		t.Fatalf("fit failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "nodes: 3 leaves: 2 depth: 1") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestFitCommandProfile(t *testing.T) {
	data := writeTemp(t, "weather.csv", weatherCSV)
	dir := t.TempDir()

	if _, stderr, err := run(t, "fit", "-d", data, "-l", "play", "-q", "--profile", dir); err != nil {
		t.Fatalf("fit failed: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "cpu.pprof")); err != nil {
		t.Errorf("cpu profile not written: %v", err)
	}
}

func TestPredictCommand(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		label string
		task  string
		input string
		want  string
	}{
		{
			name:  "classification",
			data:  weatherCSV,
			label: "play",
			task:  "classification",
			input: "outlook\nrain\nsunny\n",
			want:  "play\nyes\nno\n",
		},
		{
			name:  "regression",
			data:  "x,y\n1,1\n2,1\n3,5\n4,5\n",
			label: "y",
			task:  "regression",
			input: "x\n1.5\n3.7\n",
			want:  "y\n1\n5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := writeTemp(t, "train.csv", tt.data)
			input := writeTemp(t, "input.csv", tt.input)

			stdout, _, err := run(t, "predict", "-d", data, "-l", tt.label, "-t", tt.task, "-i", input,
				"--log-level", "error")
			if err != nil {
				t.Fatalf("predict failed: %v", err)
			}
			if stdout != tt.want {
				t.Errorf("predict output = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestPredictCommandMissingFeature(t *testing.T) {
	data := writeTemp(t, "weather.csv", weatherCSV)
	input := writeTemp(t, "input.csv", "temp\n20\n")

	_, _, err := run(t, "predict", "-d", data, "-l", "play", "-i", input, "--log-level", "error")
	if err == nil || !strings.Contains(err.Error(), "outlook") {
		t.Errorf("expected missing feature error naming outlook, got %v", err)
	}
}

func TestCommandErrors(t *testing.T) {
	data := writeTemp(t, "weather.csv", weatherCSV)

	tests := []struct {
		name string
		args []string
	}{
		{"missing data flag", []string{"fit", "--label", "play"}},
		{"unknown task", []string{"fit", "-d", data, "-l", "play", "-t", "clustering"}},
		{"unknown label", []string{"fit", "-d", data, "-l", "missing"}},
		{"negative depth", []string{"fit", "-d", data, "-l", "play", "--max-depth", "-1"}},
		{"bad log level", []string{"fit", "-d", data, "-l", "play", "--log-level", "loud"}},
		{"missing file", []string{"fit", "-d", filepath.Join(t.TempDir(), "none.csv"), "-l", "play"}},
		{"database without table", []string{"fit", "-d", filepath.Join(t.TempDir(), "weather.db"), "-l", "play"}},
		{"missing database", []string{"fit", "-d", filepath.Join(t.TempDir(), "none.db"), "--table", "weather", "-l", "play"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if stdout != "scitree dev\n" {
		t.Errorf("version output = %q", stdout)
	}
}
