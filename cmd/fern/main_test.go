package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fern/internal/diagfmt"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// chdir переходит в пустой каталог, чтобы fern.toml из окружения не влиял на тест.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	// пустой конфиг останавливает поиск вверх по дереву
	writeSource(t, dir, "fern.toml", "")
	return dir
}

func TestRootFallback(t *testing.T) {
	code, stdout, stderr := runCLI(t)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	if stdout != "Parse tree: (program <EOF>)\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if stderr != "" {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRootMissingFile(t *testing.T) {
	chdir(t)
	code, stdout, stderr := runCLI(t, "missing.fern")
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if stdout != "" {
		t.Fatalf("stdout = %q", stdout)
	}
	if stderr != "Error: Could not open input file 'missing.fern'\n" {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRootDiagnostics(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.fern", "x = [1, 2\ny)")
	code, stdout, stderr := runCLI(t, path)
	if code != 0 {
		t.Fatalf("syntax errors must not change the exit code, got %d", code)
	}
	wantErr := "2:1 extraneous input ')' expecting ']'\n" +
		"2:2 missing ']' at '<EOF>'\n"
	if stderr != wantErr {
		t.Fatalf("stderr:\n got %q\nwant %q", stderr, wantErr)
	}
	wantOut := "Parse tree: (program x = (group [ 1 , 2 y ) <missing ']'>) <EOF>)\n"
	if stdout != wantOut {
		t.Fatalf("stdout:\n got %q\nwant %q", stdout, wantOut)
	}
}

func TestRootUnknownFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "--bogus")
	if code != 1 || !strings.HasPrefix(stderr, "Exception: ") {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
}

func TestRootTimings(t *testing.T) {
	code, _, stderr := runCLI(t, "--timings")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.HasPrefix(stderr, "timings:\n") || !strings.Contains(stderr, "lex+parse") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRootTraceToStderr(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--trace", "-", "--trace-format", "ndjson")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if stdout != "Parse tree: (program <EOF>)\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) == 0 {
		t.Fatalf("no trace output")
	}
	for _, line := range lines {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("trace line %q is not JSON: %v", line, err)
		}
	}
	if !strings.Contains(stderr, `"lex+parse"`) {
		t.Fatalf("phase span missing: %s", stderr)
	}
}

func TestTokenizeJSON(t *testing.T) {
	chdir(t)
	path := writeSource(t, t.TempDir(), "t.fern", "a(b)")
	code, stdout, stderr := runCLI(t, "tokenize", "--format", "json", path)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	var tokens []map[string]any
	if err := json.Unmarshal([]byte(stdout), &tokens); err != nil {
		t.Fatalf("stdout is not a JSON array: %v\n%s", err, stdout)
	}
	if len(tokens) != 5 {
		t.Fatalf("tokens = %d, want 5", len(tokens))
	}
}

func TestParseCommand(t *testing.T) {
	chdir(t)
	dir := t.TempDir()
	ok := writeSource(t, dir, "ok.fern", "f(x)")
	bad := writeSource(t, dir, "bad.fern", "f(x")

	code, stdout, stderr := runCLI(t, "parse", ok)
	if code != 0 || stdout != "(program f (group ( x )) <EOF>)\n" || stderr != "" {
		t.Fatalf("ok: exit = %d stdout = %q stderr = %q", code, stdout, stderr)
	}

	code, stdout, stderr = runCLI(t, "parse", "--color", "off", bad)
	if code != 1 {
		t.Fatalf("bad: exit = %d", code)
	}
	if !strings.Contains(stdout, "<missing ')'>") {
		t.Fatalf("bad: tree still expected, got %q", stdout)
	}
	if !strings.Contains(stderr, "missing ')' at '<EOF>'") || strings.Contains(stderr, "Exception") {
		t.Fatalf("bad: stderr = %q", stderr)
	}

	code, _, stderr = runCLI(t, "parse", "--format", "xml", ok)
	if code != 1 || !strings.Contains(stderr, "Exception: unknown format: xml") {
		t.Fatalf("bad format: exit = %d stderr = %q", code, stderr)
	}
}

func TestParseMsgpack(t *testing.T) {
	chdir(t)
	path := writeSource(t, t.TempDir(), "a.fern", "[x]")
	var out, errOut bytes.Buffer
	if code := run([]string{"parse", "--format", "msgpack", path}, &out, &errOut); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut.String())
	}
	root, err := diagfmt.DecodeTreeMsgpack(&out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if root.Rule != "program" || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
}

func TestParseFormatFromConfig(t *testing.T) {
	dir := chdir(t)
	writeSource(t, dir, "fern.toml", "[parse]\nformat = \"json\"\n")
	path := writeSource(t, dir, "a.fern", "x")
	code, stdout, stderr := runCLI(t, "parse", path)
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	if !json.Valid([]byte(stdout)) {
		t.Fatalf("expected JSON output, got %q", stdout)
	}

	// флаг важнее файла
	code, stdout, _ = runCLI(t, "parse", "--format", "sexpr", path)
	if code != 0 || stdout != "(program x <EOF>)\n" {
		t.Fatalf("flag override: exit = %d stdout = %q", code, stdout)
	}
}

func TestBadConfig(t *testing.T) {
	dir := chdir(t)
	writeSource(t, dir, "fern.toml", "[diagnostics]\ncolor = \"rainbow\"\n")
	path := writeSource(t, dir, "a.fern", "x")
	code, _, stderr := runCLI(t, "parse", path)
	if code != 1 || !strings.HasPrefix(stderr, "Exception: ") {
		t.Fatalf("exit = %d stderr = %q", code, stderr)
	}
}

func TestCheckCommand(t *testing.T) {
	chdir(t)
	dir := t.TempDir()
	writeSource(t, dir, "a.fern", "(a)")
	writeSource(t, dir, "b.fern", "(b")

	code, stdout, stderr := runCLI(t, "check", "--ui", "off", "--color", "off", dir)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	wantOut := filepath.Join(dir, "a.fern") + ": ok\n" +
		filepath.Join(dir, "b.fern") + ": 1 error\n" +
		"checked 2 files, 1 error\n"
	if stdout != wantOut {
		t.Fatalf("stdout:\n got %q\nwant %q", stdout, wantOut)
	}
	if !strings.Contains(stderr, "missing ')'") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestCheckClean(t *testing.T) {
	chdir(t)
	path := writeSource(t, t.TempDir(), "a.fern", "{}")
	code, stdout, _ := runCLI(t, "check", "--ui", "off", path)
	if code != 0 || stdout != path+": ok\nchecked 1 file, 0 errors\n" {
		t.Fatalf("exit = %d stdout = %q", code, stdout)
	}
}

func TestCheckCache(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeSource(t, t.TempDir(), "a.fern", "(")

	if code, _, _ := runCLI(t, "check", "--ui", "off", "--cache", path); code != 1 {
		t.Fatalf("first run exit = %d", code)
	}
	code, stdout, _ := runCLI(t, "check", "--ui", "off", "--cache", path)
	if code != 1 || !strings.Contains(stdout, ": 1 error (cached)") {
		t.Fatalf("second run exit = %d stdout = %q", code, stdout)
	}
}

func TestCheckSummaryCountsDropped(t *testing.T) {
	chdir(t)
	path := writeSource(t, t.TempDir(), "a.fern", "] ]")
	code, stdout, stderr := runCLI(t, "check", "--ui", "off", "--color", "off", "--max-diagnostics", "1", path)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if want := path + ": 2 errors\nchecked 1 file, 2 errors\n"; stdout != want {
		t.Fatalf("stdout:\n got %q\nwant %q", stdout, want)
	}
	if strings.Count(stderr, "extraneous input") != 1 {
		t.Fatalf("only one diagnostic should be printed, stderr = %q", stderr)
	}
}

func TestDiagnosticsJSON(t *testing.T) {
	chdir(t)
	path := writeSource(t, t.TempDir(), "bad.fern", "f(x")
	code, stdout, stderr := runCLI(t, "parse", "--diagnostics-format", "json", path)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout, "<missing ')'>") {
		t.Fatalf("tree still expected, got %q", stdout)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stderr), &out); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, stderr)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "SYN2002" || out.Diagnostics[0].Location.Line != 1 || out.Diagnostics[0].Location.Column != 3 {
		t.Fatalf("diagnostics = %+v", out)
	}

	code, _, stderr = runCLI(t, "parse", "--diagnostics-format", "xml", path)
	if code != 1 || !strings.Contains(stderr, "invalid --diagnostics-format") {
		t.Fatalf("bad value: exit = %d stderr = %q", code, stderr)
	}
}

func TestDiagnosticsFormatFromConfig(t *testing.T) {
	dir := chdir(t)
	writeSource(t, dir, "fern.toml", "[diagnostics]\nformat = \"json\"\n")
	writeSource(t, dir, "a.fern", "{}")
	writeSource(t, dir, "b.fern", "] ]")
	code, _, stderr := runCLI(t, "check", "--ui", "off", "--max-diagnostics", "1", dir)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stderr), &out); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, stderr)
	}
	if out.Count != 1 || out.Dropped != 1 {
		t.Fatalf("count = %d dropped = %d", out.Count, out.Dropped)
	}

	// чистый запуск тоже даёт разбираемый JSON
	code, _, stderr = runCLI(t, "check", "--ui", "off", filepath.Join(dir, "a.fern"))
	if code != 0 || !json.Valid([]byte(stderr)) {
		t.Fatalf("clean: exit = %d stderr = %q", code, stderr)
	}
}

func TestCheckBadUIMode(t *testing.T) {
	chdir(t)
	code, _, stderr := runCLI(t, "check", "--ui", "maybe", ".")
	if code != 1 || !strings.Contains(stderr, "invalid --ui value") {
		t.Fatalf("exit = %d stderr = %q", code, stderr)
	}
}

func TestVersionJSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--format", "json")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	var payload struct {
		Tool    string `json:"tool"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "fern" || payload.Version == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestRootFileNamedLikeCommand(t *testing.T) {
	dir := chdir(t)
	writeSource(t, dir, "version", "(a\n")
	code, stdout, stderr := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	if stdout != "Parse tree: (program (group ( a <missing ')'>) <EOF>)\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if stderr != "2:0 missing ')' at '<EOF>'\n" {
		t.Fatalf("stderr = %q", stderr)
	}

	// с флагами имя остаётся подкомандой
	code, stdout, _ = runCLI(t, "version", "--format", "json")
	if code != 0 || !strings.Contains(stdout, `"tool"`) {
		t.Fatalf("version subcommand shadowed: exit = %d, stdout = %q", code, stdout)
	}
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in   string
		want switchMode
		err  bool
	}{
		{"", modeAuto, false},
		{"AUTO", modeAuto, false},
		{" on ", modeOn, false},
		{"off", modeOff, false},
		{"yes", "", true},
	}
	for _, tt := range tests {
		got, err := parseSwitch("ui", tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("parseSwitch(%q) = %q, %v", tt.in, got, err)
		}
	}
	if modeAuto.enabled(&bytes.Buffer{}) {
		t.Errorf("a buffer is not a terminal")
	}
	if !modeOn.enabled(&bytes.Buffer{}) || modeOff.enabled(&bytes.Buffer{}) {
		t.Errorf("on/off must ignore the writer")
	}
}

func TestColorFlagCaseInsensitive(t *testing.T) {
	chdir(t)
	path := writeSource(t, t.TempDir(), "a.fern", "x")
	if code, _, stderr := runCLI(t, "parse", "--color", "OFF", path); code != 0 {
		t.Fatalf("exit = %d stderr = %q", code, stderr)
	}
	code, _, stderr := runCLI(t, "parse", "--color", "rainbow", path)
	if code != 1 || !strings.Contains(stderr, "invalid --color value") {
		t.Fatalf("exit = %d stderr = %q", code, stderr)
	}
}

func TestRootProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	code, stdout, stderr := runCLI(t, "--cpu-profile", cpu, "--mem-profile", mem)
	if code != 0 || stdout != "Parse tree: (program <EOF>)\n" || stderr != "" {
		t.Fatalf("exit = %d stdout = %q stderr = %q", code, stdout, stderr)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("%s not written: %v", p, err)
		}
	}
}
