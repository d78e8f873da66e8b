package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Fauzanjr07/File-Renamer/internal/config"
	"github.com/Fauzanjr07/File-Renamer/internal/mapping"
	"github.com/Fauzanjr07/File-Renamer/internal/naming"
	"github.com/Fauzanjr07/File-Renamer/internal/planner"
	"github.com/Fauzanjr07/File-Renamer/internal/scan"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func read(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(b)
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	names, err := scan.ListNames(dir)
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(names)
	return names
}

func testConfig(dir string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Dir = dir
	cfg.Prefix = "IMG"
	cfg.ColorMode = config.ColorNever
	return cfg
}

func TestRun_SequentialRename(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "img2.jpg", "two")
	write(t, dir, "img10.jpg", "ten")
	write(t, dir, "img1.jpg", "one")
	write(t, dir, "notes.txt", "keep me")

	cfg := testConfig(dir)
	stats, err := Run(context.Background(), &cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 3 || stats.Failed != 0 {
		t.Errorf("stats: %+v", stats)
	}

	want := []string{"IMG_001.jpg", "IMG_002.jpg", "IMG_003.jpg", "notes.txt"}
	if got := listNames(t, dir); !sliceEqual(got, want) {
		t.Errorf("files: got %v, want %v", got, want)
	}
	// Natural scan order maps img1 to the first counter.
	if got := read(t, dir, "IMG_001.jpg"); got != "one" {
		t.Errorf("IMG_001.jpg content: got %q, want one", got)
	}
	if got := read(t, dir, "IMG_003.jpg"); got != "ten" {
		t.Errorf("IMG_003.jpg content: got %q, want ten", got)
	}
}

func TestRun_StartOffset(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.jpg", "a")
	write(t, dir, "b.jpg", "b")

	cfg := testConfig(dir)
	cfg.Start = 5
	if _, err := Run(context.Background(), &cfg, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	want := []string{"IMG_005.jpg", "IMG_006.jpg"}
	if got := listNames(t, dir); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRun_PatternMode(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"c.png", "a.png", "b.png"} {
		write(t, dir, n, n)
	}

	cfg := testConfig(dir)
	cfg.Pattern = "test_board_{n:03d}"
	cfg.Exts = config.ParseExtList("png")
	if _, err := Run(context.Background(), &cfg, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	want := []string{"test_board_001.png", "test_board_002.png", "test_board_003.png"}
	if got := listNames(t, dir); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRun_DryRunDoesNotMutate(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "img1.jpg", "one")
	write(t, dir, "img2.jpg", "two")
	before := snapshot(t, dir)

	cfg := testConfig(dir)
	cfg.DryRun = true
	stats, err := Run(context.Background(), &cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 0 || stats.Failed != 0 {
		t.Errorf("stats: %+v", stats)
	}

	after := snapshot(t, dir)
	if len(before) != len(after) {
		t.Fatalf("file count changed: %d -> %d", len(before), len(after))
	}
	for name, ts := range before {
		if after[name] != ts {
			t.Errorf("%s changed: %v -> %v", name, ts, after[name])
		}
	}
}

func TestRun_BystanderFileReserved(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.png", "batch")
	write(t, dir, "out_001.jpg", "bystander") // on disk, outside the batch

	cfg := testConfig(dir)
	cfg.Exts = config.ParseExtList("png")
	cfg.Pattern = "out_{n:03d}.jpg"
	if _, err := Run(context.Background(), &cfg, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	if got := read(t, dir, "out_001.jpg"); got != "bystander" {
		t.Errorf("bystander clobbered: content %q", got)
	}
	if got := read(t, dir, "out_001_1.jpg"); got != "batch" {
		t.Errorf("batch file: content %q, want batch", got)
	}
}

func TestRun_TargetMatchingLaterBatchMemberName(t *testing.T) {
	// a.jpg sorts first and would be assigned IMG_001.jpg, the current name
	// of the other batch file. Renaming onto it would destroy that file
	// before its own turn, so the name must resolve to a suffixed variant
	// and both contents must survive.
	dir := t.TempDir()
	write(t, dir, "a.jpg", "new shot")
	write(t, dir, "IMG_001.jpg", "precious original")

	cfg := testConfig(dir)
	stats, err := Run(context.Background(), &cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 2 || stats.Failed != 0 {
		t.Errorf("stats: %+v", stats)
	}

	want := []string{"IMG_001_1.jpg", "IMG_002.jpg"}
	if got := listNames(t, dir); !sliceEqual(got, want) {
		t.Fatalf("files: got %v, want %v", got, want)
	}
	if got := read(t, dir, "IMG_002.jpg"); got != "precious original" {
		t.Errorf("IMG_002.jpg content: got %q, want the original", got)
	}
	if got := read(t, dir, "IMG_001_1.jpg"); got != "new shot" {
		t.Errorf("IMG_001_1.jpg content: got %q, want the new shot", got)
	}
}

func TestRun_ApplyCSVCrossingRenames(t *testing.T) {
	// The first row targets the second row's current name. The target must
	// be suffixed instead of overwriting, and no content may be lost.
	dir := t.TempDir()
	write(t, dir, "a.jpg", "first")
	write(t, dir, "b.jpg", "second")

	csvPath := filepath.Join(t.TempDir(), "map.csv")
	rows := []planner.Entry{
		{NameRaw: "a.jpg", NameChange: "b.jpg"},
		{NameRaw: "b.jpg", NameChange: "c.jpg"},
	}
	if err := mapping.Write(csvPath, rows); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(dir)
	cfg.ApplyCSV = csvPath
	stats, err := Run(context.Background(), &cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 2 || stats.Failed != 0 {
		t.Errorf("stats: %+v", stats)
	}

	want := []string{"b_1.jpg", "c.jpg"}
	if got := listNames(t, dir); !sliceEqual(got, want) {
		t.Fatalf("files: got %v, want %v", got, want)
	}
	if got := read(t, dir, "b_1.jpg"); got != "first" {
		t.Errorf("b_1.jpg content: got %q, want first", got)
	}
	if got := read(t, dir, "c.jpg"); got != "second" {
		t.Errorf("c.jpg content: got %q, want second", got)
	}
}

func TestRun_ExportThenApplyMatchesDirectApply(t *testing.T) {
	seed := func(dir string) {
		write(t, dir, "img2.jpg", "two")
		write(t, dir, "img1.jpg", "one")
		write(t, dir, "photo.jpg", "photo")
	}
	direct := t.TempDir()
	viaCSV := t.TempDir()
	seed(direct)
	seed(viaCSV)

	csvPath := filepath.Join(t.TempDir(), "map.csv")

	cfg := testConfig(direct)
	cfg.MapCSV = csvPath
	if _, err := Run(context.Background(), &cfg, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	cfg2 := testConfig(viaCSV)
	cfg2.ApplyCSV = csvPath
	stats, err := Run(context.Background(), &cfg2, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Failed != 0 {
		t.Errorf("apply-csv failures: %+v", stats)
	}

	if got, want := listNames(t, viaCSV), listNames(t, direct); !sliceEqual(got, want) {
		t.Errorf("final sets differ: csv=%v direct=%v", got, want)
	}
}

func TestRun_ApplyCSVCaseInsensitiveMatch(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "photo.jpg", "pic")

	csvPath := filepath.Join(t.TempDir(), "map.csv")
	rows := []planner.Entry{{NameRaw: "PHOTO.JPG", NameChange: "renamed.jpg"}}
	if err := mapping.Write(csvPath, rows); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(dir)
	cfg.ApplyCSV = csvPath
	stats, err := Run(context.Background(), &cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Failed != 0 || stats.Renamed != 1 {
		t.Errorf("stats: %+v", stats)
	}
	if got := read(t, dir, "renamed.jpg"); got != "pic" {
		t.Errorf("content: got %q", got)
	}
}

func TestRun_ApplyCSVMissingSourceRecorded(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "here.jpg", "h")

	csvPath := filepath.Join(t.TempDir(), "map.csv")
	rows := []planner.Entry{
		{NameRaw: "gone.jpg", NameChange: "x.jpg"},
		{NameRaw: "here.jpg", NameChange: "y"},
	}
	if err := mapping.Write(csvPath, rows); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(dir)
	cfg.ApplyCSV = csvPath
	stats, err := Run(context.Background(), &cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("missing row must not be fatal: %v", err)
	}
	if stats.Failed != 1 || stats.Renamed != 1 {
		t.Errorf("stats: %+v", stats)
	}
	// Extension inherited from the source.
	if _, err := os.Stat(filepath.Join(dir, "y.jpg")); err != nil {
		t.Errorf("y.jpg missing: %v", err)
	}
}

func TestRun_MissingDirectoryIsFatal(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "nope"))
	_, err := Run(context.Background(), &cfg, zerolog.Nop())
	if !errors.Is(err, scan.ErrDirectoryNotFound) {
		t.Errorf("got %v, want ErrDirectoryNotFound", err)
	}
}

func TestRun_InvalidPatternIsFatal(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.jpg", "a")
	before := listNames(t, dir)

	cfg := testConfig(dir)
	cfg.Pattern = "no_placeholder"
	_, err := Run(context.Background(), &cfg, zerolog.Nop())
	if !errors.Is(err, naming.ErrInvalidPattern) {
		t.Errorf("got %v, want ErrInvalidPattern", err)
	}
	if got := listNames(t, dir); !sliceEqual(got, before) {
		t.Error("fatal pattern error must not touch the filesystem")
	}
}

func TestRun_UnchangedEntrySkipped(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "IMG_001.jpg", "already")

	cfg := testConfig(dir)
	stats, err := Run(context.Background(), &cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Unchanged != 1 || stats.Renamed != 0 || stats.Failed != 0 {
		t.Errorf("stats: %+v", stats)
	}
	if got := read(t, dir, "IMG_001.jpg"); got != "already" {
		t.Errorf("content: got %q", got)
	}
}

func TestApply_FailureContinuesWithRemaining(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.jpg", "b")

	var stats RunStats
	entries := []planner.Entry{
		{NameRaw: "missing.jpg", NameChange: "x.jpg"}, // source vanished
		{NameRaw: "b.jpg", NameChange: "y.jpg"},
	}
	apply(context.Background(), dir, entries, &stats, zerolog.Nop())

	if stats.Failed != 1 || stats.Renamed != 1 {
		t.Errorf("stats: %+v", stats)
	}
	if len(stats.Errors) != 1 {
		t.Fatalf("errors: %v", stats.Errors)
	}
	var rerr *RenameError
	if !errors.As(stats.Errors[0], &rerr) {
		t.Errorf("error type: %T", stats.Errors[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "y.jpg")); err != nil {
		t.Errorf("later entry not applied: %v", err)
	}
}

func TestApply_RefusesToRenameOntoExistingFile(t *testing.T) {
	// os.Rename silently replaces an existing destination; the executor must
	// catch an occupied target (stale plan, file appeared after the scan)
	// and record a failure instead.
	dir := t.TempDir()
	write(t, dir, "a.jpg", "incoming")
	write(t, dir, "taken.jpg", "keep me")

	var stats RunStats
	entries := []planner.Entry{{NameRaw: "a.jpg", NameChange: "taken.jpg"}}
	apply(context.Background(), dir, entries, &stats, zerolog.Nop())

	if stats.Failed != 1 || stats.Renamed != 0 {
		t.Errorf("stats: %+v", stats)
	}
	if len(stats.Errors) != 1 || !errors.Is(stats.Errors[0], ErrTargetExists) {
		t.Errorf("errors: %v, want ErrTargetExists", stats.Errors)
	}
	if got := read(t, dir, "taken.jpg"); got != "keep me" {
		t.Errorf("destination clobbered: content %q", got)
	}
	if got := read(t, dir, "a.jpg"); got != "incoming" {
		t.Errorf("source touched: content %q", got)
	}
}

func TestApply_CancelledContextStops(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.jpg", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stats RunStats
	apply(ctx, dir, []planner.Entry{{NameRaw: "a.jpg", NameChange: "b.jpg"}}, &stats, zerolog.Nop())
	if stats.Renamed != 0 {
		t.Errorf("stats: %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); err != nil {
		t.Error("file renamed despite cancelled context")
	}
}

// snapshot maps basenames to modification times.
func snapshot(t *testing.T, dir string) map[string]time.Time {
	t.Helper()
	files, err := scan.Scan(dir, config.ParseExtList(config.DefaultExts), config.SortName)
	if err != nil {
		t.Fatal(err)
	}
	m := make(map[string]time.Time, len(files))
	for _, f := range files {
		m[f.Name] = f.ModTime
	}
	return m
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
