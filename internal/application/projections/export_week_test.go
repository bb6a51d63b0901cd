package projections

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"planner/internal/domain/activity"
	"planner/internal/domain/category"
)

func exportFixture() *memStore {
	return &memStore{
		activities: []activity.Activity{
			act("a1", "work", "2024-01-01", "09:00", "10:00", "Standup", true),
			act("a2", "sport", "2024-01-02", "18:00", "19:30", "Run <script>", false),
		},
		categories: category.Defaults,
	}
}

func TestQueryExportWeek_Markdown(t *testing.T) {
	store := exportFixture()
	res, err := QueryExportWeek(context.Background(), ExportWeekQuery{Date: "2024-01-03", WeekStart: time.Monday, Now: wednesday},
		ExportWeekDeps{ActivityStore: store, CategoryStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Filename != "planner-2024-01-01-to-2024-01-07.md" {
		t.Errorf("filename = %s", res.Filename)
	}
	if !strings.HasPrefix(res.ContentType, "text/markdown") {
		t.Errorf("content type = %s", res.ContentType)
	}
	body := string(res.Body)
	for _, want := range []string{
		"# Planner 2024-01-01 to 2024-01-07",
		"## Monday 2024-01-01",
		"- [x] 09:00–10:00 Standup (Work)",
		"- [ ] 18:00–19:30 Run \\<script> (Sport)",
		"| Work | 1/1 | 1h | 1h | 100% |",
		"| Sport | 0/1 | 1h 30min | 0h | 0% |",
		"_Nothing planned._",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("markdown missing %q\n%s", want, body)
		}
	}
	if strings.Contains(body, "| Leisure |") {
		t.Error("categories without activities should be left out of the summary")
	}
	if len(res.ETag) != 66 || res.ETag[0] != '"' {
		t.Errorf("etag = %s, want quoted 64-hex digest", res.ETag)
	}
}

func TestQueryExportWeek_HTML(t *testing.T) {
	store := exportFixture()
	res, err := QueryExportWeek(context.Background(), ExportWeekQuery{Date: "2024-01-03", Format: "html", WeekStart: time.Monday, Now: wednesday},
		ExportWeekDeps{ActivityStore: store, CategoryStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Filename != "planner-2024-01-01-to-2024-01-07.html" {
		t.Errorf("filename = %s", res.Filename)
	}
	body := string(res.Body)
	for _, want := range []string{"<!DOCTYPE html>", "<table>", `type="checkbox"`, "<h1>Planner 2024-01-01 to 2024-01-07</h1>"} {
		if !strings.Contains(body, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Contains(body, "<script>") {
		t.Error("activity titles must not inject raw HTML")
	}
}

func TestQueryExportWeek_StableETag(t *testing.T) {
	store := exportFixture()
	q := ExportWeekQuery{Date: "2024-01-03", WeekStart: time.Monday, Now: wednesday}
	deps := ExportWeekDeps{ActivityStore: store, CategoryStore: store}

	first, err := QueryExportWeek(context.Background(), q, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := QueryExportWeek(context.Background(), q, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ETag != second.ETag {
		t.Error("same content must produce the same etag")
	}

	store.activities[1].Completed = true
	third, err := QueryExportWeek(context.Background(), q, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.ETag == first.ETag {
		t.Error("changed content must change the etag")
	}
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in   string
		want ExportFormat
		err  error
	}{
		{"", FormatMarkdown, nil},
		{"md", FormatMarkdown, nil},
		{"Markdown", FormatMarkdown, nil},
		{"html", FormatHTML, nil},
		{"pdf", "", ErrInvalidFormat},
	}
	for _, tt := range tests {
		got, err := ParseExportFormat(tt.in)
		if got != tt.want || !errors.Is(err, tt.err) {
			t.Errorf("ParseExportFormat(%q) = %q, %v; want %q, %v", tt.in, got, err, tt.want, tt.err)
		}
	}
}
