package projections

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/crypto/blake2b"

	"planner/internal/domain/activity"
	"planner/internal/domain/stats"
)

// ExportFormat selects the rendering of the weekly plan.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatHTML     ExportFormat = "html"
)

// ErrInvalidFormat is returned for an unknown export format.
var ErrInvalidFormat = errors.New("format must be markdown or html")

// ParseExportFormat validates a format name. Empty means markdown.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", ErrInvalidFormat
}

// exportRenderer renders GFM so task lists and the summary table survive.
// Raw HTML in titles is omitted since WithUnsafe is not set.
var exportRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ExportWeekQuery carries input for the weekly export projection.
type ExportWeekQuery struct {
	Date      string // any YYYY-MM-DD inside the week; empty means Now
	Format    string
	WeekStart time.Weekday
	Now       time.Time
}

// ExportWeekResult is a rendered weekly plan document.
type ExportWeekResult struct {
	Filename    string
	ContentType string
	Body        []byte
	ETag        string // quoted blake2b-256 digest of Body
}

// ExportWeekDeps holds dependencies for the weekly export projection.
type ExportWeekDeps struct {
	ActivityStore ActivityStore
	CategoryStore CategoryStore
}

// QueryExportWeek renders the week containing query.Date as a Markdown or HTML document.
// PRE: query.Date is empty or YYYY-MM-DD; query.Format is empty, markdown or html
// POST: Body lists each day's activities with a completion checkbox, then a per-category summary
func QueryExportWeek(ctx context.Context, query ExportWeekQuery, deps ExportWeekDeps) (ExportWeekResult, error) {
	format, err := ParseExportFormat(query.Format)
	if err != nil {
		return ExportWeekResult{}, err
	}

	week, err := QueryGetWeek(ctx, GetWeekQuery{
		Date:      query.Date,
		WeekStart: query.WeekStart,
		Now:       query.Now,
	}, GetWeekDeps(deps))
	if err != nil {
		return ExportWeekResult{}, err
	}

	md := renderWeekMarkdown(week)
	base := fmt.Sprintf("planner-%s-to-%s", week.StartDate, week.EndDate)

	result := ExportWeekResult{
		Filename:    base + ".md",
		ContentType: "text/markdown; charset=utf-8",
		Body:        md,
	}
	if format == FormatHTML {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
		buf.WriteString(weekTitle(week))
		buf.WriteString("</title></head><body>\n")
		if err := exportRenderer.Convert(md, &buf); err != nil {
			return ExportWeekResult{}, fmt.Errorf("render export html: %w", err)
		}
		buf.WriteString("</body></html>\n")
		result.Filename = base + ".html"
		result.ContentType = "text/html; charset=utf-8"
		result.Body = buf.Bytes()
	}

	sum := blake2b.Sum256(result.Body)
	result.ETag = `"` + hex.EncodeToString(sum[:]) + `"`
	return result, nil
}

func weekTitle(week GetWeekResult) string {
	return fmt.Sprintf("Planner %s to %s", week.StartDate, week.EndDate)
}

func renderWeekMarkdown(week GetWeekResult) []byte {
	names := categoryNames(week.Categories)
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n", weekTitle(week))

	var all []activity.Activity
	for _, day := range week.Days {
		fmt.Fprintf(&b, "\n## %s %s\n\n", day.Weekday, day.Date)
		if len(day.Activities) == 0 {
			b.WriteString("_Nothing planned._\n")
			continue
		}
		for _, a := range day.Activities {
			mark := " "
			if a.Completed {
				mark = "x"
			}
			name, ok := names[a.CategoryID]
			if !ok {
				name = a.CategoryID
			}
			fmt.Fprintf(&b, "- [%s] %s–%s %s (%s)\n", mark, a.StartTime, a.EndTime, escapeMarkdown(a.Title), escapeMarkdown(name))
		}
		all = append(all, day.Activities...)
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Category | Activities | Planned | Completed | Rate |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, s := range stats.ComputeCategoryStats(all, week.Categories) {
		if s.TotalActivities == 0 {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d/%d | %s | %s | %.0f%% |\n",
			escapeMarkdown(s.Category.Name), s.CompletedActivities, s.TotalActivities,
			stats.FormatMinutes(s.TotalMinutes), stats.FormatMinutes(s.CompletedMinutes), s.CompletionRate)
	}
	return b.Bytes()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`[`, `\[`, `]`, `\]`, `|`, `\|`, `<`, `\<`, `#`, `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
