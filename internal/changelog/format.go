package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/dailyrelease/internal/forge"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// SectionStyle defines the color and icon for a changelog section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps section names to their terminal styling.
var sectionStyles = map[string]SectionStyle{
	SectionChanged:       {Color: color.New(color.FgBlue), Icon: "~"},
	SectionFixed:         {Color: color.New(color.FgYellow), Icon: "⚡"},
	SectionDocumentation: {Color: color.New(color.FgCyan), Icon: "✎"},
	SectionUpdated:       {Color: color.New(color.FgGreen), Icon: "↑"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes the grouped pull requests of a release to w with
// terminal styling. Empty sections are omitted.
func FormatTerminal(release string, grouped GroupedPulls, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeReleaseHeader(release, grouped.Count(), w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	sections := grouped.Sections()
	for _, name := range SectionNames() {
		pulls := sections[name]
		if len(pulls) == 0 {
			continue
		}
		if err := writeSection(name, pulls, w, opts, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", name, err)
		}
	}

	return nil
}

// writeReleaseHeader writes the release header line.
func writeReleaseHeader(release string, count int, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s (%d pull requests)", release, count)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeSection writes a single section with its pull requests.
func writeSection(name string, pulls []forge.PullRequest, w io.Writer, opts FormatOptions, width int) error {
	style := sectionStyles[name]

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", name); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(name)); err != nil {
			return err
		}
	}

	for _, pull := range pulls {
		if err := writePull(pull, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writePull writes a single pull request line with optional wrapping.
func writePull(pull forge.PullRequest, style SectionStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := pullLine(pull)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// pullLine renders "#12 Title (@author)".
func pullLine(pull forge.PullRequest) string {
	line := fmt.Sprintf("#%d %s", pull.Number, pull.Title)
	if pull.Author != "" {
		line += fmt.Sprintf(" (@%s)", pull.Author)
	}
	return line
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
