package cli

import (
	"fmt"
	"io"
	"strings"
	"tagboard/internal/core/service/browse"
	"text/tabwriter"
)

// Render writes the tag table, the pagination line and the last error.
// Nothing is written before the first response ever settled.
func Render(w io.Writer, v browse.View) error {
	if v.IsLoading {
		return nil
	}

	title := "Tags"
	if v.IsFetching {
		title += " (loading...)"
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	if v.Filter != "" || v.Draft != "" {
		line := fmt.Sprintf("filter: %q", v.Filter)
		if v.Draft != v.Filter {
			line += fmt.Sprintf(" (draft %q, type apply)", v.Draft)
		}
		fmt.Fprintln(w, line)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tID\tAMOUNT OF VIDEOS")
	if v.Data != nil {
		for _, tag := range v.Data.Data {
			fmt.Fprintf(tw, "%s\t%s\t%d vídeo(s)\n", tag.Title, tag.ID, tag.AmountOfVideos)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if v.Pagination != nil {
		fmt.Fprintln(w, paginationLine(v))
	}
	if v.Err != nil {
		fmt.Fprintf(w, "error: %v\n", v.Err)
	}
	return nil
}

func paginationLine(v browse.View) string {
	p := v.Pagination
	shown := 0
	if v.Data != nil {
		shown = len(v.Data.Data)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d items", shown, p.Items)
	fmt.Fprintf(&b, " | page %d of %d", p.Page, p.Pages)
	if p.HasPrev {
		b.WriteString(" | prev")
	}
	if p.HasNext {
		b.WriteString(" | next")
	}
	return b.String()
}
