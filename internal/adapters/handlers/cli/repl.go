package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"tagboard/internal/core/domain"
	"tagboard/internal/core/service/browse"
)

// Browser is the part of the browse service the REPL drives
type Browser interface {
	View() browse.View
	FetchCurrentPage(ctx context.Context) (domain.TagPage, error)
	AwaitCurrentPage(ctx context.Context) error
	Reload()
	OnInvalidate(fn func())
	SetPage(n int) error
	NextPage() error
	PrevPage() error
	SetDraftFilter(text string)
	ApplyFilter()
	CreateTag(ctx context.Context, title string) (*domain.Tag, error)
	Export(ctx context.Context) (*domain.Export, error)
}

// ErrUnknownCommand is returned for input the REPL does not understand
var ErrUnknownCommand = errors.New("unknown command")

const help = `commands:
  page N         go to page N
  next | prev    move one page
  filter TEXT    type TEXT in the search box
  apply          filter by the typed text, back to page 1
  search TEXT    filter + apply
  create TITLE   create a new tag
  export         export the filtered tags as CSV
  refresh        fetch the current page from the API again
  url            print the current query string
  quit`

// REPL is a line based front end of the tag browser
type REPL struct {
	browser Browser
	encode  func() string
	out     io.Writer
	logger  *slog.Logger
}

// NewREPL creates a REPL writing to out. encode returns the current URL query.
func NewREPL(browser Browser, encode func() string, out io.Writer, logger *slog.Logger) *REPL {
	return &REPL{browser: browser, encode: encode, out: out, logger: logger}
}

// Run renders the first page then executes one command per input line until quit, EOF or ctx is done.
// The view is rendered again whenever a tag created elsewhere invalidates the cache.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	invalidated := make(chan struct{}, 1)
	r.browser.OnInvalidate(func() {
		select {
		case invalidated <- struct{}{}:
		default:
		}
	})

	r.refresh(ctx)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(r.out, "> ")
		select {
		case <-ctx.Done():
			return nil
		case <-invalidated:
			fmt.Fprintln(r.out)
			r.refresh(ctx)
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := r.Execute(ctx, line)
			if err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs one command line
func (r *REPL) Execute(ctx context.Context, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(r.out, help)
		return false, nil
	case "url":
		fmt.Fprintf(r.out, "?%s\n", r.encode())
		return false, nil
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("page %q: %w", arg, domain.ErrInvalidPage)
		}
		if err := r.browser.SetPage(n); err != nil {
			return false, err
		}
	case "next":
		if err := r.browser.NextPage(); err != nil {
			return false, err
		}
	case "prev":
		if err := r.browser.PrevPage(); err != nil {
			return false, err
		}
	case "filter":
		r.browser.SetDraftFilter(arg)
		return false, Render(r.out, r.browser.View())
	case "apply":
		r.browser.ApplyFilter()
	case "search":
		r.browser.SetDraftFilter(arg)
		r.browser.ApplyFilter()
	case "create":
		tag, err := r.browser.CreateTag(ctx, arg)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "created %s (%s)\n", tag.Title, tag.ID)
	case "export":
		export, err := r.browser.Export(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "exported %d tag(s), download until %s:\n%s\n",
			export.Items, export.ExpiresAt.Format("15:04:05"), export.URL)
		return false, nil
	case "refresh", "r":
		r.browser.Reload()
	default:
		return false, fmt.Errorf("%w: %s (type help)", ErrUnknownCommand, cmd)
	}

	r.refresh(ctx)
	return false, nil
}

// refresh waits for the current page and renders the view. A stale page is rendered at once,
// then again when its background refetch settles.
func (r *REPL) refresh(ctx context.Context) {
	if _, err := r.browser.FetchCurrentPage(ctx); err != nil {
		r.logger.Debug("fetch failed", "error", err)
	}
	view := r.browser.View()
	r.render(view)
	if !view.IsFetching {
		return
	}

	if err := r.browser.AwaitCurrentPage(ctx); err != nil {
		r.logger.Debug("stopped waiting for refetch", "error", err)
		return
	}
	r.render(r.browser.View())
}

func (r *REPL) render(view browse.View) {
	if err := Render(r.out, view); err != nil {
		r.logger.Error("failed to render", "error", err)
	}
}
