package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/anstrom/scanview/internal/classify"
	"github.com/anstrom/scanview/internal/logging"
	"github.com/anstrom/scanview/internal/session"
	"github.com/anstrom/scanview/internal/view"
)

// viewOptions holds the filter and sort flags shared by view and export.
type viewOptions struct {
	tags  []string
	mode  string
	query string
	sort  string
	desc  bool
}

func addViewFlags(flags *pflag.FlagSet, opts *viewOptions) {
	flags.StringSliceVarP(&opts.tags, "tag", "t", nil,
		"Only show hosts with ports in these categories (repeatable, e.g. --tag http --tag ssh)")
	flags.StringVar(&opts.mode, "mode", "", "Combine tags with: or, and (default from config)")
	flags.StringVarP(&opts.query, "query", "q", "", "Free text filter on hostname, IP, service and port")
	flags.StringVar(&opts.sort, "sort", "", "Sort by: none, ip, hostname, portCount (default from config)")
	flags.BoolVar(&opts.desc, "desc", false, "Sort descending")
}

// state builds a validated view state from the configured defaults and flags.
func (o *viewOptions) state() (view.State, error) {
	s := appConfig.ViewState()
	if o.mode != "" {
		s.Mode = view.Mode(o.mode)
	}
	if o.sort != "" {
		s.SortKey = view.SortKey(o.sort)
		s.SortDir = view.Asc
	}
	if o.desc {
		s.SortDir = view.Desc
	}
	s.Query = o.query

	for _, name := range o.tags {
		c, err := classify.ParseCategory(name)
		if err != nil {
			return view.State{}, fmt.Errorf("invalid --tag: %w", err)
		}
		if !slices.Contains(s.Filters, c) {
			s = s.WithFilter(c)
		}
	}

	if err := s.Validate(); err != nil {
		return view.State{}, err
	}
	return s, nil
}

// loadSession merges paths into a new session. Files that fail are reported
// on errOut; an error is returned only when no file could be loaded.
func loadSession(cmd *cobra.Command, paths []string, errOut io.Writer) (*session.Session, error) {
	s := session.New(appConfig, logging.Default(), recorder)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report := s.Load(ctx, paths...)

	for _, f := range report.Failed() {
		fmt.Fprintf(errOut, "%s: %s\n", f.Name, f.Message)
	}
	for _, f := range report.Files {
		if len(f.Skipped) > 0 {
			fmt.Fprintf(errOut, "%s: skipped %d host(s) without an IPv4 address\n", f.Name, len(f.Skipped))
		}
	}

	if report.Loaded() == 0 {
		return nil, fmt.Errorf("no scan file could be loaded")
	}
	if verbose {
		fmt.Fprintf(errOut, "Loaded %d of %d file(s): %d host(s) added, %d updated\n",
			report.Loaded(), len(report.Files), report.Stats.Added, report.Stats.Updated)
	}
	return s, nil
}
