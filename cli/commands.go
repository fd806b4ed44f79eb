package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"palconv/convert"
	"palconv/dispatch"
	"palconv/palette"
	"palconv/requests"
	"palconv/theme"
	"palconv/watch"
)

func (a *app) convertCommand() *cobra.Command {
	var (
		output    string
		outDir    string
		format    string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "convert <input>...",
		Short: "Convert palette files to GPL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormatFlag(format)
			if err != nil {
				return err
			}
			if output != "" && len(args) > 1 {
				return errors.New("--output needs exactly one input")
			}
			opts := convert.Options{
				Format:    f,
				OutPath:   output,
				OutDir:    outDir,
				Overwrite: overwrite || a.cfg.Export.Overwrite,
			}
			if opts.OutDir == "" {
				opts.OutDir = a.cfg.Export.Dir
			}

			var failed error
			for _, in := range args {
				out, err := convert.File(in, opts)
				a.logDiagnostics(in, out.Format, out.Result.Diagnostics)
				if err != nil {
					a.log.WithField("file", in).WithError(err).Error("convert failed")
					if failed == nil {
						failed = err
					}
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d colors)\n", in, out.Output, out.Result.Len())
			}
			return failed
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .gpl file")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default: config export.dir, else next to input)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format tag, overriding the extension (e.g. kpl)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing output files")
	return cmd
}

func (a *app) showCommand() *cobra.Command {
	var (
		format  string
		withHSL bool
	)
	cmd := &cobra.Command{
		Use:   "show <input>",
		Short: "Print a palette's colors as swatches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormatFlag(format)
			if err != nil {
				return err
			}
			var res palette.Result
			if f == palette.FormatUnknown {
				res, f, err = dispatch.DecodeFile(args[0])
			} else {
				res, err = dispatch.DecodeFileAs(args[0], f)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s, %d colors)\n", res.Name, f, res.Len())
			for i, c := range res.Colors {
				fmt.Fprintf(w, "%4d %s %s\n", i+1, theme.Swatch(c, a.cfg.Show.SwatchWidth), theme.Describe(c, withHSL))
			}
			for _, d := range res.Diagnostics {
				fmt.Fprintln(w, a.theme.Paint(theme.SeverityWarn, fmt.Sprintf("skipped %s %d: %s", d.Unit, d.Index, d.Message)))
			}
			if res.Empty() {
				fmt.Fprintln(w, a.theme.Paint(theme.SeverityDanger, convert.ErrNoColors.Error()))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format tag, overriding the extension")
	cmd.Flags().BoolVar(&withHSL, "hsl", false, "also print HSL values")
	return cmd
}

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer JSON decode requests, one per line, on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return requests.Serve(cmd.InOrStdin(), cmd.OutOrStdout(), a.log.WithField("component", "serve"))
		},
	}
}

func (a *app) watchCommand() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Convert palette files to GPL as they appear in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Watch.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			if outDir == "" {
				outDir = a.cfg.Export.Dir
			}
			opts := convert.Options{OutDir: outDir, Overwrite: true}
			debounce := time.Duration(a.cfg.Watch.DebounceMs) * time.Millisecond
			w, err := watch.New(dir, debounce, opts, a.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w.OnConvert = func(o convert.Outcome, err error) {
				if err != nil {
					fmt.Fprintln(out, a.theme.Paint(theme.SeverityDanger, fmt.Sprintf("%s: %v", o.Input, err)))
					return
				}
				fmt.Fprintf(out, "%s -> %s (%d colors)\n", o.Input, o.Output, o.Result.Len())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "output directory (default: config export.dir, else the watched directory)")
	return cmd
}

func (a *app) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			for _, s := range dispatch.Specs() {
				exts := strings.Join(s.Extensions, " ")
				if exts == "" {
					exts = "(--format " + s.Format.String() + " only)"
				}
				fmt.Fprintf(w, "%-4s %s\n", s.Format, exts)
			}
		},
	}
}
