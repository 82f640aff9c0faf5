package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calcpad"
	"github.com/zephyrtronium/calcpad/internal/tui"
	"github.com/zephyrtronium/calcpad/loan"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds the state shared by all commands.
type cli struct {
	cfgPath  string
	logLevel string
	chain    bool
	noColor  bool

	cfg Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:               "calcpad",
		Short:             "Keypad calculator",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/calcpad/config.yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&c.chain, "chain", false, "let an operator after a result continue from it")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable coloured output")
	root.AddCommand(c.evalCmd(), c.keysCmd(), c.tuiCmd(), c.loanCmd())
	return root
}

// setup loads the configuration and applies flags over it.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	path, optional := c.cfgPath, false
	if path == "" {
		path, optional = defaultConfigPath(), true
	}
	cfg, err := LoadConfig(path, optional)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("chain") {
		cfg.Chain = c.chain
	}
	if c.noColor {
		off := false
		cfg.Color = &off
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	color.NoColor = color.NoColor || !cfg.UseColor()
	c.cfg = cfg
	c.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	c.log.Debug("configured", slog.String("config", path), slog.Bool("chain", cfg.Chain))
	return nil
}

func (c *cli) editor() *calcpad.Editor {
	return calcpad.NewEditor(calcpad.Chain(c.cfg.Chain), calcpad.Logger(c.log))
}

func (c *cli) format(v float64) string {
	if c.cfg.Format == "" {
		return calcpad.FormatFloat(v)
	}
	return fmt.Sprintf(c.cfg.Format, v)
}

var errColor = color.New(color.FgRed)

func (c *cli) evalCmd() *cobra.Command {
	var (
		inname   string
		nl, echo bool
	)
	cmd := &cobra.Command{
		Use:   "eval [expr...]",
		Short: "Evaluate expressions",
		Long:  "Evaluate each argument as an expression, or standard input if no arguments are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f := cmd.Flags().Lookup("fmt"); f.Changed {
				c.cfg.Format = f.Value.String()
			}
			var exprs []string
			in, closer, err := infile(cmd, inname, len(args) == 0)
			if err != nil {
				return err
			}
			if in != nil {
				defer closer.Close()
				src, err := readExprs(in, nl)
				if err != nil {
					return err
				}
				exprs = append(exprs, src...)
			}
			exprs = append(exprs, args...)

			out := cmd.OutOrStdout()
			failed := 0
			for _, src := range exprs {
				if err := c.eval(out, src, echo); err != nil {
					errColor.Fprintln(out, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inname, "in", "", "input file, - for stdin (default stdin if no args given)")
	cmd.Flags().String("fmt", "", "result formatting verb, e.g. %.4f")
	cmd.Flags().BoolVarP(&nl, "lines", "n", false, "treat separate input lines as separate expressions")
	cmd.Flags().BoolVar(&echo, "echo", false, "print expressions in postfix order")
	return cmd
}

// eval evaluates one expression and prints its result.
func (c *cli) eval(w io.Writer, src string, echo bool) error {
	syms, err := calcpad.ScanString(src)
	if err != nil {
		return err
	}
	e := c.editor()
	for _, sym := range syms {
		if !e.Accept(sym) {
			return e.Err()
		}
	}
	if echo {
		postfix, err := e.Postfix()
		if err != nil {
			return err
		}
		parts := make([]string, len(postfix))
		for i, t := range postfix {
			parts[i] = t.String()
		}
		fmt.Fprintf(w, "%s : ", strings.Join(parts, " "))
	}
	v, err := e.Evaluate()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, c.format(v))
	return nil
}

// infile opens the named input, or stdin for "-" or when std is true. The
// result is nil if there is no input to read.
func infile(cmd *cobra.Command, inname string, std bool) (io.Reader, io.Closer, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	case inname == "-", std:
		in := cmd.InOrStdin()
		return in, io.NopCloser(in), nil
	}
	return nil, nil, nil
}

// readExprs reads expressions from r: one per non-blank line if lines is set,
// otherwise the whole input as one.
func readExprs(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var exprs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		exprs = append(exprs, sc.Text())
	}
	return exprs, sc.Err()
}

func (c *cli) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [key...]",
		Short: "Replay keypad keys",
		Long: "Press each key in order and print the expression and result after it. " +
			"Keys are read from standard input, separated by whitespace, if none are given. " +
			"C clears, del deletes, and = evaluates.",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args
			if len(keys) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				sc.Split(bufio.ScanWords)
				for sc.Scan() {
					keys = append(keys, sc.Text())
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}
			e := c.editor()
			out := cmd.OutOrStdout()
			for _, k := range keys {
				ok := e.Press(k)
				fmt.Fprintf(out, "%-4s %s", k, e.Display())
				if r := e.Result(); r != "" {
					if e.Err() != nil {
						errColor.Fprintf(out, "  [%s]", r)
					} else {
						fmt.Fprintf(out, "  = %s", r)
					}
				}
				if !ok {
					fmt.Fprint(out, "  (ignored)")
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive keypad",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(c.editor(), c.cfg.Keypad, tea.WithAltScreen())
		},
	}
}

func (c *cli) loanCmd() *cobra.Command {
	var (
		terms    loan.Terms
		method   string
		schedule bool
	)
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Compute loan repayments",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loan.ParseMethod(method)
			if err != nil {
				return err
			}
			terms.Method = m
			if schedule && terms.Years*12 > loan.MaxMonths {
				return fmt.Errorf("schedule longer than %d months", loan.MaxMonths)
			}
			c.log.Debug("loan", slog.Float64("years", terms.Years), slog.Float64("amount", terms.Amount),
				slog.Float64("rate", terms.Rate), slog.String("method", m.String()))
			out := cmd.OutOrStdout()
			s := terms.Summary()
			fmt.Fprintf(out, "monthly payment: %.2f\n", s.MonthlyPayment)
			fmt.Fprintf(out, "total interest:  %.2f\n", s.TotalInterest)
			fmt.Fprintf(out, "total payment:   %.2f\n", s.TotalPayment)
			if schedule {
				fmt.Fprintf(out, "%5s %12s %12s %12s %14s\n", "month", "payment", "principal", "interest", "balance")
				for _, p := range terms.Installments() {
					fmt.Fprintf(out, "%5d %12.2f %12.2f %12.2f %14.2f\n", p.Month, p.Payment, p.Principal, p.Interest, p.Balance)
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&terms.Years, "years", 0, "loan length in years")
	cmd.Flags().Float64Var(&terms.Amount, "amount", 0, "principal")
	cmd.Flags().Float64Var(&terms.Rate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().StringVar(&method, "method", loan.EqualInstallment.String(), "repayment method: installment or principal")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "print every monthly installment")
	return cmd
}
