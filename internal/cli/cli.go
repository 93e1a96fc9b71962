// Package cli implements the pwgen command line tool.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
	"github.com/vaultpass/passgen-go/internal/strength"
)

type generateFlags struct {
	length         int
	count          int
	lower          bool
	upper          bool
	digits         bool
	symbols        bool
	excludeSimilar bool
	classes        []string
	seed           uint64
	estimator      string
	noColor        bool
}

// NewRootCommand builds the pwgen command tree. Running the root command
// without a subcommand generates passwords.
func NewRootCommand() *cobra.Command {
	flags := &generateFlags{}

	root := &cobra.Command{
		Use:           "pwgen",
		Short:         "generate random passwords and rate their strength",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.estimator, "estimator", "alphabet", "strength estimator: alphabet or charset")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable coloured output")
	addGenerateFlags(root, flags)

	generate := &cobra.Command{
		Use:   "generate",
		Short: "generate passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}
	addGenerateFlags(generate, flags)

	root.AddCommand(generate, newScoreCommand(flags))
	return root
}

func addGenerateFlags(cmd *cobra.Command, flags *generateFlags) {
	def := crypto.DefaultOptions()
	f := cmd.Flags()
	f.IntVarP(&flags.length, "length", "l", service.DefaultLength, "password length")
	f.IntVarP(&flags.count, "count", "n", service.DefaultCount, "number of passwords")
	f.BoolVar(&flags.lower, "lower", def.Classes.Lower, "include lowercase letters (a-z)")
	f.BoolVar(&flags.upper, "upper", def.Classes.Upper, "include uppercase letters (A-Z)")
	f.BoolVar(&flags.digits, "digits", def.Classes.Digit, "include digits (0-9)")
	f.BoolVar(&flags.symbols, "symbols", def.Classes.Symbol, "include punctuation symbols")
	f.StringSliceVar(&flags.classes, "classes", nil, "enable exactly these classes, e.g. lower,digit (overrides the per-class flags)")
	f.BoolVar(&flags.excludeSimilar, "exclude-similar", def.ExcludeAmbiguous, "leave out look-alike characters (l 1 I o O 0)")
	f.Uint64Var(&flags.seed, "seed", 0, "seed for reproducible output (not for real passwords)")
}

func newScoreCommand(flags *generateFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "score <password>...",
		Short: "rate the strength of passwords",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, err := newScorer(flags)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), flags.noColor)
			for _, pw := range args {
				score := scorer.Score(pw)
				p.print(pw, score, strength.Rate(score))
			}
			return nil
		},
	}
}

func runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	scorer, err := newScorer(flags)
	if err != nil {
		return err
	}

	// The service treats zero as "use the default"; on the command line an
	// explicit zero is a mistake.
	if flags.length <= 0 {
		return fmt.Errorf("--length %d: %w", flags.length, crypto.ErrInvalidLength)
	}
	if flags.count <= 0 {
		return fmt.Errorf("%w: --count %d", service.ErrCountOutOfRange, flags.count)
	}
	if cmd.Flags().Changed("classes") {
		if err := applyClasses(flags); err != nil {
			return err
		}
	}

	src := crypto.SecureSource()
	if cmd.Flags().Changed("seed") {
		src = crypto.NewSeededSource(flags.seed)
	}

	svc := service.NewGeneratorService(crypto.NewGenerator(src), scorer, service.Limits{})
	resp, err := svc.Generate(model.GenerateRequest{
		Length:         flags.length,
		Count:          flags.count,
		Lowercase:      &flags.lower,
		Uppercase:      &flags.upper,
		Digits:         &flags.digits,
		Symbols:        &flags.symbols,
		ExcludeSimilar: &flags.excludeSimilar,
	})
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout(), flags.noColor)
	for _, pw := range resp.Passwords {
		p.print(pw.Password, pw.Strength, strength.Rating(pw.Rating))
	}
	return nil
}

// applyClasses replaces the per-class flags with the --classes list.
func applyClasses(flags *generateFlags) error {
	var classes crypto.Classes
	for _, name := range flags.classes {
		c, err := crypto.ParseClass(name)
		if err != nil {
			return err
		}
		switch c {
		case crypto.Lower:
			classes.Lower = true
		case crypto.Upper:
			classes.Upper = true
		case crypto.Digit:
			classes.Digit = true
		case crypto.Symbol:
			classes.Symbol = true
		}
	}
	flags.lower, flags.upper, flags.digits, flags.symbols = classes.Lower, classes.Upper, classes.Digit, classes.Symbol
	return nil
}

func newScorer(flags *generateFlags) (*strength.Scorer, error) {
	est, err := strength.ParseEstimator(flags.estimator)
	if err != nil {
		return nil, err
	}
	return strength.NewScorer(est), nil
}

type printer struct {
	w      io.Writer
	colors map[strength.Rating]*color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w: w,
		colors: map[strength.Rating]*color.Color{
			strength.Strong: color.New(color.FgGreen, color.Bold),
			strength.Fair:   color.New(color.FgYellow, color.Bold),
			strength.Weak:   color.New(color.FgRed, color.Bold),
		},
	}
	if noColor {
		for _, c := range p.colors {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) print(password string, score int, rating strength.Rating) {
	fmt.Fprintf(p.w, "%s  %s\n", password, p.colors[rating].Sprintf("%3d%% %s", score, rating))
}
