package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/mattn/expressivo"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	logLevel string
	envFile  string
	vars     map[string]string
}

// env layers the --var bindings over the --env-file bindings.
func (o *options) env() (*expressivo.Env, error) {
	var base *expressivo.Env
	if o.envFile != "" {
		env, err := expressivo.LoadEnv(o.envFile, nil)
		if err != nil {
			return nil, err
		}
		base = env
	}

	names := make([]string, 0, len(o.vars))
	for name := range o.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	env := expressivo.NewEnv(base)
	for _, name := range names {
		f, err := strconv.ParseFloat(o.vars[name], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "--var %s", name)
		}
		if err := env.Set(name, f); err != nil {
			return nil, errors.Wrap(err, "--var")
		}
	}
	logrus.WithField("names", env.Names()).Debug("environment")
	return env, nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "expressivo",
		Short:         "Differentiate and simplify polynomial expressions",
		Long:          "Without a subcommand expressivo reads expressions and !d/dx or !simplify commands line by line.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return errors.Wrap(err, "--log-level")
			}
			logrus.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.envFile, "env-file", "", "YAML, JSON or TOML file of variable values")
	flags.StringToStringVar(&opts.vars, "var", nil, "variable value as name=value (repeatable)")

	root.AddCommand(newDifferentiateCommand(), newSimplifyCommand(opts))
	return root
}

func newDifferentiateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "differentiate EXPRESSION VARIABLE",
		Aliases: []string{"d"},
		Short:   "Print the derivative of EXPRESSION with respect to VARIABLE",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.WithFields(logrus.Fields{"expression": args[0], "variable": args[1]}).Debug("differentiate")
			ret, err := expressivo.DifferentiateString(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ret)
			return nil
		},
	}
}

func newSimplifyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "simplify EXPRESSION",
		Aliases: []string{"s"},
		Short:   "Substitute --var and --env-file values into EXPRESSION and fold constants",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.env()
			if err != nil {
				return err
			}
			node, err := expressivo.Parse(args[0])
			if err != nil {
				return err
			}
			logrus.WithField("expression", node.String()).Debug("simplify")
			ret, err := expressivo.Simplify(node, env)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ret)
			return nil
		},
	}
}

func runConsole(cmd *cobra.Command, opts *options) error {
	env, err := opts.env()
	if err != nil {
		return err
	}
	session := expressivo.NewSession(env, cmd.OutOrStdout())

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return repl(session, f, cmd.OutOrStdout())
	}
	return session.Run(in)
}

func repl(session *expressivo.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := session.Handle(scanner.Text()); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Fatal(err)
	}
}
