package expressivo

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Session is an interactive console. Each input line is either an
// expression, which becomes the current expression, or a command:
//
//	!d/dx                 differentiate the current expression by x
//	!simplify x=1 y=2.5   simplify the current expression
//
// Both commands replace the current expression with their result.
type Session struct {
	env  *Env
	out  io.Writer
	expr *Node

	Logger logrus.FieldLogger
}

func NewSession(env *Env, out io.Writer) *Session {
	return &Session{
		env:    env,
		out:    out,
		Logger: logrus.StandardLogger(),
	}
}

// Current returns the current expression, or nil before the first one.
func (s *Session) Current() *Node {
	return s.expr
}

func (s *Session) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := s.Handle(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Handle processes one line. Bad input is reported on the output and the
// session goes on; only write failures are returned.
func (s *Session) Handle(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "!") {
		return s.command(line[1:])
	}

	node, err := Parse(line)
	if err != nil {
		s.Logger.WithField("input", line).Debug("parse failed")
		return s.printf("ParseError: %v\n", err)
	}
	s.expr = node
	return s.printf("%v\n", node)
}

func (s *Session) command(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return s.printf("Error: %v\n", err)
	}
	if len(args) == 0 {
		return s.printf("Error: missing command\n")
	}
	s.Logger.WithField("args", args).Debug("command")

	if s.expr == nil {
		return s.printf("Error: no current expression\n")
	}

	switch {
	case strings.HasPrefix(args[0], "d/d"):
		variable := strings.TrimPrefix(args[0], "d/d")
		if !validVariable(variable) || len(args) > 1 {
			return s.printf("Error: usage: !d/d<variable>\n")
		}
		s.expr = Differentiate(s.expr, variable)
		return s.printf("%v\n", s.expr)
	case args[0] == "simplify":
		env, err := s.bindings(args[1:])
		if err != nil {
			return s.printf("Error: %v\n", err)
		}
		ret, err := Simplify(s.expr, env)
		if err != nil {
			return s.printf("Error: %v\n", err)
		}
		s.expr = ret
		return s.printf("%v\n", ret)
	}
	return s.printf("Error: unknown command %q\n", args[0])
}

// bindings parses name=value arguments into a scope over the session env.
func (s *Session) bindings(args []string) (*Env, error) {
	env := NewEnv(s.env)
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, errors.Errorf("expected name=value, got %q", arg)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidNumber, "%s = %q", name, value)
		}
		if err := env.Set(name, f); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (s *Session) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.out, format, args...)
	return err
}
