// Package prompt collects run parameters interactively from a line-oriented reader.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"stockRisk/internal/finance"
)

// ErrClosed is returned when the input ends before a valid answer was read.
var ErrClosed = errors.New("input closed")

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", ErrClosed
		}
		return "", errors.Wrap(err, "read input")
	}
	return strings.TrimSpace(line), nil
}

// ask re-prompts until parse accepts the answer. The loop ends on a valid answer or when the
// input is exhausted.
func (p *Prompter) ask(label string, parse func(string) error) error {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return err
		}
		if err := parse(line); err != nil {
			fmt.Fprintf(p.out, "  %v, try again\n", err)
			continue
		}
		return nil
	}
}

// Symbol asks for a ticker and upper-cases it. Empty answers are asked again.
func (p *Prompter) Symbol(label string) (string, error) {
	var sym string
	err := p.ask(label, func(s string) error {
		if s == "" {
			return errors.New("ticker cannot be empty")
		}
		sym = strings.ToUpper(s)
		return nil
	})
	return sym, err
}

// Date asks for a YYYY-MM-DD date.
func (p *Prompter) Date(label string) (time.Time, error) {
	var d time.Time
	err := p.ask(label+" (YYYY-MM-DD)", func(s string) error {
		t, err := finance.ParseDate(s)
		if err != nil {
			return errors.Errorf("%q is not a YYYY-MM-DD date", s)
		}
		d = t
		return nil
	})
	return d, err
}

// RiskFreeRate asks for an annual rate as a decimal fraction, e.g. 0.02 for 2%.
func (p *Prompter) RiskFreeRate(label string) (float64, error) {
	var rate float64
	err := p.ask(label+" (decimal, e.g. 0.02)", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("%q is not a number", s)
		}
		if v < 0 {
			return errors.New("rate must be non-negative")
		}
		rate = v
		return nil
	})
	return rate, err
}
