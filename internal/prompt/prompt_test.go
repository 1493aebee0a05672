package prompt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskFreeRate_RepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("abc\n-0.5\nNaN\n0.025\n"), &out)

	rate, err := p.RiskFreeRate("Risk-free rate")
	require.NoError(t, err)
	assert.Equal(t, 0.025, rate)
	assert.Equal(t, 4, strings.Count(out.String(), "Risk-free rate"))
	assert.Equal(t, 3, strings.Count(out.String(), "try again"))
}

func TestRiskFreeRate_EndOfInput(t *testing.T) {
	p := New(strings.NewReader("oops\n"), &bytes.Buffer{})
	_, err := p.RiskFreeRate("Risk-free rate")
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestRiskFreeRate_LastLineWithoutNewline(t *testing.T) {
	p := New(strings.NewReader("0"), &bytes.Buffer{})
	rate, err := p.RiskFreeRate("Risk-free rate")
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)
}

func TestDate(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("01/02/2023\n2023-01-02\n"), &out)

	d, err := p.Date("Start date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), d)
	assert.Contains(t, out.String(), "not a YYYY-MM-DD date")
}

func TestSymbol(t *testing.T) {
	p := New(strings.NewReader("\n  aapl \n"), &bytes.Buffer{})
	sym, err := p.Symbol("Stock ticker")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", sym)

	_, err = p.Symbol("Benchmark ticker")
	assert.True(t, errors.Is(err, ErrClosed))
}
