package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/AjayBarot7035/secret-santa/types"
)

func newTestPrinter(t *testing.T) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out, errOut bytes.Buffer

	return New(&out, &errOut), &out, &errOut
}

func TestPrinter_Messages(t *testing.T) {
	p, out, errOut := newTestPrinter(t)

	p.Success("wrote %d rows", 3)
	p.Info("plain %s", "text")
	p.Step("connecting")
	p.Warning("slow")

	require.Equal(t, "✓ wrote 3 rows\nplain text\n→ connecting\n", out.String())
	require.Equal(t, "⚠️  slow\n", errOut.String())
}

func TestPrinter_Error(t *testing.T) {
	t.Run("single suggestion", func(t *testing.T) {
		p, _, errOut := newTestPrinter(t)

		err := p.Error("cannot read input", "open request.json: no such file", []string{"Check the --input path"})
		require.EqualError(t, err, "cannot read input")
		require.Equal(t, "cannot read input\n\nopen request.json: no such file\n\nCheck the --input path\n", errOut.String())
	})

	t.Run("several suggestions", func(t *testing.T) {
		p, _, errOut := newTestPrinter(t)

		_ = p.Error("no assignment", "", []string{"Add participants", "Drop history"})
		require.Equal(t, "no assignment\n\nEither:\n  1. Add participants\n  2. Drop history\n", errOut.String())
	})
}

func TestPrinter_Assignments(t *testing.T) {
	p, out, _ := newTestPrinter(t)

	p.Assignments([]types.Assignment{
		{GiverName: "Ann", GiverEmail: "ann@example.com", ReceiverName: "Bartholomew", ReceiverEmail: "bart@example.com"},
		{GiverName: "Bartholomew", GiverEmail: "bart@example.com", ReceiverName: "Ann", ReceiverEmail: "ann@example.com"},
	})

	require.Equal(t,
		"SANTA        EMAIL                SECRET CHILD  EMAIL\n"+
			"Ann          ann@example.com   →  Bartholomew   bart@example.com\n"+
			"Bartholomew  bart@example.com  →  Ann           ann@example.com\n",
		out.String())
}

func TestPrinter_Summary(t *testing.T) {
	p, out, errOut := newTestPrinter(t)

	p.Summary(types.Succeeded(make([]types.Assignment, 4), 1))
	p.Summary(types.Failed(types.ErrInfeasible, 100))

	require.Equal(t, "✓ 4 assignments generated in 1 attempt\n", out.String())
	require.Equal(t, "✗ "+types.ErrInfeasible.Error()+"\n", errOut.String())
}
