package tape

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tp := New("01")
	assert.Equal(t, 0, tp.Head())
	assert.Equal(t, 2, tp.Len())
	assert.Equal(t, "01", tp.String())

	sym, err := tp.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.Symbol('0'), sym)
}

func TestEmptyTapeReadsBlank(t *testing.T) {
	tp := New("")
	assert.Equal(t, 0, tp.Len())

	sym, err := tp.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.Blank, sym)
	assert.Equal(t, 1, tp.Len())
}

func TestMoveRightExtendsWithBlank(t *testing.T) {
	input := "101"
	tp := New(input)

	for i := 0; i < len(input); i++ {
		_, err := tp.Read()
		require.NoError(t, err)
		tp.MoveRight()
	}

	// The (N+1)-th read lands on the auto-extended cell.
	sym, err := tp.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.Blank, sym)
	assert.Equal(t, len(input)+1, tp.Len())
	assert.Equal(t, "101 ", tp.String())
}

func TestWrite(t *testing.T) {
	tp := New("000")
	tp.MoveRight()
	require.NoError(t, tp.Write('x'))
	assert.Equal(t, "0x0", tp.String())
}

func TestMoveLeftUnderflow(t *testing.T) {
	tp := New("0")
	tp.MoveLeft()
	assert.Equal(t, -1, tp.Head())

	_, err := tp.Read()
	assert.True(t, errors.Is(err, domain.ErrTapeUnderflow))

	err = tp.Write('1')
	assert.True(t, errors.Is(err, domain.ErrTapeUnderflow))

	// The tape does not self-correct.
	assert.Equal(t, "0", tp.String())
}

func TestMove(t *testing.T) {
	tp := New("ab")
	assert.True(t, tp.Move(domain.Right))
	assert.Equal(t, 1, tp.Head())
	assert.True(t, tp.Move(domain.Left))
	assert.Equal(t, 0, tp.Head())
	assert.False(t, tp.Move(domain.Direction('X')))
	assert.Equal(t, 0, tp.Head())
}

func TestCellsIsCopy(t *testing.T) {
	tp := New("ab")
	cells := tp.Cells()
	cells[0] = 'z'
	assert.Equal(t, "ab", tp.String())
}

func TestWindow(t *testing.T) {
	tp := New("01")
	tp.MoveRight()
	assert.Equal(t, "0[1]", tp.Window())
	tp.MoveRight()
	assert.Equal(t, "01[␣]", tp.Window())

	left := New("0")
	left.MoveLeft()
	assert.Equal(t, "[]0", left.Window())
}
