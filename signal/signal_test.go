package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSingletons(t *testing.T) {
	require.False(t, Idle().Active())
	require.True(t, Busy().Active())
	require.True(t, Overderived().Active())
	require.False(t, Uninitialized().Initialized())
	require.True(t, Idle().Initialized())
}

func TestBusyAbsorbs(t *testing.T) {
	word := NewSignalWord()
	basic := FromWord(word, 1)

	got := Busy().Plus(basic)
	assert.True(t, got.Equal(Busy()))

	got = basic.Plus(Busy())
	assert.True(t, got.Equal(Busy()))
}

func TestIdleIsIdentity(t *testing.T) {
	word := NewSignalWord()
	basic := FromWord(word, 1)

	got := Idle().Plus(basic)
	assert.True(t, got.Equal(basic))
}

func TestOverderivedAbsorbsExceptBusy(t *testing.T) {
	wordA := NewSignalWord()
	wordB := NewSignalWord()
	a := FromWord(wordA, 1)
	b := FromWord(wordB, 1)

	derived := a.Plus(b)
	assert.True(t, derived.Equal(Overderived()))

	got := derived.Plus(a)
	assert.True(t, got.Equal(Overderived()))

	got = derived.Plus(Busy())
	assert.True(t, got.Equal(Busy()))
}

func TestSameWordUnionIsPrecise(t *testing.T) {
	word := NewSignalWord()
	a := FromWord(word, 1)
	b := FromWord(word, 2)

	derived := a.Plus(b)
	assert.False(t, derived.Active())

	word.Set(1)
	assert.True(t, derived.Active())
	assert.True(t, a.Active())
	assert.False(t, b.Active())

	word.Clear(1)
	word.Set(2)
	assert.True(t, derived.Active())

	word.Clear(2)
	assert.False(t, derived.Active())
}

func TestDifferentWordUnionCollapses(t *testing.T) {
	a := FromWord(NewSignalWord(), 1)
	b := FromWord(NewSignalWord(), 1)

	derived := a.Plus(b)
	assert.True(t, derived.Equal(Overderived()))
}

func TestUninitializedIsAbsorbedOnAdd(t *testing.T) {
	word := NewSignalWord()
	basic := FromWord(word, 1)

	got := Uninitialized().Plus(basic)
	assert.True(t, got.Equal(basic))

	got = basic.Plus(Uninitialized())
	assert.True(t, got.Equal(basic))
}

func TestEquality(t *testing.T) {
	word := NewSignalWord()
	a := FromWord(word, 1)
	b := FromWord(word, 1)
	c := FromWord(word, 2)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, Uninitialized().Equal(Uninitialized()))
	assert.False(t, a.Equal(Uninitialized()))
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "<uninitialized>", Uninitialized().String())

	word := NewSignalWord()
	basic := FromWord(word, 1)
	assert.Contains(t, basic.String(), "/1:0")

	word.Set(1)
	assert.Contains(t, basic.String(), "/1:1")
}

func TestSetClearWord(t *testing.T) {
	word := NewSignalWord()
	require.Equal(t, uint32(0), word.Load())

	word.Set(TrueBit)
	require.Equal(t, TrueBit, word.Load())

	word.Set(TrueBit)
	require.Equal(t, TrueBit, word.Load())

	word.Clear(TrueBit)
	require.Equal(t, uint32(0), word.Load())
}
