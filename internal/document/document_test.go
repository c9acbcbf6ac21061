package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceDisplayAndExt(t *testing.T) {
	scratch := ScratchSource()
	require.Equal(t, "[scratch]", scratch.String())
	require.Equal(t, "", scratch.Ext())

	file := FileSource("main.go")
	require.Equal(t, "main.go", file.String())
	require.Equal(t, "go", file.Ext())

	noExt := FileSource("Makefile")
	require.Equal(t, "", noExt.Ext())
}

func TestNewEmptyDocumentHasPrimarySelection(t *testing.T) {
	d := NewEmptyDocument()
	require.Len(t, d.Selections, 1)
	sel, ok := d.Selections[0]
	require.True(t, ok)
	require.Equal(t, 0, sel.Head)
	require.False(t, d.Dirty)
}

func TestDocumentCloneIsIndependent(t *testing.T) {
	d := NewDocumentFromText(FileSource("a.txt"), "hello")
	cp := d.Clone()
	cp.Selections[0] = cp.Selections[0]
	cp.Dirty = true

	require.False(t, d.Dirty)
	require.Equal(t, "hello", d.Buf().String())
	require.Equal(t, "hello", cp.Buf().String())
}
