package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiltered(t *testing.T) {
	f := NewFiltered("Errors while resolving source directories:", 2)
	assert.False(t, f.HasErrors())
	assert.Empty(t, f.ErrorMessages())

	f.Info("workspace %s", "/w")
	f.Error("first %d", 1)
	f.Error("second")
	f.Error("third")
	f.Error("fourth")

	assert.True(t, f.HasErrors())
	assert.Equal(t, []string{"workspace /w"}, f.InfoMessages())
	assert.Equal(t, []string{
		"Errors while resolving source directories:",
		"first 1",
		"second",
		"  ... skipped logging of 2 additional errors ...",
	}, f.ErrorMessages())
}

func TestFiltered_NoTitle(t *testing.T) {
	f := NewFiltered("", 0)
	f.Error("only")
	assert.Equal(t, []string{"only"}, f.ErrorMessages())
}

func TestFiltered_Concurrent(t *testing.T) {
	f := NewFiltered("", 1000)

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			for range 50 {
				f.Error("message")
			}
		})
	}
	wg.Wait()

	assert.Len(t, f.ErrorMessages(), 500)
}
