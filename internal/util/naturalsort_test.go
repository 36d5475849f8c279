package util_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modlingo/modlingo/internal/util"
)

func TestNaturalSortLess(t *testing.T) {
	files := []string{
		"mod-10.jar",
		"mod-2.jar",
		"Mod-1.jar",
		"another-mod.jar",
		"mod-2b.jar",
	}
	sort.Slice(files, func(i, j int) bool {
		return util.NaturalSortLess(files[i], files[j])
	})
	assert.Equal(t, []string{
		"another-mod.jar",
		"Mod-1.jar",
		"mod-2.jar",
		"mod-2b.jar",
		"mod-10.jar",
	}, files)
}

func TestNaturalSortLessEqualPrefix(t *testing.T) {
	assert.True(t, util.NaturalSortLess("mod", "mod2"))
	assert.False(t, util.NaturalSortLess("mod2", "mod"))
	assert.False(t, util.NaturalSortLess("mod", "mod"))
}
