package autocomplete

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFor(t *testing.T) {
	tests := []struct {
		command string
		option  string
		want    Source
	}{
		{"thumbnail", "creator", SourceCreators},
		{"thumbnail", "category", SourceCategories},
		{"staff", "creator", SourceCreators},
		{"creator", "name", SourceCreators},
		{"category", "name", SourceCategories},
		{"category", "category", SourceCategories},
		{"thumbnail", "url", SourceNone},
		{"role", "name", SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.option, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceFor(tt.command, tt.option))
		})
	}
}

func TestFilterNames(t *testing.T) {
	names := []string{"Alice", "Malik", "Bob", "alina"}

	assert.Equal(t, []string{"Alice", "Malik", "alina"}, FilterNames(names, "ALI"))
	assert.Equal(t, names, FilterNames(names, ""))
	assert.Empty(t, FilterNames(names, "zzz"))
}

func TestFilterNames_CapsChoices(t *testing.T) {
	var names []string
	for n := range 25 {
		names = append(names, fmt.Sprintf("creator-%02d", n))
	}

	filtered := FilterNames(names, "creator")
	require.Len(t, filtered, 10)
	assert.Equal(t, "creator-00", filtered[0])
}

func TestChoices(t *testing.T) {
	choices := Choices([]string{"Alice"})

	require.Len(t, choices, 1)
	assert.Equal(t, "Alice", choices[0].Name)
	assert.Equal(t, "Alice", choices[0].Value)
}
