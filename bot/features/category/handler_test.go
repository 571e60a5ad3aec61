package category

import (
	"testing"

	"thumbnailbot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestFormatCategories(t *testing.T) {
	channel := int64(1234)
	categories := []*entities.Category{
		{Name: "gaming", ChannelID: &channel},
		{Name: "vlogs"},
	}

	out := FormatCategories(categories)

	assert.Contains(t, out, "• **gaming** → <#1234>")
	assert.Contains(t, out, "• **vlogs** → no channel")
}

func TestFormatCategories_Empty(t *testing.T) {
	assert.Contains(t, FormatCategories(nil), "No categories yet")
}

func TestToggleMessage(t *testing.T) {
	assert.Contains(t, ToggleMessage(true), "enabled")
	assert.Contains(t, ToggleMessage(false), "routed by category")
}
