package services

import (
	"context"
	"strings"
	"testing"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assertTooLong(t *testing.T, err error, field string, max int) {
	t.Helper()
	var tooLong *TooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, field, tooLong.Field)
	assert.Equal(t, max, tooLong.Max)
}

func TestLengthLimits(t *testing.T) {
	t.Parallel()

	singleChannel := int64(4242)
	singleConfig := func() *entities.GuildConfig {
		c := NewCompleteConfig()
		c.SingleThumbnailChannel = true
		c.SingleThumbnailChannelID = &singleChannel
		return c
	}

	tests := []struct {
		name      string
		value     string
		field     string
		max       int
		wantError bool
		run       func(m *TestMocks, value string) error
	}{
		{
			name:      "url at the limit",
			value:     "https://youtu.be/" + strings.Repeat("a", MaxSourceURLLength-len("https://youtu.be/")),
			field:     FieldSourceURL,
			max:       MaxSourceURLLength,
			wantError: false,
			run: func(m *TestMocks, value string) error {
				_, err := ValidateSourceURL(value)
				return err
			},
		},
		{
			name:      "url over the limit",
			value:     "https://youtu.be/" + strings.Repeat("a", 300),
			field:     FieldSourceURL,
			max:       MaxSourceURLLength,
			wantError: true,
			run: func(m *TestMocks, value string) error {
				_, err := ValidateSourceURL(value)
				return err
			},
		},
		{
			name:      "creator name over the limit",
			value:     strings.Repeat("a", MaxNameLength+1),
			field:     FieldName,
			max:       MaxNameLength,
			wantError: true,
			run: func(m *TestMocks, value string) error {
				_, _, err := newRosterServiceWithMocks(m).AddCreator(context.Background(), value)
				return err
			},
		},
		{
			name:      "creator name counts characters not bytes",
			value:     strings.Repeat("é", MaxNameLength),
			field:     FieldName,
			max:       MaxNameLength,
			wantError: false,
			run: func(m *TestMocks, value string) error {
				m.CreatorRepo.On("GetByName", mock.Anything, value).Return(nil, nil)
				m.CreatorRepo.On("Create", mock.Anything, value).Return(NewTestCreator(7, value), nil)
				NewMockHelper(m).ExpectEventPublish(events.EventTypeRosterChanged)
				_, _, err := newRosterServiceWithMocks(m).AddCreator(context.Background(), value)
				return err
			},
		},
		{
			name:      "category name over the limit",
			value:     strings.Repeat("b", MaxNameLength+1),
			field:     FieldName,
			max:       MaxNameLength,
			wantError: true,
			run: func(m *TestMocks, value string) error {
				_, _, err := newRosterServiceWithMocks(m).AddCategory(context.Background(), value, nil)
				return err
			},
		},
		{
			name:      "single channel label over the limit",
			value:     strings.Repeat("c", MaxNameLength+1),
			field:     FieldCategory,
			max:       MaxNameLength,
			wantError: true,
			run: func(m *TestMocks, value string) error {
				NewMockHelper(m).ExpectGuildConfig(singleConfig())
				_, err := NewRoutingResolver(m.GuildConfigRepo, m.CategoryRepo).ResolveDestination(context.Background(), TestGuildID, value)
				return err
			},
		},
		{
			name:      "single channel label at the limit",
			value:     strings.Repeat("c", MaxNameLength),
			field:     FieldCategory,
			max:       MaxNameLength,
			wantError: false,
			run: func(m *TestMocks, value string) error {
				NewMockHelper(m).ExpectGuildConfig(singleConfig())
				_, err := NewRoutingResolver(m.GuildConfigRepo, m.CategoryRepo).ResolveDestination(context.Background(), TestGuildID, value)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			err := tt.run(mocks, tt.value)

			if tt.wantError {
				assertTooLong(t, err, tt.field, tt.max)
			} else {
				assert.NoError(t, err)
			}
			mocks.AssertAllExpectations(t)
		})
	}
}
