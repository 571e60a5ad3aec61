package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"thumbnailbot/application"
	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLifecycle_EndToEnd(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	// Bob requests a thumbnail for Alice in gaming
	request := h.openAliceRequest(t)
	assert.Equal(t, entities.RequestStateOpen, request.State)
	assert.Equal(t, gamingChannelID, request.ChannelID)
	require.NotNil(t, request.MessageID)

	public := h.poster.PublicControl(*request.MessageID)
	require.NotNil(t, public)
	assert.Equal(t, application.PublicControlOpen, public.State)
	assert.Equal(t, gamingChannelID, public.ChannelID)

	// Carol claims it
	claimed, err := h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestStateClaimed, claimed.State)
	require.NotNil(t, claimed.PrivateChannelID)
	require.NotNil(t, claimed.ControlMessageID)
	assert.Equal(t, "thumbnail-carol", h.poster.PrivateChannels[*claimed.PrivateChannelID])
	assert.True(t, h.poster.Pinned[*claimed.ControlMessageID])

	public = h.poster.PublicControl(*request.MessageID)
	assert.Equal(t, application.PublicControlClaimed, public.State)
	assert.Equal(t, "Claimed by carol", public.Label)

	// Olive approves and confirms
	approved, err := h.lifecycle.Approve(ctx, testGuildID, request.ID, oliveID, false)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestStateClaimed, approved.State)

	result, err := h.lifecycle.Confirm(ctx, testGuildID, request.ID, oliveID, false)
	require.NoError(t, err)
	require.NotNil(t, result.Record)
	assert.NotZero(t, result.Record.ID)
	assert.Equal(t, entities.RequestStateSubmitted, result.Request.State)

	public = h.poster.PublicControl(*request.MessageID)
	assert.Equal(t, application.PublicControlCompleted, public.State)
	assert.Equal(t, "Completed", public.Label)
	assert.True(t, h.poster.DisabledControls[*claimed.ControlMessageID])

	// Exactly one record with the request context
	assert.Equal(t, 1, h.recordCount(t))
	var designerName, creatorName, category, url string
	err = h.db.QueryRow(ctx, `
		SELECT s.display_name, c.name, t.category, t.source_url
		FROM thumbnail_records t
		JOIN staff_members s ON s.id = t.designer_id
		JOIN creators c ON c.id = t.creator_id
		WHERE t.id = $1`, result.Record.ID).Scan(&designerName, &creatorName, &category, &url)
	require.NoError(t, err)
	assert.Equal(t, "carol", designerName)
	assert.Equal(t, "Alice", creatorName)
	assert.Equal(t, "gaming", category)
	assert.Equal(t, testSourceURL, url)

	stored := h.reload(t, request.ID)
	require.NotNil(t, stored.RecordID)
	assert.Equal(t, result.Record.ID, *stored.RecordID)

	transitions, err := h.lifecycle.Transitions(ctx, testGuildID, request.ID)
	require.NoError(t, err)
	require.Len(t, transitions, 3)
	for i, kind := range []entities.TransitionKind{entities.TransitionPost, entities.TransitionClaim, entities.TransitionSubmit} {
		assert.Equal(t, kind, transitions[i].Kind)
		assert.Equal(t, entities.TransitionStatusCompleted, transitions[i].Status)
	}

	assert.Equal(t, []events.EventType{
		events.EventTypeRequestOpened,
		events.EventTypeRequestClaimed,
		events.EventTypeRequestSubmitted,
	}, h.events.EventTypes())
}

func TestRequestLifecycle_UnclaimIsRepeatable(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)

	for i := 1; i <= 3; i++ {
		claimed, err := h.claim(carolID, "carol", request.ID)
		require.NoError(t, err)
		assert.Equal(t, i, claimed.ClaimCount)

		reopened, err := h.lifecycle.Unclaim(ctx, testGuildID, request.ID, carolID, false)
		require.NoError(t, err)
		assert.Equal(t, entities.RequestStateOpen, reopened.State)
		assert.Nil(t, reopened.DesignerID)
		assert.Nil(t, reopened.PrivateChannelID)
	}

	stored := h.reload(t, request.ID)
	assert.Equal(t, entities.RequestStateOpen, stored.State)
	assert.Equal(t, request.CreatorID, stored.CreatorID)
	assert.Equal(t, "Alice", stored.CreatorName)
	assert.Equal(t, "gaming", stored.Category)
	assert.Equal(t, testSourceURL, stored.SourceURL)
	assert.Equal(t, 3, stored.ClaimCount)

	// Only the latest public control remains and it is claimable
	assert.Equal(t, 1, h.poster.PublicControlCount())
	assert.Equal(t, 0, h.poster.PrivateChannelCount())
	require.NotNil(t, stored.MessageID)
	assert.NotEqual(t, *request.MessageID, *stored.MessageID)
	assert.Equal(t, application.PublicControlOpen, h.poster.PublicControl(*stored.MessageID).State)
}

func TestRequestLifecycle_UnclaimRequiresClaimantOrManager(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)
	_, err := h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)

	_, err = h.lifecycle.Unclaim(ctx, testGuildID, request.ID, daveID, false)
	var unauthorized *services.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)

	_, err = h.lifecycle.Unclaim(ctx, testGuildID, request.ID, adminID, true)
	require.NoError(t, err)

	_, err = h.lifecycle.Unclaim(ctx, testGuildID, request.ID, carolID, false)
	require.ErrorIs(t, err, services.ErrNotClaimed)
}

func TestRequestLifecycle_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	h := newWorkflowHarness(t)

	request := h.openAliceRequest(t)

	designers := []struct {
		id   int64
		name string
	}{
		{carolID, "carol"},
		{daveID, "dave"},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(designers))
	for i, d := range designers {
		wg.Add(1)
		go func(i int, id int64, name string) {
			defer wg.Done()
			_, errs[i] = h.claim(id, name, request.ID)
		}(i, d.id, d.name)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, services.ErrAlreadyClaimed)
	}
	assert.Equal(t, 1, winners)

	stored := h.reload(t, request.ID)
	assert.Equal(t, entities.RequestStateClaimed, stored.State)
	assert.Equal(t, 1, stored.ClaimCount)
	assert.Equal(t, 1, h.poster.PrivateChannelCount())
}

func TestRequestLifecycle_ConfirmNoWritesNothing(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)
	_, err := h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)

	// Approval only prompts; declining the prompt leaves the request untouched
	_, err = h.lifecycle.Approve(ctx, testGuildID, request.ID, oliveID, false)
	require.NoError(t, err)

	assert.Equal(t, 0, h.recordCount(t))
	assert.Equal(t, entities.RequestStateClaimed, h.reload(t, request.ID).State)
}

func TestRequestLifecycle_ApproveRequiresOverseer(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)
	_, err := h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)

	_, err = h.lifecycle.Approve(ctx, testGuildID, request.ID, carolID, false)
	var unauthorized *services.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)

	_, err = h.lifecycle.Confirm(ctx, testGuildID, request.ID, bobID, false)
	require.ErrorAs(t, err, &unauthorized)

	// Administrators may approve without an overseer row
	_, err = h.lifecycle.Approve(ctx, testGuildID, request.ID, adminID, true)
	require.NoError(t, err)
}

func TestRequestLifecycle_DesignerDeactivatedBeforeConfirm(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)
	_, err := h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)

	h.deactivateStaff(t, entities.StaffKindDesigner, carolID)

	_, err = h.lifecycle.Confirm(ctx, testGuildID, request.ID, oliveID, false)
	require.Error(t, err)
	assert.True(t, services.IsNotFound(err, services.EntityDesigner))

	assert.Equal(t, 0, h.recordCount(t))
	assert.Equal(t, entities.RequestStateClaimed, h.reload(t, request.ID).State)
}

func TestRequestLifecycle_SecondConfirmIsRejected(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)
	_, err := h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)

	_, err = h.lifecycle.Confirm(ctx, testGuildID, request.ID, oliveID, false)
	require.NoError(t, err)

	_, err = h.lifecycle.Confirm(ctx, testGuildID, request.ID, oliveID, false)
	require.ErrorIs(t, err, services.ErrAlreadySubmitted)

	assert.Equal(t, 1, h.recordCount(t))
}

func TestRequestLifecycle_ClaimCompensatedWhenPublicControlFails(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)

	h.poster.Fail(application.StepUpdatePublicControl, true)
	claimed, err := h.claim(carolID, "carol", request.ID)
	assert.Nil(t, claimed)

	var platformErr *services.PlatformActionFailedError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, application.StepUpdatePublicControl, platformErr.Step)
	assert.ErrorIs(t, err, application.ErrMockDiscord)

	stored := h.reload(t, request.ID)
	assert.Equal(t, entities.RequestStateOpen, stored.State)
	assert.Nil(t, stored.DesignerID)
	assert.Equal(t, 0, stored.ClaimCount)
	assert.Equal(t, 0, h.poster.PrivateChannelCount())

	transitions, err := h.lifecycle.Transitions(ctx, testGuildID, request.ID)
	require.NoError(t, err)
	require.Len(t, transitions, 2)
	assert.Equal(t, entities.TransitionStatusCompensated, transitions[1].Status)
	require.NotNil(t, transitions[1].FailedStep)
	assert.Equal(t, application.StepUpdatePublicControl, *transitions[1].FailedStep)

	// The undone claim is announced
	assert.Equal(t, []events.EventType{
		events.EventTypeRequestOpened,
		events.EventTypeRequestClaimed,
		events.EventTypeRequestUnclaimed,
	}, h.events.EventTypes())

	// The request can be claimed once Discord recovers
	h.poster.Fail(application.StepUpdatePublicControl, false)
	claimed, err = h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, claimed.ClaimCount)
}

func TestRequestLifecycle_ClaimKeepsCompletedStepsOnLaterFailure(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)

	h.poster.Fail(application.StepPinClaimControl, true)
	claimed, err := h.claim(carolID, "carol", request.ID)

	var platformErr *services.PlatformActionFailedError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, application.StepPinClaimControl, platformErr.Step)
	require.NotNil(t, claimed)

	stored := h.reload(t, request.ID)
	assert.Equal(t, entities.RequestStateClaimed, stored.State)
	require.NotNil(t, stored.PrivateChannelID)
	require.NotNil(t, stored.ControlMessageID)
	assert.Equal(t, 1, h.poster.PrivateChannelCount())

	transitions, err := h.lifecycle.Transitions(ctx, testGuildID, request.ID)
	require.NoError(t, err)
	require.Len(t, transitions, 2)
	assert.Equal(t, entities.TransitionStatusFailed, transitions[1].Status)
	assert.Contains(t, h.metrics.Failures, application.StepPinClaimControl)
}

func TestRequestLifecycle_RepostAfterFailedPost(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	h.poster.Fail(application.StepPostPublicControl, true)
	request, err := h.lifecycle.Open(ctx, interfaces.OpenRequestParams{
		GuildID:     testGuildID,
		ActorID:     bobID,
		ActorName:   "bob",
		CreatorName: "Alice",
		SourceURL:   testSourceURL,
		Category:    "gaming",
	})
	var platformErr *services.PlatformActionFailedError
	require.ErrorAs(t, err, &platformErr)
	require.NotNil(t, request)
	assert.Nil(t, h.reload(t, request.ID).MessageID)

	h.poster.Fail(application.StepPostPublicControl, false)
	reposted, err := h.lifecycle.Repost(ctx, testGuildID, request.ID, adminID)
	require.NoError(t, err)
	require.NotNil(t, reposted.MessageID)

	stored := h.reload(t, request.ID)
	require.NotNil(t, stored.MessageID)
	assert.Equal(t, *reposted.MessageID, *stored.MessageID)
	assert.Equal(t, 1, h.poster.PublicControlCount())

	open, err := h.lifecycle.List(ctx, testGuildID, entities.RequestStateOpen, 0)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, request.ID, open[0].ID)
}

func TestRequestLifecycle_OpenAuthorization(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params interfaces.OpenRequestParams
		check  func(t *testing.T, err error)
	}{
		{
			name:   "editor not assigned to creator",
			params: interfaces.OpenRequestParams{ActorID: bobID, CreatorName: "Zed", SourceURL: testSourceURL, Category: "gaming"},
			check: func(t *testing.T, err error) {
				var unauthorized *services.UnauthorizedError
				assert.ErrorAs(t, err, &unauthorized)
			},
		},
		{
			name:   "designer is not an editor",
			params: interfaces.OpenRequestParams{ActorID: carolID, CreatorName: "Alice", SourceURL: testSourceURL, Category: "gaming"},
			check: func(t *testing.T, err error) {
				var unauthorized *services.UnauthorizedError
				assert.ErrorAs(t, err, &unauthorized)
			},
		},
		{
			name:   "non youtube url",
			params: interfaces.OpenRequestParams{ActorID: bobID, CreatorName: "Alice", SourceURL: "https://vimeo.com/1", Category: "gaming"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, services.ErrInvalidURL)
			},
		},
		{
			name:   "unknown category",
			params: interfaces.OpenRequestParams{ActorID: bobID, CreatorName: "Alice", SourceURL: testSourceURL, Category: "cooking"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, services.ErrCategoryNotFound)
			},
		},
		{
			name:   "admin skips assignment",
			params: interfaces.OpenRequestParams{ActorID: adminID, IsAdmin: true, CreatorName: "Zed", SourceURL: testSourceURL, Category: "gaming"},
			check: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.GuildID = testGuildID
			params.ActorName = "actor"

			_, err := h.lifecycle.Open(ctx, params)
			tt.check(t, err)
		})
	}

	open, err := h.lifecycle.List(ctx, testGuildID, entities.RequestStateOpen, 10)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestRequestLifecycle_RejectedClaimPublishesNothing(t *testing.T) {
	h := newWorkflowHarness(t)

	request := h.openAliceRequest(t)
	_, err := h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)

	_, err = h.claim(daveID, "dave", request.ID)
	require.True(t, errors.Is(err, services.ErrAlreadyClaimed))
	assert.Equal(t, 1, h.poster.PrivateChannelCount())

	claimedEvents := 0
	for _, eventType := range h.events.EventTypes() {
		if eventType == events.EventTypeRequestClaimed {
			claimedEvents++
		}
	}
	assert.Equal(t, 1, claimedEvents)
}

func TestRequestLifecycle_ConfirmKeepsRecordWhenControlsFail(t *testing.T) {
	steps := []string{application.StepUpdatePublicControl, application.StepDisableClaimControl}

	for _, step := range steps {
		t.Run(step, func(t *testing.T) {
			h := newWorkflowHarness(t)
			ctx := context.Background()

			request := h.openAliceRequest(t)
			_, err := h.claim(carolID, "carol", request.ID)
			require.NoError(t, err)

			h.poster.Fail(step, true)
			result, err := h.lifecycle.Confirm(ctx, testGuildID, request.ID, oliveID, false)

			var platformErr *services.PlatformActionFailedError
			require.ErrorAs(t, err, &platformErr)
			assert.Equal(t, step, platformErr.Step)
			require.NotNil(t, result)
			require.NotNil(t, result.Record)

			// The ledger entry stands
			assert.Equal(t, 1, h.recordCount(t))
			stored := h.reload(t, request.ID)
			assert.Equal(t, entities.RequestStateSubmitted, stored.State)
			require.NotNil(t, stored.RecordID)
			assert.Equal(t, result.Record.ID, *stored.RecordID)

			transitions, err := h.lifecycle.Transitions(ctx, testGuildID, request.ID)
			require.NoError(t, err)
			require.Len(t, transitions, 3)
			assert.Equal(t, entities.TransitionSubmit, transitions[2].Kind)
			assert.Equal(t, entities.TransitionStatusFailed, transitions[2].Status)
			require.NotNil(t, transitions[2].FailedStep)
			assert.Equal(t, step, *transitions[2].FailedStep)

			// A retry cannot record twice
			h.poster.Fail(step, false)
			_, err = h.lifecycle.Confirm(ctx, testGuildID, request.ID, oliveID, false)
			assert.ErrorIs(t, err, services.ErrAlreadySubmitted)
			assert.Equal(t, 1, h.recordCount(t))
		})
	}
}

func TestRequestLifecycle_UnclaimStoresLiveControlWhenDiscordFails(t *testing.T) {
	tests := []struct {
		step string
		// The public control that is still on Discord after the failure
		wantOriginal bool
	}{
		{step: application.StepDeletePublicControl, wantOriginal: true},
		{step: application.StepDeletePrivateChannel, wantOriginal: false},
	}

	for _, tt := range tests {
		t.Run(tt.step, func(t *testing.T) {
			h := newWorkflowHarness(t)
			ctx := context.Background()

			request := h.openAliceRequest(t)
			_, err := h.claim(carolID, "carol", request.ID)
			require.NoError(t, err)

			h.poster.Fail(tt.step, true)
			reopened, err := h.lifecycle.Unclaim(ctx, testGuildID, request.ID, carolID, false)

			var platformErr *services.PlatformActionFailedError
			require.ErrorAs(t, err, &platformErr)
			assert.Equal(t, tt.step, platformErr.Step)
			require.NotNil(t, reopened)

			stored := h.reload(t, request.ID)
			assert.Equal(t, entities.RequestStateOpen, stored.State)
			assert.Nil(t, stored.DesignerID)
			require.NotNil(t, stored.MessageID)
			if tt.wantOriginal {
				assert.Equal(t, *request.MessageID, *stored.MessageID)
			} else {
				assert.NotEqual(t, *request.MessageID, *stored.MessageID)
			}

			// The stored id points at a control that exists on Discord
			assert.Equal(t, 1, h.poster.PublicControlCount())
			require.NotNil(t, h.poster.PublicControl(*stored.MessageID))

			transitions, err := h.lifecycle.Transitions(ctx, testGuildID, request.ID)
			require.NoError(t, err)
			require.Len(t, transitions, 3)
			assert.Equal(t, entities.TransitionUnclaim, transitions[2].Kind)
			assert.Equal(t, entities.TransitionStatusFailed, transitions[2].Status)

			// Discord recovers and the request can be claimed again
			h.poster.Fail(tt.step, false)
			claimed, err := h.claim(daveID, "dave", request.ID)
			require.NoError(t, err)
			assert.Equal(t, 2, claimed.ClaimCount)
		})
	}
}

func TestRequestLifecycle_ConcurrentConfirmsRecordOnce(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()

	request := h.openAliceRequest(t)
	_, err := h.claim(carolID, "carol", request.ID)
	require.NoError(t, err)

	const approvers = 4
	var wg sync.WaitGroup
	errs := make([]error, approvers)
	for i := 0; i < approvers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.lifecycle.Confirm(ctx, testGuildID, request.ID, oliveID, false)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, services.ErrAlreadySubmitted)
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, h.recordCount(t))
	assert.Equal(t, entities.RequestStateSubmitted, h.reload(t, request.ID).State)
}
