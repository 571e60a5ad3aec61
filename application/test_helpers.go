package application

import (
	"context"
	"errors"
	"sync"

	"thumbnailbot/domain/entities"
)

// ErrMockDiscord is returned by MockRequestPoster for failing steps
var ErrMockDiscord = errors.New("discord unavailable")

// PublicControlState is what MockRequestPoster shows on a public control
type PublicControlState string

const (
	PublicControlOpen      PublicControlState = "open"
	PublicControlClaimed   PublicControlState = "claimed"
	PublicControlCompleted PublicControlState = "completed"
)

// MockPublicControl is a public message posted by MockRequestPoster
type MockPublicControl struct {
	ChannelID int64
	RequestID string
	State     PublicControlState
	Label     string
}

// MockRequestPoster implements RequestPoster in memory for testing.
// Steps named in FailSteps return ErrMockDiscord.
type MockRequestPoster struct {
	mu sync.Mutex

	FailSteps map[string]bool

	nextID           int64
	PublicControls   map[int64]*MockPublicControl
	PrivateChannels  map[int64]string
	ClaimControls    map[int64]int64 // message id -> channel id
	Pinned           map[int64]bool
	DisabledControls map[int64]bool
}

// NewMockRequestPoster creates an empty in-memory poster
func NewMockRequestPoster() *MockRequestPoster {
	return &MockRequestPoster{
		FailSteps:        make(map[string]bool),
		nextID:           5000,
		PublicControls:   make(map[int64]*MockPublicControl),
		PrivateChannels:  make(map[int64]string),
		ClaimControls:    make(map[int64]int64),
		Pinned:           make(map[int64]bool),
		DisabledControls: make(map[int64]bool),
	}
}

// Fail makes step return ErrMockDiscord until cleared
func (m *MockRequestPoster) Fail(step string, fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailSteps[step] = fail
}

// PublicControl returns the public control with the given message id
func (m *MockRequestPoster) PublicControl(messageID int64) *MockPublicControl {
	m.mu.Lock()
	defer m.mu.Unlock()
	control, ok := m.PublicControls[messageID]
	if !ok {
		return nil
	}
	copied := *control
	return &copied
}

// PublicControlCount returns how many public controls currently exist
func (m *MockRequestPoster) PublicControlCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.PublicControls)
}

// PrivateChannelCount returns how many private channels currently exist
func (m *MockRequestPoster) PrivateChannelCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.PrivateChannels)
}

func (m *MockRequestPoster) PostOpenControl(ctx context.Context, request *entities.ThumbnailRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSteps[StepPostPublicControl] {
		return 0, ErrMockDiscord
	}

	m.nextID++
	m.PublicControls[m.nextID] = &MockPublicControl{
		ChannelID: request.ChannelID,
		RequestID: request.ID.String(),
		State:     PublicControlOpen,
		Label:     "Claim",
	}
	return m.nextID, nil
}

func (m *MockRequestPoster) MarkClaimed(ctx context.Context, request *entities.ThumbnailRequest) error {
	return m.editPublic(request, PublicControlClaimed, "Claimed by "+request.ClaimantName())
}

func (m *MockRequestPoster) MarkCompleted(ctx context.Context, request *entities.ThumbnailRequest) error {
	return m.editPublic(request, PublicControlCompleted, "Completed")
}

func (m *MockRequestPoster) editPublic(request *entities.ThumbnailRequest, state PublicControlState, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSteps[StepUpdatePublicControl] {
		return ErrMockDiscord
	}
	if request.MessageID == nil {
		return errors.New("request has no public control")
	}

	control, ok := m.PublicControls[*request.MessageID]
	if !ok {
		return errors.New("unknown message")
	}
	control.State = state
	control.Label = label
	return nil
}

func (m *MockRequestPoster) CreatePrivateChannel(ctx context.Context, request *entities.ThumbnailRequest, designerUsername string, overseerRoleID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSteps[StepCreatePrivateChannel] {
		return 0, ErrMockDiscord
	}

	m.nextID++
	m.PrivateChannels[m.nextID] = "thumbnail-" + designerUsername
	return m.nextID, nil
}

func (m *MockRequestPoster) PostClaimControl(ctx context.Context, channelID int64, request *entities.ThumbnailRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSteps[StepPostClaimControl] {
		return 0, ErrMockDiscord
	}

	m.nextID++
	m.ClaimControls[m.nextID] = channelID
	return m.nextID, nil
}

func (m *MockRequestPoster) PinMessage(ctx context.Context, channelID, messageID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSteps[StepPinClaimControl] {
		return ErrMockDiscord
	}
	m.Pinned[messageID] = true
	return nil
}

func (m *MockRequestPoster) DisableClaimControl(ctx context.Context, request *entities.ThumbnailRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSteps[StepDisableClaimControl] {
		return ErrMockDiscord
	}
	m.DisabledControls[*request.ControlMessageID] = true
	return nil
}

func (m *MockRequestPoster) DeleteMessage(ctx context.Context, channelID, messageID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSteps[StepDeletePublicControl] {
		return ErrMockDiscord
	}
	delete(m.PublicControls, messageID)
	return nil
}

func (m *MockRequestPoster) DeleteChannel(ctx context.Context, channelID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSteps[StepDeletePrivateChannel] {
		return ErrMockDiscord
	}
	delete(m.PrivateChannels, channelID)
	return nil
}

// RecordingMetrics implements LifecycleMetrics and keeps every call
type RecordingMetrics struct {
	mu          sync.Mutex
	Transitions []string
	Failures    []string
}

func (r *RecordingMetrics) RecordTransition(kind entities.TransitionKind, status entities.TransitionStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Transitions = append(r.Transitions, string(kind)+":"+string(status))
}

func (r *RecordingMetrics) RecordPlatformFailure(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, step)
}
