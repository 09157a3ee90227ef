package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"blynk_bridge/internal/config"
	"blynk_bridge/internal/models"

	mqttLib "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeToken is a completed mqtt token.
type fakeToken struct {
	err     error
	pending bool
}

func (t *fakeToken) Wait() bool                     { return !t.pending }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.pending }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if !t.pending {
		close(ch)
	}
	return ch
}
func (t *fakeToken) Error() error { return t.err }

// mockClient overrides the calls the publisher makes; the embedded interface
// panics on anything else.
type mockClient struct {
	mqttLib.Client
	mock.Mock
}

func (m *mockClient) IsConnected() bool {
	return m.Called().Bool(0)
}

func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqttLib.Token {
	args := m.Called(topic, qos, retained, payload)
	return args.Get(0).(mqttLib.Token)
}

func (m *mockClient) Disconnect(quiesce uint) {
	m.Called(quiesce)
}

func testConfig() config.MQTTConfig {
	return config.MQTTConfig{Enabled: true, Broker: "tcp://broker:1883", Topic: "home/bridge/", QoS: 1}
}

func TestPublisher_RecordPublishesJSON(t *testing.T) {
	client := &mockClient{}
	client.On("IsConnected").Return(true)

	var payload []byte
	client.On("Publish", "home/bridge/trigger_doorbell", byte(1), false, mock.Anything).
		Run(func(args mock.Arguments) { payload = args.Get(3).([]byte) }).
		Return(&fakeToken{})

	p := newPublisherWithClient(testConfig(), client, nil)
	ev := models.CommandEvent{EventID: "e1", Type: models.EventTriggerDoorbell, Pin: "V1", Value: 1, Success: true}
	require.NoError(t, p.Record(context.Background(), ev))

	var got models.CommandEvent
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, "e1", got.EventID)
	assert.Equal(t, "V1", got.Pin)
	assert.True(t, got.Success)
	client.AssertExpectations(t)
}

func TestPublisher_RecordNotConnected(t *testing.T) {
	client := &mockClient{}
	client.On("IsConnected").Return(false)

	p := newPublisherWithClient(testConfig(), client, nil)
	err := p.Record(context.Background(), models.CommandEvent{Type: models.EventResetSmoke})
	assert.ErrorIs(t, err, errNotConnected)
	client.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPublisher_RecordPublishError(t *testing.T) {
	client := &mockClient{}
	client.On("IsConnected").Return(true)
	client.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&fakeToken{err: errors.New("broker gone")})

	p := newPublisherWithClient(testConfig(), client, nil)
	err := p.Record(context.Background(), models.CommandEvent{Type: models.EventTriggerSmoke})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker gone")
	assert.Contains(t, err.Error(), "home/bridge/trigger_smoke")
}

func TestPublisher_RecordTimeout(t *testing.T) {
	client := &mockClient{}
	client.On("IsConnected").Return(true)
	client.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&fakeToken{pending: true})

	p := newPublisherWithClient(testConfig(), client, nil)
	err := p.Record(context.Background(), models.CommandEvent{Type: models.EventTriggerSmoke})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestPublisher_StopDisconnectsWhenConnected(t *testing.T) {
	client := &mockClient{}
	client.On("IsConnected").Return(true)
	client.On("Disconnect", uint(disconnectQuiesce)).Return()

	newPublisherWithClient(testConfig(), client, nil).Stop()
	client.AssertExpectations(t)
}

func TestNewPublisher_GeneratesClientID(t *testing.T) {
	p := NewPublisher(testConfig(), nil)
	assert.Contains(t, p.cfg.ClientID, "blynk-bridge-")
	assert.Equal(t, "home/bridge/reset_smoke", p.Topic(models.EventResetSmoke))
}
