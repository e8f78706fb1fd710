package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/core/notify"
)

type fakeToken struct {
	err  error
	done chan struct{}
}

func newFakeToken(err error, resolved bool) *fakeToken {
	t := &fakeToken{err: err, done: make(chan struct{})}
	if resolved {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type fakeClient struct {
	connected    bool
	connectErr   error
	publishErr   error
	publishStuck bool
	disconnected bool

	topics   []string
	qos      []byte
	retains  []bool
	payloads [][]byte
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Connect() paho.Token {
	c.connected = c.connectErr == nil
	return newFakeToken(c.connectErr, true)
}

func (c *fakeClient) Disconnect(uint) {
	c.disconnected = true
	c.connected = false
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.topics = append(c.topics, topic)
	c.qos = append(c.qos, qos)
	c.retains = append(c.retains, retained)
	c.payloads = append(c.payloads, payload.([]byte))
	return newFakeToken(c.publishErr, !c.publishStuck)
}

func withFakeClient(t *testing.T, cli *fakeClient) {
	t.Helper()
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return cli }
	t.Cleanup(func() { newMQTTClient = orig })
}

func testSummary() notify.RunSummary {
	obj := 42.5
	return notify.RunSummary{
		RunID:       "run-1",
		CompletedAt: time.Now().UTC().Truncate(time.Second),
		Scenarios: []notify.ScenarioSummary{
			{Scenario: model.Scenario("base"), Status: "optimal", Objective: &obj},
			{Scenario: model.Scenario("high"), Status: "infeasible"},
		},
	}
}

func TestAnnouncerPublishRunSummary(t *testing.T) {
	cli := &fakeClient{}
	withFakeClient(t, cli)

	a, err := NewAnnouncer(Config{Enabled: true, Broker: "tcp://localhost:1883", Topic: "plans/done", QoS: 1, Retain: true})
	if err != nil {
		t.Fatalf("NewAnnouncer: %v", err)
	}
	sum := testSummary()
	if err := a.PublishRunSummary(context.Background(), sum); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(cli.topics) != 1 || cli.topics[0] != "plans/done" {
		t.Fatalf("topics = %v, want [plans/done]", cli.topics)
	}
	if cli.qos[0] != 1 || !cli.retains[0] {
		t.Errorf("qos=%d retain=%v, want 1 true", cli.qos[0], cli.retains[0])
	}
	var got notify.RunSummary
	if err := json.Unmarshal(cli.payloads[0], &got); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if got.RunID != sum.RunID || len(got.Scenarios) != 2 {
		t.Errorf("payload = %+v", got)
	}
	if got.Scenarios[1].Objective != nil {
		t.Errorf("infeasible scenario carries objective %v", *got.Scenarios[1].Objective)
	}
}

func TestAnnouncerPublishError(t *testing.T) {
	errBoom := errors.New("broker gone")
	cli := &fakeClient{publishErr: errBoom}
	withFakeClient(t, cli)

	a, err := NewAnnouncer(Config{Enabled: true, Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("NewAnnouncer: %v", err)
	}
	if err := a.PublishRunSummary(context.Background(), testSummary()); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want broker error", err)
	}
}

func TestAnnouncerPublishCancelled(t *testing.T) {
	cli := &fakeClient{publishStuck: true}
	withFakeClient(t, cli)

	a, err := NewAnnouncer(Config{Enabled: true, Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("NewAnnouncer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.PublishRunSummary(ctx, testSummary()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestAnnouncerConnectError(t *testing.T) {
	cli := &fakeClient{connectErr: errors.New("refused")}
	withFakeClient(t, cli)

	if _, err := NewAnnouncer(Config{Enabled: true, Broker: "tcp://localhost:1883"}); err == nil {
		t.Fatal("expected connect error")
	}
}

func TestAnnouncerClose(t *testing.T) {
	cli := &fakeClient{}
	withFakeClient(t, cli)

	a, err := NewAnnouncer(Config{Enabled: true, Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("NewAnnouncer: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !cli.disconnected {
		t.Error("client not disconnected")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Errorf("disabled config should validate, got %v", err)
	}
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Error("expected error for missing broker")
	}
	if err := (Config{Enabled: true, Broker: "tcp://b:1883", QoS: 3}).Validate(); err == nil {
		t.Error("expected error for qos 3")
	}
}

func TestMockAnnouncer(t *testing.T) {
	m := &MockAnnouncer{}
	if err := m.PublishRunSummary(context.Background(), testSummary()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(m.Summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(m.Summaries))
	}
	m.Fail = true
	if err := m.PublishRunSummary(context.Background(), testSummary()); err == nil {
		t.Error("expected failure")
	}
	if err := m.Close(); err != nil || !m.Closed {
		t.Errorf("close: err=%v closed=%v", err, m.Closed)
	}
}
