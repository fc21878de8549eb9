package rabbitmq

import (
	"errors"
	"testing"
)

func TestNewConnectionReusesName(t *testing.T) {
	first := NewConnection("test-pool", []string{"diet-plan"})
	second := NewConnection("test-pool", []string{"other"})
	if first != second {
		t.Fatal("expected the pooled connection")
	}
	if GetConnection("test-pool") != first || len(first.Queues) != 1 || first.Queues[0] != "diet-plan" {
		t.Fatalf("unexpected pooled connection %+v", first)
	}
	if GetConnection("missing") != nil {
		t.Fatal("unknown name returned a connection")
	}
}

func TestConnectWithoutDomain(t *testing.T) {
	c := NewConnection("test-no-domain", []string{"diet-plan"})
	if err := c.Connect(); err == nil {
		t.Fatal("expected an error without rabbitmq.domain")
	}
}

func TestNotifyDoesNotBlock(t *testing.T) {
	ch := make(chan error, 1)
	notify(ch, errors.New("first"))
	notify(ch, errors.New("second"))
	if err := <-ch; err.Error() != "first" {
		t.Fatalf("got %v", err)
	}
}
