package wire_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/forgeci/corekit/wire"
)

type controlMsg struct {
	Action string            `json:"action"`
	Params map[string]string `json:"params,omitempty"`
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sent := controlMsg{Action: "build", Params: map[string]string{"branch": "master"}}
	ok, err := wire.WriteJSON(&buf, sent)
	if err != nil || !ok {
		t.Fatalf("write: ok=%v err=%v", ok, err)
	}

	var got controlMsg
	ok, err = wire.ReadJSON(&buf, &got)
	if err != nil || !ok {
		t.Fatalf("read: ok=%v err=%v", ok, err)
	}
	if got.Action != "build" || got.Params["branch"] != "master" {
		t.Errorf("decoded %+v", got)
	}
}

func TestReadJSONNoMessage(t *testing.T) {
	var got controlMsg
	ok, err := wire.ReadJSON(strings.NewReader("\n"), &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no message")
	}
}

func TestWriteJSONNilWriter(t *testing.T) {
	ok, err := wire.WriteJSON(nil, controlMsg{Action: "bla"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false")
	}
}
