package events

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

type recordingHandler struct {
	mu     sync.Mutex
	seen   []Event
	accept string
	fail   bool
}

func (h *recordingHandler) Handle(event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, event)
	if h.fail {
		return errors.New("handler failure")
	}
	return nil
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return h.accept == "" || h.accept == eventType
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.seen)
}

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(zerolog.Nop())
	params := entities.SimulationParameters{Days: 2, NumProducts: 4, TotalPrice: 80}

	if err := store.AppendEvent("run-a", NewSimulationStartedEvent("run-a", params, 42)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}
	result := entities.DayResult{Day: 0, Counts: entities.StateCounts{4}, DailyCost: 40, TotalCost: 40}
	if err := store.AppendEvent("run-a", NewDayAdvancedEvent("run-a", result)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}
	if err := store.AppendEvent("run-b", NewSimulationAbortedEvent("run-b", 0, "cancelled")); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}

	streamA, err := store.ReadEvents("run-a", 0)
	if err != nil {
		t.Fatalf("Failed to read events: %v", err)
	}
	if len(streamA) != 2 {
		t.Fatalf("Expected 2 events for run-a, got %d", len(streamA))
	}
	if streamA[0].Version() != 1 || streamA[1].Version() != 2 {
		t.Errorf("Expected versions 1 and 2, got %d and %d", streamA[0].Version(), streamA[1].Version())
	}
	if streamA[1].Type() != DayAdvancedEvent {
		t.Errorf("Expected %s, got %s", DayAdvancedEvent, streamA[1].Type())
	}
	if data, ok := streamA[1].Data().(DayAdvanced); !ok || data.Result.TotalCost != 40 {
		t.Errorf("Unexpected event data %#v", streamA[1].Data())
	}

	fromTwo, _ := store.ReadEvents("run-a", 2)
	if len(fromTwo) != 1 {
		t.Errorf("Expected 1 event from version 2, got %d", len(fromTwo))
	}
	beyond, _ := store.ReadEvents("run-a", 5)
	if len(beyond) != 0 {
		t.Errorf("Expected no events beyond the stream, got %d", len(beyond))
	}
	missing, _ := store.ReadEvents("run-missing", 1)
	if len(missing) != 0 {
		t.Errorf("Expected no events for unknown stream, got %d", len(missing))
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 3 {
		t.Errorf("Expected 3 events overall, got %d", len(all))
	}
	tail, _ := store.ReadAllEvents(2)
	if len(tail) != 1 || tail[0].StreamID() != "run-b" {
		t.Errorf("Expected the run-b event at position 2, got %v", tail)
	}
}

func TestInMemoryEventStore_RejectsInvalidAppends(t *testing.T) {
	store := NewInMemoryEventStore(zerolog.Nop())

	if err := store.AppendEvent("", NewEvent("x", "", nil)); err == nil {
		t.Error("Expected error for empty stream ID")
	}
	if err := store.AppendEvent("run", nil); err == nil {
		t.Error("Expected error for nil event")
	}
}

func TestInMemoryEventStore_Subscribers(t *testing.T) {
	var logs bytes.Buffer
	store := NewInMemoryEventStore(zerolog.New(&logs))

	dayHandler := &recordingHandler{accept: DayAdvancedEvent}
	failing := &recordingHandler{fail: true}

	if err := store.Subscribe([]string{DayAdvancedEvent}, dayHandler); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	if err := store.Subscribe(AllSimulationEventTypes(), failing); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	if err := store.Subscribe([]string{DayAdvancedEvent}, nil); err == nil {
		t.Error("Expected error subscribing a nil handler")
	}

	store.AppendEvent("run", NewSimulationStartedEvent("run", entities.SimulationParameters{Days: 1, NumProducts: 1, TotalPrice: 1}, 1))
	store.AppendEvent("run", NewDayAdvancedEvent("run", entities.DayResult{}))
	store.Wait()

	if dayHandler.count() != 1 {
		t.Errorf("Expected day handler to see 1 event, got %d", dayHandler.count())
	}
	if failing.count() != 2 {
		t.Errorf("Expected failing handler to see 2 events, got %d", failing.count())
	}
	if !strings.Contains(logs.String(), "event handler failed") {
		t.Errorf("Expected handler failure to be logged, got %q", logs.String())
	}

	store.Unsubscribe(dayHandler)
	store.AppendEvent("run", NewDayAdvancedEvent("run", entities.DayResult{Day: 1}))
	store.Wait()

	if dayHandler.count() != 1 {
		t.Errorf("Expected unsubscribed handler to see no more events, got %d", dayHandler.count())
	}
}

func TestLogHandler(t *testing.T) {
	var logs bytes.Buffer
	handler := NewLogHandler(zerolog.New(&logs).Level(zerolog.DebugLevel))

	if handler.CanHandle("order.planned") {
		t.Error("Expected log handler to ignore foreign event types")
	}

	summary := entities.FinalSummary{Counts: entities.StateCounts{1, 2, 3, 4, 5}, TotalCost: 12.5}
	events := []Event{
		NewSimulationStartedEvent("run", entities.SimulationParameters{Days: 3, NumProducts: 10, TotalPrice: 1000}, 42),
		NewDayAdvancedEvent("run", entities.DayResult{Day: 1, Counts: entities.StateCounts{8, 1, 0, 0, 1}}),
		NewSimulationCompletedEvent("run", summary),
		NewSimulationAbortedEvent("run", 2, "client request"),
	}
	for _, event := range events {
		if !handler.CanHandle(event.Type()) {
			t.Errorf("Expected log handler to accept %s", event.Type())
		}
		if err := handler.Handle(event); err != nil {
			t.Errorf("Handle failed: %v", err)
		}
	}

	output := logs.String()
	for _, want := range []string{`"seed":42`, `"counts":[8,1,0,0,1]`, `"total_cost":12.5`, `"reason":"client request"`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected log output to contain %s, got %s", want, output)
		}
	}
}
