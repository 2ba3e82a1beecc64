package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/lixenwraith/blockrooms/event"
)

// Record is one line of the event log
type Record struct {
	TS      time.Time       `json:"ts"`
	Frame   int64           `json:"frame"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Entry is a decoded Record with its typed payload
type Entry struct {
	TS      time.Time
	Frame   int64
	Type    event.EventType
	Payload any // Pointer to the registered payload struct, nil if none
}

// ReadFile decodes every record in a telemetry file
// Unknown event names decode with EventNone and a nil payload
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var out []Entry
	for line := 1; sc.Scan(); line++ {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return out, fmt.Errorf("%s:%d: %w", path, line, err)
		}

		entry := Entry{TS: rec.TS, Frame: rec.Frame}
		et, ok := event.GetEventType(rec.Type)
		if ok {
			entry.Type = et
			if payload := event.NewPayloadStruct(et); payload != nil && len(rec.Payload) > 0 && string(rec.Payload) != "null" {
				if err := json.Unmarshal(rec.Payload, payload); err != nil {
					return out, fmt.Errorf("%s:%d: payload: %w", path, line, err)
				}
				entry.Payload = payload
			}
		}
		out = append(out, entry)
	}
	return out, sc.Err()
}
