package journal

import (
	"io"
	"log"
	"time"

	"github.com/lixenwraith/blockrooms/event"
)

// Subscriber is the subset of event.Bus the recorder needs
type Subscriber interface {
	Subscribe(t event.EventType, h event.Handler)
}

// Recorder mirrors transaction events into the journal
type Recorder struct {
	j       *Journal
	address string
	log     *log.Logger
	rows    map[uint64]int64 // tx seq -> row id
}

// NewRecorder subscribes to transaction events on bus
func NewRecorder(j *Journal, address string, bus Subscriber, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Recorder{
		j:       j,
		address: address,
		log:     logger,
		rows:    make(map[uint64]int64),
	}
	bus.Subscribe(event.EventTxProcessing, r.onProcessing)
	bus.Subscribe(event.EventTxConfirmed, r.onConfirmed)
	bus.Subscribe(event.EventTxFailed, r.onFailed)
	return r
}

func (r *Recorder) onProcessing(ev event.GameEvent) {
	tx, ok := ev.Payload.(*event.TxPayload)
	if !ok {
		return
	}
	id, err := r.j.BeginTx(TxRecord{
		SessionID:   tx.SessionID,
		EncDX:       tx.EncDX,
		EncDZ:       tx.EncDZ,
		RawDX:       tx.RawDX,
		RawDZ:       tx.RawDZ,
		SubmittedAt: ev.Timestamp,
	})
	if err != nil {
		r.log.Printf("journal: %v", err)
		return
	}
	r.rows[tx.Seq] = id

	// Journaled on submit so a reload after a failed first move is still a reconnect
	r.saveSession(tx, ev.Timestamp)
}

func (r *Recorder) onConfirmed(ev event.GameEvent) {
	tx, ok := ev.Payload.(*event.TxPayload)
	if !ok {
		return
	}
	r.resolve(tx.Seq, TxConfirmed, "")
	r.saveSession(tx, ev.Timestamp)
}

func (r *Recorder) onFailed(ev event.GameEvent) {
	tx, ok := ev.Payload.(*event.TxPayload)
	if !ok {
		return
	}
	r.resolve(tx.Seq, TxFailed, tx.Error)
}

func (r *Recorder) saveSession(tx *event.TxPayload, at time.Time) {
	err := r.j.SaveSession(Session{
		Address:   r.address,
		SessionID: tx.SessionID,
		Verified:  tx.Verified,
		UpdatedAt: at,
	})
	if err != nil {
		r.log.Printf("journal: %v", err)
	}
}

func (r *Recorder) resolve(seq uint64, status TxStatus, msg string) {
	id, ok := r.rows[seq]
	if !ok {
		return
	}
	delete(r.rows, seq)
	if err := r.j.ResolveTx(id, status, msg); err != nil {
		r.log.Printf("journal: %v", err)
	}
}
