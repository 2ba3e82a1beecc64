package event

import (
	"reflect"
	"sync"
)

var (
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryOnce  sync.Once
)

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct (e.g., &AmmoPayload{})
// Pass nil if the event has no payload
func RegisterType(name string, et EventType, payloadInstance any) {
	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	InitRegistry()
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "EventUnknown"
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	InitRegistry()
	t, ok := typeToPayload[et]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

func (et EventType) String() string {
	return GetEventName(et)
}

// InitRegistry populates the registry with all game events
// Safe to call repeatedly
func InitRegistry() {
	registryOnce.Do(func() {
		// Combat
		RegisterType("EventAmmoChanged", EventAmmoChanged, &AmmoPayload{})
		RegisterType("EventReloadChanged", EventReloadChanged, &ReloadPayload{})
		RegisterType("EventShotFired", EventShotFired, &ShotFiredPayload{})
		RegisterType("EventDryFire", EventDryFire, nil)
		RegisterType("EventShotResolved", EventShotResolved, &ShotPayload{})

		// Movement
		RegisterType("EventGateChanged", EventGateChanged, &GatePayload{})
		RegisterType("EventTxProcessing", EventTxProcessing, &TxPayload{})
		RegisterType("EventTxConfirmed", EventTxConfirmed, &TxPayload{})
		RegisterType("EventTxFailed", EventTxFailed, &TxPayload{})
		RegisterType("EventMoveResolved", EventMoveResolved, &MoveResolvedPayload{})
		RegisterType("EventClientReload", EventClientReload, &ClientReloadPayload{})

		// Chain
		RegisterType("EventWorldFetched", EventWorldFetched, &WorldFetchedPayload{})

		// Enemy
		RegisterType("EventEnemySpawned", EventEnemySpawned, &EnemyPayload{})
		RegisterType("EventEnemyCharging", EventEnemyCharging, &EnemyPayload{})
		RegisterType("EventEnemyHit", EventEnemyHit, &EnemyPayload{})
		RegisterType("EventEnemyKilled", EventEnemyKilled, &EnemyPayload{})

		// Player
		RegisterType("EventPickup", EventPickup, &PickupPayload{})
		RegisterType("EventPhaseChanged", EventPhaseChanged, &PhasePayload{})
	})
}
