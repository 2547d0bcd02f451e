package events

import (
	"reflect"
	"strings"
)

var (
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
)

func init() {
	RegisterType("EventAdvance", EventAdvance, nil)
	RegisterType("EventIngredientSelected", EventIngredientSelected, &IngredientPayload{})
	RegisterType("EventForceRepetition", EventForceRepetition, nil)
	RegisterType("EventRecalibrate", EventRecalibrate, nil)
	RegisterType("EventPhaseChanged", EventPhaseChanged, &PhaseChangedPayload{})
	RegisterType("EventCalibrationComplete", EventCalibrationComplete, &CalibrationPayload{})
	RegisterType("EventRepetitionCompleted", EventRepetitionCompleted, &RepetitionPayload{})
	RegisterType("EventPowerFull", EventPowerFull, nil)
	RegisterType("EventOrderCreated", EventOrderCreated, &OrderPayload{})
	RegisterType("EventOrderMismatch", EventOrderMismatch, &MismatchPayload{})
	RegisterType("EventOrderCompleted", EventOrderCompleted, &OrderCompletedPayload{})
	RegisterType("EventTimeExpired", EventTimeExpired, nil)
	RegisterType("EventCustomerArrived", EventCustomerArrived, &CustomerPayload{})
	RegisterType("EventCustomerAngry", EventCustomerAngry, &CustomerPayload{})
	RegisterType("EventCustomerLeft", EventCustomerLeft, &CustomerPayload{})
	RegisterType("EventCustomerServed", EventCustomerServed, &CustomerPayload{})
}

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct (e.g., &OrderPayload{})
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
	// Special case for FSM "Tick"
	if strings.EqualFold(name, "Tick") {
		return EventTick, true
	}
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	if et == EventTick {
		return "Tick"
	}
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "EventUnknown"
}

// PayloadType returns the registered payload struct type, nil if the event carries none
func PayloadType(et EventType) reflect.Type {
	return typeToPayload[et]
}
