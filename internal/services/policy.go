package services

import (
	"fmt"
	"strings"
)

// CapacityCheckPolicy decides what the checkout gate does when the capacity
// read itself fails.
type CapacityCheckPolicy int

const (
	// CapacityCheckAdvisory lets the checkout proceed on a read error.
	CapacityCheckAdvisory CapacityCheckPolicy = iota
	// CapacityCheckStrict rejects the checkout on a read error.
	CapacityCheckStrict
)

func ParseCapacityCheckPolicy(value string) (CapacityCheckPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "advisory", "fail_open":
		return CapacityCheckAdvisory, nil
	case "strict", "fail_closed":
		return CapacityCheckStrict, nil
	default:
		return CapacityCheckAdvisory, fmt.Errorf("unknown capacity check policy %q", value)
	}
}

func (p CapacityCheckPolicy) String() string {
	if p == CapacityCheckStrict {
		return "strict"
	}
	return "advisory"
}

// NotificationPolicy decides how a freshly recorded booking is handed to the
// notification dispatcher. Neither mode retries or affects the caller.
type NotificationPolicy int

const (
	NotifyFireAndForget NotificationPolicy = iota
	NotifyInline
)

func ParseNotificationPolicy(value string) (NotificationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "fire_and_forget", "async":
		return NotifyFireAndForget, nil
	case "inline", "sync":
		return NotifyInline, nil
	default:
		return NotifyFireAndForget, fmt.Errorf("unknown notification policy %q", value)
	}
}

func (p NotificationPolicy) String() string {
	if p == NotifyInline {
		return "inline"
	}
	return "fire_and_forget"
}
