package types

import (
	"fmt"
	"strings"
)

// ServiceType is the order_type tag stored on fee groups and orders.
type ServiceType string

const (
	SERVICE_VC      ServiceType = "vc"
	SERVICE_TWOSHOT ServiceType = "twoshot"
	SERVICE_MNG     ServiceType = "mng"
)

var ServiceTypes = []ServiceType{SERVICE_VC, SERVICE_TWOSHOT, SERVICE_MNG}

// ServiceKey is the row key in service_status for this type.
func (s ServiceType) ServiceKey() string {
	switch s {
	case SERVICE_VC:
		return "video_call"
	case SERVICE_TWOSHOT:
		return "two_shot"
	case SERVICE_MNG:
		return "meet_greet"
	}
	return ""
}

// TermsKey is the site_content key holding the terms text for this type.
func (s ServiceType) TermsKey() string {
	return "terms_" + string(s)
}

func (s ServiceType) Label() string {
	switch s {
	case SERVICE_VC:
		return "Video Call"
	case SERVICE_TWOSHOT:
		return "2-Shot"
	case SERVICE_MNG:
		return "Meet & Greet"
	}
	return string(s)
}

func (s ServiceType) Valid() bool {
	switch s {
	case SERVICE_VC, SERVICE_TWOSHOT, SERVICE_MNG:
		return true
	}
	return false
}

func ParseServiceType(v string) (ServiceType, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "vc", "video_call", "video-call":
		return SERVICE_VC, nil
	case "twoshot", "two_shot", "two-shot", "2s":
		return SERVICE_TWOSHOT, nil
	case "mng", "meet_greet", "meet-greet", "meet-and-greet":
		return SERVICE_MNG, nil
	}
	return "", fmt.Errorf("unknown service type: %q", v)
}

// ServiceTypeFromKey maps a service_status key back to its type.
func ServiceTypeFromKey(key string) (ServiceType, bool) {
	for _, s := range ServiceTypes {
		if s.ServiceKey() == key {
			return s, true
		}
	}
	return "", false
}

type AvailabilityStatus string

const (
	STATUS_OPEN        AvailabilityStatus = "OPEN"
	STATUS_CLOSED      AvailabilityStatus = "CLOSED"
	STATUS_FULL_SLOT   AvailabilityStatus = "FULL_SLOT"
	STATUS_COMING_SOON AvailabilityStatus = "COMING_SOON"
)

func (a AvailabilityStatus) Valid() bool {
	switch a {
	case STATUS_OPEN, STATUS_CLOSED, STATUS_FULL_SLOT, STATUS_COMING_SOON:
		return true
	}
	return false
}

func (a AvailabilityStatus) Label() string {
	switch a {
	case STATUS_OPEN:
		return "Buka"
	case STATUS_CLOSED:
		return "Tutup"
	case STATUS_FULL_SLOT:
		return "Slot Penuh"
	case STATUS_COMING_SOON:
		return "Segera Hadir"
	}
	return string(a)
}

func (a AvailabilityStatus) Description() string {
	switch a {
	case STATUS_CLOSED:
		return "Layanan sedang ditutup sementara."
	case STATUS_FULL_SLOT:
		return "Slot untuk periode ini sudah penuh."
	case STATUS_COMING_SOON:
		return "Layanan akan segera dibuka."
	}
	return ""
}

type OrderStatus string

const (
	ORDER_PENDING   OrderStatus = "pending"
	ORDER_CONFIRMED OrderStatus = "confirmed"
	ORDER_DONE      OrderStatus = "done"
	ORDER_CANCELLED OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	ORDER_PENDING:   {ORDER_CONFIRMED, ORDER_DONE, ORDER_CANCELLED},
	ORDER_CONFIRMED: {ORDER_DONE, ORDER_CANCELLED},
}

func (o OrderStatus) Valid() bool {
	switch o {
	case ORDER_PENDING, ORDER_CONFIRMED, ORDER_DONE, ORDER_CANCELLED:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move an order from o to next.
func (o OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, s := range orderTransitions[o] {
		if s == next {
			return true
		}
	}
	return false
}

// Sessions offered per event day.
var Sessions = []string{"Sesi 1", "Sesi 2", "Sesi 3"}

// ReviewServices are the values accepted on the public review form.
var ReviewServices = []string{"Joki VC", "Joki MNG", "Joki 2S", "Lainnya"}
