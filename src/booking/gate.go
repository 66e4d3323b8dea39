package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"receh48/src/types"
	"time"
)

type Availability struct {
	ServiceKey  string                   `json:"service_key"`
	Status      types.AvailabilityStatus `json:"status"`
	Label       string                   `json:"label"`
	Description string                   `json:"description,omitempty"`
	Message     *string                  `json:"message,omitempty"`
	UpdatedAt   *time.Time               `json:"updated_at,omitempty"`
	// Degraded is set when the status could not be read and OPEN was assumed.
	Degraded bool  `json:"degraded"`
	ReadErr  error `json:"-"`
}

func (a Availability) IsOpen() bool {
	return a.Status == types.STATUS_OPEN
}

func openAvailability(key string) Availability {
	return Availability{
		ServiceKey: key,
		Status:     types.STATUS_OPEN,
		Label:      types.STATUS_OPEN.Label(),
	}
}

// LoadAvailability reads the gate for st. A missing row or a failed read
// resolves to OPEN; read failures are kept on ReadErr.
func LoadAvailability(ctx context.Context, store Store, st types.ServiceType) Availability {
	key := st.ServiceKey()
	row, err := store.QueryServiceStatus(ctx, key)
	if err == nil && row != nil && !row.Status.Valid() {
		err = fmt.Errorf("unexpected status %q", row.Status)
	}
	if err != nil {
		readErr := &AvailabilityReadError{ServiceKey: key, Err: err}
		log.Printf("[booking] %s, assuming open\n", readErr.Error())
		a := openAvailability(key)
		a.Degraded = true
		a.ReadErr = readErr
		return a
	}
	if row == nil {
		return openAvailability(key)
	}
	updated := row.UpdatedAt
	return Availability{
		ServiceKey:  key,
		Status:      row.Status,
		Label:       row.Status.Label(),
		Description: row.Status.Description(),
		Message:     row.Message,
		UpdatedAt:   &updated,
	}
}

// IsReadError reports whether err came from a failed availability read.
func IsReadError(err error) bool {
	var target *AvailabilityReadError
	return errors.As(err, &target)
}
