package booking

import (
	"errors"
	"fmt"
	"receh48/src/types"
)

var (
	ErrServiceUnavailable = errors.New("layanan sedang tidak tersedia")
	ErrSubmissionInFlight = errors.New("pesanan sedang diproses, mohon tunggu")
	ErrItemNotFound       = errors.New("item tidak ditemukan di keranjang")
	ErrMemberNotFound     = errors.New("member tidak ditemukan")
	ErrUnknownField       = errors.New("field tidak dikenal")
	ErrSessionClosed      = errors.New("sesi keranjang sudah ditutup")
	ErrSessionNotFound    = errors.New("sesi keranjang tidak ditemukan")
	ErrIdempotencyReused  = errors.New("Idempotency-Key sudah dipakai untuk pesanan lain")
)

// CatalogLoadError aborts a catalog load. No partial catalog is returned with it.
type CatalogLoadError struct {
	ServiceType types.ServiceType
	Err         error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("Gagal memuat data: %s", e.Err.Error())
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

type ValidationClass string

const (
	ClassEmptyCart       ValidationClass = "empty_cart"
	ClassIncompleteSlot  ValidationClass = "incomplete_slot"
	ClassPartialBackup   ValidationClass = "partial_backup"
	ClassBackupCollision ValidationClass = "backup_collision"
	ClassCustomerForm    ValidationClass = "customer_form"
)

const (
	MsgEmptyCart       = "Keranjang kosong! Tambahkan minimal 1 member."
	MsgIncompleteSlot  = "Lengkapi tanggal dan sesi untuk semua item di keranjang!"
	MsgPartialBackup   = "Lengkapi member, tanggal, dan sesi cadangan atau kosongkan cadangan!"
	MsgBackupCollision = "Cadangan dengan member & tanggal sama harus sesi berbeda!"
)

// ValidationError reports the first failed validation class. ItemIDs lists
// the offending cart items, Fields the offending form fields.
type ValidationError struct {
	Class   ValidationClass   `json:"class"`
	Message string            `json:"message"`
	ItemIDs []string          `json:"items,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("Gagal membuat pesanan: %s", e.Err.Error())
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// AvailabilityReadError is recorded on a fail-open Availability.
type AvailabilityReadError struct {
	ServiceKey string
	Err        error
}

func (e *AvailabilityReadError) Error() string {
	return fmt.Sprintf("could not read status for %s: %s", e.ServiceKey, e.Err.Error())
}

func (e *AvailabilityReadError) Unwrap() error {
	return e.Err
}
