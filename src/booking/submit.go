package booking

import (
	"context"
	"errors"
	"reflect"
	"receh48/src/models"
	"receh48/src/types"
	"receh48/src/utils"
	"strings"

	"github.com/go-playground/validator/v10"
)

var formMessages = map[string]string{
	"customer_name":   "Nama minimal 3 karakter",
	"contact_twitter": "Minimal salah satu dari Twitter atau LINE harus diisi",
	"contact_line":    "Minimal salah satu dari Twitter atau LINE harus diisi",
	"contact_email":   "Email tidak valid",
	"password_jkt":    "Password harus diisi",
	"agree_terms":     "Anda harus menyetujui syarat dan ketentuan",
}

type Submitter struct {
	collab   Collaborators
	validate *validator.Validate
}

func NewSubmitter(c Collaborators) *Submitter {
	v := validator.New()
	utils.RegisterValidations(v)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Submitter{collab: c, validate: v}
}

func normalizeForm(form types.CustomerForm) types.CustomerForm {
	form.CustomerName = strings.TrimSpace(form.CustomerName)
	form.ContactTwitter = strings.TrimSpace(form.ContactTwitter)
	form.ContactLine = strings.TrimSpace(form.ContactLine)
	form.ContactEmail = strings.TrimSpace(form.ContactEmail)
	return form
}

// ValidateForm trims the customer form and checks it.
func (s *Submitter) ValidateForm(form types.CustomerForm) (types.CustomerForm, error) {
	form = normalizeForm(form)
	err := s.validate.Struct(form)
	if err == nil {
		return form, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return form, err
	}
	ve := &ValidationError{Class: ClassCustomerForm, Fields: map[string]string{}}
	for _, fe := range verrs {
		msg := formMessages[fe.Field()]
		if msg == "" {
			msg = fe.Error()
		}
		if ve.Message == "" {
			ve.Message = msg
		}
		ve.Fields[fe.Field()] = msg
	}
	return form, ve
}

// Prepare checks gate, form and cart in that order and builds the pending
// order. The store is not touched.
func (s *Submitter) Prepare(cart *Cart, gate Availability, form types.CustomerForm, idempotencyKey string) (*models.Order, error) {
	if !gate.IsOpen() {
		return nil, ErrServiceUnavailable
	}
	form, err := s.ValidateForm(form)
	if err != nil {
		return nil, err
	}
	if err := cart.Validate(); err != nil {
		return nil, err
	}
	return &models.Order{
		CustomerName:   form.CustomerName,
		ContactTwitter: utils.NullIfBlank(form.ContactTwitter),
		ContactLine:    utils.NullIfBlank(form.ContactLine),
		ContactEmail:   form.ContactEmail,
		PasswordJKT:    form.PasswordJKT,
		OrderType:      cart.ServiceType(),
		Status:         types.ORDER_PENDING,
		TotalFee:       cart.Total(),
		Note:           BuildNote(cart.Items()),
		IdempotencyKey: idempotencyKey,
	}, nil
}

// Persist writes a prepared order. Failures come back as *SubmissionError.
func (s *Submitter) Persist(ctx context.Context, order *models.Order) (*models.Order, error) {
	stored, err := s.collab.Store.InsertOrder(ctx, order)
	if errors.Is(err, ErrIdempotencyReused) {
		return nil, err
	}
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}
	return stored, nil
}

func (s *Submitter) afterCreate(ctx context.Context, order *models.Order) {
	for _, hook := range s.collab.OnOrderCreated {
		go hook(context.WithoutCancel(ctx), order)
	}
}

// Submit runs Prepare and Persist in one call. The cart is cleared only when
// the store accepted the order.
func (s *Submitter) Submit(ctx context.Context, cart *Cart, gate Availability, form types.CustomerForm, idempotencyKey string) (*models.Order, error) {
	order, err := s.Prepare(cart, gate, form, idempotencyKey)
	if err != nil {
		return nil, err
	}
	stored, err := s.Persist(ctx, order)
	if err != nil {
		s.collab.notifier().Notify(LevelError, err.Error())
		return nil, err
	}
	cart.Clear()
	s.afterCreate(ctx, stored)
	return stored, nil
}
