package order

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"bakeshop/internal/logger"
	"bakeshop/internal/messaging"
	"bakeshop/internal/payment"
	"bakeshop/internal/validation"
)

// DocumentStore is the slice of the document store the order pipeline needs.
type DocumentStore interface {
	Insert(ctx context.Context, collection, id string, doc interface{}) error
	Find(ctx context.Context, collection string, filter map[string]interface{}, exclude ...string) ([]json.RawMessage, error)
	DeleteOne(ctx context.Context, collection, id string) error
}

// IDGenerator supplies order identifiers.
type IDGenerator interface {
	Next() string
}

// Notifier publishes order-placed notifications.
type Notifier interface {
	PublishOrderPlaced(ctx context.Context, notification messaging.OrderPlaced) error
}

// submissionState names the steps a submission moves through. States only
// drive logging; the flow itself is the sequence of calls below.
type submissionState string

const (
	stateValidating       submissionState = "validating"
	stateRejected         submissionState = "rejected"
	stateValidated        submissionState = "validated"
	statePaymentPending   submissionState = "payment_pending"
	statePaymentFailed    submissionState = "payment_failed"
	statePaymentConfirmed submissionState = "payment_confirmed"
	statePersisting       submissionState = "persisting"
	statePersistFailed    submissionState = "persist_failed"
	statePersisted        submissionState = "persisted"
)

// Service orchestrates order submissions: validate, optionally charge,
// persist, then read the stored record back for the response.
//
// The charge-then-persist sequence is not atomic: if the store fails after a
// successful charge, the charge stands and the client gets a persistence
// error. Matching the storefront's behavior, no compensation is attempted.
type Service struct {
	store    DocumentStore
	gateway  payment.Gateway
	ids      IDGenerator
	notifier Notifier
	logger   *logger.Logger
}

// NewService creates the order service.
func NewService(store DocumentStore, gateway payment.Gateway, ids IDGenerator, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		gateway:  gateway,
		ids:      ids,
		notifier: notifier,
		logger:   log,
	}
}

// OnlineResult is the client response for a paid submission. Order holds the
// persisted record with the card digits stripped.
type OnlineResult struct {
	Message string            `json:"message"`
	Success bool              `json:"success"`
	Order   []json.RawMessage `json:"order"`
}

// SubmitOnline runs the full pipeline for an online-paid regular order.
func (s *Service) SubmitOnline(ctx context.Context, doc validation.Document, requestID string) (*OnlineResult, error) {
	s.transition(requestID, stateValidating, RegularOrdersCollection)
	if errs := regularOnlineRules.Validate(doc); len(errs) > 0 {
		s.transition(requestID, stateRejected, RegularOrdersCollection)
		return nil, &ValidationFailure{Errors: errs}
	}

	var sub onlineSubmission
	if err := decodeInto(doc, &sub); err != nil {
		s.transition(requestID, stateRejected, RegularOrdersCollection)
		return nil, &ValidationFailure{Errors: validation.Errors{
			{Field: "payload", Message: "Submission is malformed"},
		}}
	}
	s.transition(requestID, stateValidated, RegularOrdersCollection)

	s.transition(requestID, statePaymentPending, RegularOrdersCollection)
	result, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		AmountMinor:  minorUnits(sub.Total.GrandTotal),
		Currency:     "usd",
		MethodToken:  sub.PaymentToken,
		ReceiptEmail: sub.Email,
		Description:  "Bakeshop order",
	})
	if err != nil {
		s.transition(requestID, statePaymentFailed, RegularOrdersCollection)
		return nil, &PaymentFailure{Message: err.Error()}
	}
	if !result.Succeeded() {
		s.transition(requestID, statePaymentFailed, RegularOrdersCollection)
		message := result.FailureMessage
		if message == "" {
			message = "Payment was not completed"
		}
		return nil, &PaymentFailure{Message: message}
	}
	s.transition(requestID, statePaymentConfirmed, RegularOrdersCollection)

	order := sub.RegularOrder
	order.ID = s.ids.Next()
	order.Last4 = result.MaskedLast4

	// card digits never leave the store
	stored, err := s.persistAndReread(ctx, requestID, RegularOrdersCollection, order.ID, order, []string{"last4"})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, RegularOrdersCollection, order.ID, order.Name, order.OrderTime)
	return &OnlineResult{Message: "Payment Successful", Success: true, Order: stored}, nil
}

// SubmitCash runs the pipeline for a cash-paid regular order. There is no
// payment branch; a validated order goes straight to the store.
func (s *Service) SubmitCash(ctx context.Context, doc validation.Document, requestID string) ([]json.RawMessage, error) {
	s.transition(requestID, stateValidating, RegularOrdersCollection)
	if errs := regularCashRules.Validate(doc); len(errs) > 0 {
		s.transition(requestID, stateRejected, RegularOrdersCollection)
		return nil, &ValidationFailure{Errors: errs}
	}

	var order RegularOrder
	if err := decodeInto(doc, &order); err != nil {
		s.transition(requestID, stateRejected, RegularOrdersCollection)
		return nil, &ValidationFailure{Errors: validation.Errors{
			{Field: "payload", Message: "Submission is malformed"},
		}}
	}
	s.transition(requestID, stateValidated, RegularOrdersCollection)

	order.ID = s.ids.Next()
	stored, err := s.persistAndReread(ctx, requestID, RegularOrdersCollection, order.ID, order, nil)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, RegularOrdersCollection, order.ID, order.Name, order.OrderTime)
	return stored, nil
}

// SubmitCustom runs the pipeline for a custom (cake or free-form) order.
func (s *Service) SubmitCustom(ctx context.Context, doc validation.Document, requestID string) ([]json.RawMessage, error) {
	s.transition(requestID, stateValidating, CustomOrdersCollection)
	if errs := customOrderRules.Validate(doc); len(errs) > 0 {
		s.transition(requestID, stateRejected, CustomOrdersCollection)
		return nil, &ValidationFailure{Errors: errs}
	}

	var order CustomOrder
	if err := decodeInto(doc, &order); err != nil {
		s.transition(requestID, stateRejected, CustomOrdersCollection)
		return nil, &ValidationFailure{Errors: validation.Errors{
			{Field: "payload", Message: "Submission is malformed"},
		}}
	}
	s.transition(requestID, stateValidated, CustomOrdersCollection)

	order.ID = s.ids.Next()
	stored, err := s.persistAndReread(ctx, requestID, CustomOrdersCollection, order.ID, order, nil)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, CustomOrdersCollection, order.ID, order.Name, order.OrderTime)
	return stored, nil
}

// SubmitCatering runs the pipeline for a catering order.
func (s *Service) SubmitCatering(ctx context.Context, doc validation.Document, requestID string) ([]json.RawMessage, error) {
	s.transition(requestID, stateValidating, CateringOrdersCollection)
	if errs := cateringOrderRules.Validate(doc); len(errs) > 0 {
		s.transition(requestID, stateRejected, CateringOrdersCollection)
		return nil, &ValidationFailure{Errors: errs}
	}

	var order CateringOrder
	if err := decodeInto(doc, &order); err != nil {
		s.transition(requestID, stateRejected, CateringOrdersCollection)
		return nil, &ValidationFailure{Errors: validation.Errors{
			{Field: "payload", Message: "Submission is malformed"},
		}}
	}
	s.transition(requestID, stateValidated, CateringOrdersCollection)

	order.ID = s.ids.Next()
	stored, err := s.persistAndReread(ctx, requestID, CateringOrdersCollection, order.ID, order, nil)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, CateringOrdersCollection, order.ID, order.Name, order.OrderTime)
	return stored, nil
}

// AllOrders returns the three order collections as
// [regular[], custom[], catering[]] for the management surface.
func (s *Service) AllOrders(ctx context.Context) ([][]json.RawMessage, error) {
	listing := make([][]json.RawMessage, 0, 3)
	for _, collection := range []string{RegularOrdersCollection, CustomOrdersCollection, CateringOrdersCollection} {
		docs, err := s.store.Find(ctx, collection, nil)
		if err != nil {
			return nil, &PersistenceFailure{Err: err}
		}
		listing = append(listing, docs)
	}
	return listing, nil
}

// Delete removes one order and returns the refreshed listing.
func (s *Service) Delete(ctx context.Context, collection, id string) ([][]json.RawMessage, error) {
	switch collection {
	case RegularOrdersCollection, CustomOrdersCollection, CateringOrdersCollection:
	default:
		return nil, ErrUnknownCollection
	}

	if err := s.store.DeleteOne(ctx, collection, id); err != nil {
		return nil, &PersistenceFailure{Err: err}
	}
	return s.AllOrders(ctx)
}

// persistAndReread inserts the order and reads the matching record back by
// field equality, with the given fields excluded from the response.
func (s *Service) persistAndReread(ctx context.Context, requestID, collection, id string, order interface{}, exclude []string) ([]json.RawMessage, error) {
	s.transition(requestID, statePersisting, collection)
	if err := s.store.Insert(ctx, collection, id, order); err != nil {
		s.transition(requestID, statePersistFailed, collection)
		return nil, &PersistenceFailure{Err: err}
	}

	filter, err := submissionFilter(order)
	if err != nil {
		s.transition(requestID, statePersistFailed, collection)
		return nil, &PersistenceFailure{Err: err}
	}

	stored, err := s.store.Find(ctx, collection, filter, exclude...)
	if err != nil {
		s.transition(requestID, statePersistFailed, collection)
		return nil, &PersistenceFailure{Err: err}
	}

	s.transition(requestID, statePersisted, collection)
	return stored, nil
}

func (s *Service) notify(ctx context.Context, collection, id, name, orderTime string) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.PublishOrderPlaced(ctx, messaging.OrderPlaced{
		OrderID:    id,
		Collection: collection,
		Name:       name,
		OrderTime:  orderTime,
	})
	if err != nil {
		// best effort only; the order is already persisted
		s.logger.Error("notification_skipped", "Order was persisted but the notification was not published", "", err, map[string]interface{}{
			"order_id":   id,
			"collection": collection,
		})
	}
}

func (s *Service) transition(requestID string, state submissionState, collection string) {
	s.logger.Debug("submission_state", string(state), requestID, map[string]interface{}{
		"collection": collection,
	})
}

// decodeInto re-encodes the validated payload into its typed order record.
func decodeInto(doc validation.Document, out interface{}) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, out)
}

// submissionFilter turns a typed order into the field-equality filter used
// to read the persisted record back. Card digits are never part of it.
func submissionFilter(order interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	filter := map[string]interface{}{}
	if err := json.Unmarshal(encoded, &filter); err != nil {
		return nil, fmt.Errorf("order must encode to a JSON object: %w", err)
	}
	delete(filter, "last4")
	return filter, nil
}

// minorUnits converts a grand total to integer cents for the gateway.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
