package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	riskScoreMin = 0
	riskScoreMax = 100
)

// ErrVerificationIsNotConstructed is returned when a Verification instance was
// not created through NewVerification or RestoreVerification.
var ErrVerificationIsNotConstructed = errors.New(
	"Verification must be created via NewVerification or RestoreVerification constructor")

// VerificationState is the terminal state machine of the fraud gate:
// Pending resolves exactly once to Verified or Rejected.
type VerificationState int

const (
	// VerificationUnknown represents an invalid or undefined state.
	VerificationUnknown VerificationState = iota

	// VerificationPending means the risk check result has not been resolved yet.
	VerificationPending

	// VerificationVerified means the order passed the fraud gate. Final.
	VerificationVerified

	// VerificationRejected means the order failed the fraud gate. Final: a
	// rejected order can never be re-verified, only replaced by a new order.
	VerificationRejected
)

func getVerificationStateStrings() map[VerificationState]string {
	return map[VerificationState]string{
		VerificationUnknown:  "Unknown",
		VerificationPending:  "Pending",
		VerificationVerified: "Verified",
		VerificationRejected: "Rejected",
	}
}

// Validate checks if the VerificationState is one of the defined states.
func (s VerificationState) Validate() error {
	if s < VerificationPending || s > VerificationRejected {
		return errs.NewValueIsInvalidError("verification state")
	}
	return nil
}

// String returns the human-readable name of the verification state.
func (s VerificationState) String() string {
	if str, ok := getVerificationStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// VerificationType identifies the source of the risk assessment.
type VerificationType string

const (
	// VerificationTypeAutomatic marks a score produced by the fraud engine at
	// checkout.
	VerificationTypeAutomatic VerificationType = "automatic"
	// VerificationTypeManual marks a verification resolved by a human reviewer.
	VerificationTypeManual VerificationType = "manual"
)

// Validate checks if the VerificationType is supported.
func (t VerificationType) Validate() error {
	switch t {
	case VerificationTypeAutomatic, VerificationTypeManual:
		return nil
	default:
		return errs.NewValueIsInvalidError("verification type " + string(t))
	}
}

// Verification is the fraud gate owned by an Order, created once at checkout
// with the risk score supplied by the external fraud engine. It is persisted
// independently of the order row for audit, but all mutations go through the
// owning Order.
type Verification struct {
	id                   kernel.UUID
	orderID              kernel.UUID
	verificationType     VerificationType
	riskScore            int
	requiresManualReview bool
	state                VerificationState
	createdAt            time.Time

	guard guard.ConstructorGuard
}

// NewVerification creates a pending verification for the given order.
// The risk score must be within [0, 100]; requiresManualReview is the
// precomputed flag forcing the order OnHold on payment success.
func NewVerification(
	id kernel.UUID,
	orderID kernel.UUID,
	verificationType VerificationType,
	riskScore int,
	requiresManualReview bool,
) (*Verification, error) {
	verification := &Verification{
		state:     VerificationPending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		verification.setID(id),
		verification.setOrderID(orderID),
		verification.setType(verificationType),
		verification.setRiskScore(riskScore),
	); err != nil {
		return nil, err
	}

	verification.requiresManualReview = requiresManualReview
	return verification, nil
}

// RestoreVerification reconstructs a verification from persistent storage.
func RestoreVerification(
	id kernel.UUID,
	orderID kernel.UUID,
	verificationType VerificationType,
	riskScore int,
	requiresManualReview bool,
	state VerificationState,
	createdAt time.Time,
) (*Verification, error) {
	verification, err := NewVerification(id, orderID, verificationType, riskScore, requiresManualReview)
	if err != nil {
		return nil, err
	}
	if err = state.Validate(); err != nil {
		return nil, err
	}

	verification.state = state
	verification.createdAt = createdAt
	return verification, nil
}

// Validate ensures the Verification was created through a constructor.
func (v *Verification) Validate() error {
	if v == nil {
		return ErrVerificationIsNotConstructed
	}
	return v.guard.Validate(ErrVerificationIsNotConstructed)
}

// ID returns the verification's unique identifier.
func (v *Verification) ID() kernel.UUID {
	return v.id
}

// OrderID returns the identifier of the owning order.
func (v *Verification) OrderID() kernel.UUID {
	return v.orderID
}

// Type returns the verification type.
func (v *Verification) Type() VerificationType {
	return v.verificationType
}

// RiskScore returns the fraud engine's risk score in [0, 100].
func (v *Verification) RiskScore() int {
	return v.riskScore
}

// RequiresManualReview reports whether the score was above the manual review
// threshold at checkout time.
func (v *Verification) RequiresManualReview() bool {
	return v.requiresManualReview
}

// State returns the current verification state.
func (v *Verification) State() VerificationState {
	return v.state
}

// CreatedAt returns when the verification record was created.
func (v *Verification) CreatedAt() time.Time {
	return v.createdAt
}

// IsPending reports whether the gate has not been resolved yet.
func (v *Verification) IsPending() bool {
	return v.state == VerificationPending
}

// IsVerified reports whether the gate resolved to Verified.
func (v *Verification) IsVerified() bool {
	return v.state == VerificationVerified
}

// IsRejected reports whether the gate resolved to Rejected.
func (v *Verification) IsRejected() bool {
	return v.state == VerificationRejected
}

// verify resolves the gate to Verified. Only a pending verification can be
// resolved; Verified and Rejected are final.
func (v *Verification) verify() error {
	if v.state != VerificationPending {
		return errs.NewInvalidStateError("VerifyVerification", v.state.String())
	}
	v.state = VerificationVerified
	return nil
}

// reject resolves the gate to Rejected. Final: the owning order can never
// progress past OnHold or Cancelled afterwards.
func (v *Verification) reject() error {
	if v.state != VerificationPending {
		return errs.NewInvalidStateError("RejectVerification", v.state.String())
	}
	v.state = VerificationRejected
	return nil
}

func (v *Verification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Verification) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	v.orderID = orderID
	return nil
}

func (v *Verification) setType(verificationType VerificationType) error {
	if err := verificationType.Validate(); err != nil {
		return err
	}
	v.verificationType = verificationType
	return nil
}

func (v *Verification) setRiskScore(riskScore int) error {
	if riskScore < riskScoreMin || riskScore > riskScoreMax {
		return errs.NewValueIsOutOfRangeError("riskScore", riskScore, riskScoreMin, riskScoreMax)
	}
	v.riskScore = riskScore
	return nil
}

// ApprovalPolicy decides whether a paid order may auto-advance to Confirmed
// without manual review. The threshold is configuration, not domain knowledge,
// and is injected by the composition root.
type ApprovalPolicy struct {
	// AutoApproveRiskThreshold is the exclusive upper bound on risk scores that
	// confirm automatically when the verification is still pending.
	AutoApproveRiskThreshold int
}

// DefaultApprovalPolicy returns the policy used when no explicit threshold is
// configured.
func DefaultApprovalPolicy() ApprovalPolicy {
	return ApprovalPolicy{AutoApproveRiskThreshold: 30}
}

// AllowsAutoConfirm reports whether a paid order with the given verification
// may advance to Confirmed without manual review. A nil or rejected
// verification never auto-confirms.
func (p ApprovalPolicy) AllowsAutoConfirm(v *Verification) bool {
	if v == nil || v.IsRejected() {
		return false
	}
	if v.IsVerified() {
		return true
	}
	return !v.RequiresManualReview() && v.RiskScore() < p.AutoApproveRiskThreshold
}
