package models

import "time"

// SubscriptionPlan is the billing tier of a user.
type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanPro        SubscriptionPlan = "pro"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// SubscriptionStatus mirrors the billing provider's subscription state.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionTrialing SubscriptionStatus = "trialing"
)

// Subscription holds plan and billing linkage for a profile.
type Subscription struct {
	Plan                 SubscriptionPlan   `json:"plan"`
	Status               SubscriptionStatus `json:"status"`
	StripeCustomerID     *string            `json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID *string            `json:"stripeSubscriptionId,omitempty"`
	CurrentPeriodEnd     *time.Time         `json:"currentPeriodEnd,omitempty"`
}

// Usage tracks per-period consumption counters for a profile.
type Usage struct {
	Presentations int       `json:"presentations"`
	LastReset     time.Time `json:"lastReset"`
}

// UserProfile is the per-identity record owned by the auth/persistence
// backend: one profile per identity, keyed by the identity id. The core
// reads and writes it opaquely; no invariants beyond the key.
type UserProfile struct {
	UID          string       `json:"uid"`
	Email        string       `json:"email"`
	DisplayName  string       `json:"displayName"`
	PhotoURL     *string      `json:"photoUrl,omitempty"`
	Subscription Subscription `json:"subscription"`
	Usage        Usage        `json:"usage"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// NewDefaultProfile builds the profile created on first sign-in:
// free plan, active, zero usage.
func NewDefaultProfile(uid, email, displayName string, now time.Time) *UserProfile {
	return &UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		Subscription: Subscription{
			Plan:   PlanFree,
			Status: SubscriptionActive,
		},
		Usage: Usage{
			Presentations: 0,
			LastReset:     now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProfilePatch is a merge-patch over a profile. Nil fields are left
// unchanged; Subscription and Usage replace their namespace wholesale,
// matching the document-store merge semantics of the backend.
type ProfilePatch struct {
	DisplayName  *string       `json:"displayName"`
	PhotoURL     *string       `json:"photoUrl"`
	Subscription *Subscription `json:"subscription"`
	Usage        *Usage        `json:"usage"`
}

// Apply merges the patch into the profile and refreshes UpdatedAt.
func (p *ProfilePatch) Apply(profile *UserProfile, now time.Time) {
	if p.DisplayName != nil {
		profile.DisplayName = *p.DisplayName
	}
	if p.PhotoURL != nil {
		profile.PhotoURL = p.PhotoURL
	}
	if p.Subscription != nil {
		profile.Subscription = *p.Subscription
	}
	if p.Usage != nil {
		profile.Usage = *p.Usage
	}
	profile.UpdatedAt = now
}
