package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Callers set the FK and leave the association struct zero valued. Validation
// must not descend into the empty association.
func TestServicePlanValidateWithBareForeignKey(t *testing.T) {
	plan := &ServicePlan{
		ProviderID:      42,
		Name:            "Monthly Coaching",
		Description:     "four sessions per month",
		Price:           decimal.NewFromInt(15000),
		BillingInterval: BillingIntervalMonthly,
		DurationDays:    30,
		PaystackPlanID:  "PLN_bare_fk",
	}
	assert.NoError(t, plan.Validate())
}

func TestServicePlanValidateRequiresCoreFields(t *testing.T) {
	plan := &ServicePlan{ProviderID: 42}
	assert.Error(t, plan.Validate())
}

func TestEventValidateWithBareForeignKey(t *testing.T) {
	event := &Event{
		ProviderID:  42,
		Name:        "Summer Workshop",
		Description: "hands-on workshop",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(26 * time.Hour),
		Capacity:    50,
	}
	assert.NoError(t, event.Validate())
}
