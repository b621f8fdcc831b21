package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceBalanced(t *testing.T) {
	inv := &Invoice{
		Subtotal:    decimal.NewFromInt(1000),
		TaxAmount:   decimal.RequireFromString("75.50"),
		TotalAmount: decimal.RequireFromString("1075.50"),
	}
	assert.True(t, inv.Balanced())

	inv.TotalAmount = decimal.NewFromInt(1100)
	assert.False(t, inv.Balanced())
}

func TestInvoiceIsOpen(t *testing.T) {
	open := []string{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusOverdue}
	for _, status := range open {
		assert.True(t, (&Invoice{Status: status}).IsOpen(), "status %q should be open", status)
	}

	closed := []string{InvoiceStatusPaid, InvoiceStatusCanceled}
	for _, status := range closed {
		assert.False(t, (&Invoice{Status: status}).IsOpen(), "status %q should be closed", status)
	}
}
