package service

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/pkg/apperror"
	"github.com/softencymsc/webbill-api/pkg/render"
	"github.com/softencymsc/webbill-api/pkg/retry"
)

// destinationPattern accepts a country code of 1-3 digits followed by exactly
// ten subscriber digits, e.g. +919876543210.
var destinationPattern = regexp.MustCompile(`^\+[1-9]\d{10,12}$`)

// ITU country codes are prefix-free: the only one-digit codes are 1 and 7,
// and no three-digit code starts with an assigned shorter code. That rule is
// what splits an all-digit string into code and subscriber number.
var twoDigitCountryCodes = map[string]bool{
	"20": true, "27": true,
	"30": true, "31": true, "32": true, "33": true, "34": true, "36": true, "39": true,
	"40": true, "41": true, "43": true, "44": true, "45": true, "46": true, "47": true, "48": true, "49": true,
	"51": true, "52": true, "53": true, "54": true, "55": true, "56": true, "57": true, "58": true,
	"60": true, "61": true, "62": true, "63": true, "64": true, "65": true, "66": true,
	"81": true, "82": true, "84": true, "86": true,
	"90": true, "91": true, "92": true, "93": true, "94": true, "95": true, "98": true,
}

func validDestination(destination string) bool {
	if !destinationPattern.MatchString(destination) {
		return false
	}
	digits := destination[1:]
	code := digits[:len(digits)-10]
	switch len(code) {
	case 1:
		return code == "1" || code == "7"
	case 2:
		return twoDigitCountryCodes[code]
	case 3:
		return code[0] != '1' && code[0] != '7' && !twoDigitCountryCodes[code[:2]]
	}
	return false
}

// MessageChannel delivers a rendered artifact to a phone number.
type MessageChannel interface {
	Deliver(ctx context.Context, destination string, artifact []byte, metadata map[string]string) error
}

// NotificationService renders posted invoices and pushes them out over a
// message channel. Delivery is best effort: transient gateway timeouts are
// retried a bounded number of times, everything else fails immediately.
type NotificationService struct {
	channel MessageChannel
	policy  retry.Policy
	width   int
}

func NewNotificationService(channel MessageChannel, policy retry.Policy) *NotificationService {
	return &NotificationService{
		channel: channel,
		policy:  policy,
		width:   42,
	}
}

// Send renders the invoice and delivers it to destination. The destination
// must be a full international number; anything else is refused before any
// delivery attempt.
func (s *NotificationService) Send(ctx context.Context, invoice entity.Invoice, destination string) error {
	if !validDestination(destination) {
		return apperror.ErrInvalidDestination
	}

	artifact := s.RenderInvoice(invoice)
	metadata := map[string]string{
		"bill_no": invoice.BillNo,
		"kind":    "invoice",
	}

	err := s.policy.Do(ctx, func() error {
		return s.channel.Deliver(ctx, destination, artifact, metadata)
	})
	if err != nil {
		log.Printf("Invoice %s: delivery to %s failed: %v", invoice.BillNo, destination, err)
		return apperror.ErrDeliveryFailed
	}

	return nil
}

// RenderInvoice formats the invoice as a fixed-width text artifact.
func (s *NotificationService) RenderInvoice(invoice entity.Invoice) []byte {
	doc := render.NewDocument(s.width)

	doc.Center(invoice.Header.StoreName)
	if invoice.Header.Address != "" {
		doc.Center(invoice.Header.Address)
	}
	if invoice.Header.Phone != "" {
		doc.Center("Ph: " + invoice.Header.Phone)
	}
	if invoice.Header.GSTIN != "" {
		doc.Center("GSTIN: " + invoice.Header.GSTIN)
	}
	doc.Separator('=')

	doc.KeyValue("Invoice", invoice.BillNo)
	doc.KeyValue("Date", invoice.Date)
	if invoice.Customer != "" {
		doc.KeyValue("Customer", invoice.Customer)
	}
	if invoice.Phone != "" {
		doc.KeyValue("Phone", invoice.Phone)
	}
	doc.Separator('-')

	for _, item := range invoice.Items {
		doc.ItemLine(item.Quantity, item.Name, formatAmount(item.Total))
		if item.HSNCode != "" {
			doc.TextF("   HSN %s @ %s", item.HSNCode, formatAmount(item.UnitPrice))
		}
	}
	doc.Separator('-')

	doc.KeyValue("Basic", formatAmount(invoice.Basic))
	doc.KeyValue("CGST", formatAmount(invoice.CGST))
	doc.KeyValue("SGST", formatAmount(invoice.SGST))
	if invoice.Discount > 0 {
		doc.KeyValue("Discount", "-"+formatAmount(invoice.Discount))
	}
	doc.KeyValue("Net Amount", formatAmount(invoice.Net))
	doc.Separator('-')

	if invoice.PayMode != "" {
		doc.KeyValue("Paid By", invoice.PayMode)
	}
	doc.KeyValue("Advance", formatAmount(invoice.Advance))
	doc.KeyValue("Balance", formatAmount(invoice.Balance))
	doc.Separator('=')
	doc.Center("Thank you, visit again!")

	return doc.Bytes()
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
